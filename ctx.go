package session

import (
	"context"
)

var snapshotCtxKey = &contextKey{"session"}

type contextKey struct {
	name string
}

// WithSnapshot sets the session Snapshot in the given context
func WithSnapshot(ctx context.Context, snap Snapshot) context.Context {
	return context.WithValue(ctx, snapshotCtxKey, snap)
}

// SnapshotFromContext finds the session snapshot from the context.
func SnapshotFromContext(ctx context.Context) (Snapshot, bool) {
	raw, ok := ctx.Value(snapshotCtxKey).(Snapshot)
	return raw, ok
}

// UserFromContext is a convenience accessor for the authenticated user.
func UserFromContext(ctx context.Context) (*User, bool) {
	snap, ok := SnapshotFromContext(ctx)
	if !ok || snap.User == nil {
		return nil, false
	}
	return snap.User, true
}
