// Package session owns the client-side authentication state for the
// interview practice app: credential storage, the RPC client talking to
// the remote backend, and the session state machine consumed by route
// guards.
//
// Session lifecycle:
//   - Manager runs a single verify-on-load sequence when Start is
//     called, restoring a persisted credential when the backend still
//     accepts it. Startup failures are treated as silent expiry, never
//     surfaced to the user.
//   - SignIn/SignUp/SignOut/DeleteAccount drive all further
//     transitions. Exactly one operation may be in flight; overlapping
//     calls are rejected with ErrOperationInFlight.
//
// Credential handling:
//   - CredentialStore abstracts where the bearer token lives (memory,
//     YAML file, cookie jar). The store is selected once at startup.
//   - RemoteClient applies a cross-cutting interceptor to every
//     request: it attaches the stored credential, captures refreshed
//     tokens from any response carrying tokenSession, and clears the
//     store whenever the backend rejects the credential.
//
// Route guards live in middleware/guard and subscribe to the manager's
// snapshots to allow, redirect, or defer rendering per navigation.
package session
