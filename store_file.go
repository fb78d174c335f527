package session

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

var _ CredentialStore = &FileStore{}

type credentialFile struct {
	Version   string     `yaml:"version"`
	Token     string     `yaml:"token"`
	SavedAt   time.Time  `yaml:"saved_at"`
	ExpiresAt *time.Time `yaml:"expires_at,omitempty"`
}

// FileStore persists the credential to a YAML document so a restarted
// client can resume its session. Entries past their expiry load as
// absent.
type FileStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		now:  time.Now,
	}
}

// DefaultCredentialPath resolves the per-user credential location.
func DefaultCredentialPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "interviewsim", "credential.yaml"), nil
}

func (s *FileStore) Save(token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := credentialFile{
		Version: "1.0",
		Token:   token,
		SavedAt: s.now(),
	}

	if ttl > 0 {
		expiresAt := s.now().Add(ttl)
		doc.ExpiresAt = &expiresAt
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	var doc credentialFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", false
	}

	if doc.Token == "" {
		return "", false
	}

	if doc.ExpiresAt != nil && s.now().After(*doc.ExpiresAt) {
		return "", false
	}

	return doc.Token, true
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
