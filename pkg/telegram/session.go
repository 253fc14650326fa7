package telegram

import (
	"context"
	"sync"

	"github.com/gotd/td/session"
)

// SessionStore persists the opaque authentication session to a file. A
// failed save is recorded instead of propagated: losing the session file is
// survivable, but the run must then sign out at exit so no authorized
// session is left behind that we cannot remember having.
type SessionStore struct {
	file session.FileStorage

	mu       sync.Mutex
	storeErr error
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{file: session.FileStorage{Path: path}}
}

func (s *SessionStore) LoadSession(ctx context.Context) ([]byte, error) {
	return s.file.LoadSession(ctx)
}

func (s *SessionStore) StoreSession(ctx context.Context, data []byte) error {
	if err := s.file.StoreSession(ctx, data); err != nil {
		s.mu.Lock()
		if s.storeErr == nil {
			s.storeErr = err
		}
		s.mu.Unlock()
	}
	return nil
}

// PersistErr returns the first save failure, nil when every save succeeded.
func (s *SessionStore) PersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeErr
}
