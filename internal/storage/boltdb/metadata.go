package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gridedit/internal/storage"
)

const (
	keyCurrentSession = "current_session"
)

// SaveCurrentSession remembers the session used by default
func (s *Storage) SaveCurrentSession(ctx context.Context, sessionID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyCurrentSession), []byte(sessionID)); err != nil {
			return fmt.Errorf("failed to save current session: %w", err)
		}

		return nil
	})
}

// GetCurrentSession returns the session used by default
// Returns ErrSessionNotSet if no session was saved yet
func (s *Storage) GetCurrentSession(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var sessionID string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		value := bucket.Get([]byte(keyCurrentSession))
		if value == nil {
			return storage.ErrSessionNotSet
		}

		// Копируем: память bbolt действительна только внутри транзакции
		sessionID = string(value)
		return nil
	})

	if err != nil {
		return "", err
	}

	return sessionID, nil
}
