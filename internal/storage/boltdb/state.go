package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gridedit/internal/models"
	"github.com/iudanet/gridedit/internal/storage"
)

// SaveState stores or replaces the state of a session
func (s *Storage) SaveState(ctx context.Context, state *models.SessionState) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	// Сериализуем состояние в JSON
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketSessions)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		// Сохраняем по ключу ID сессии
		if err := bucket.Put([]byte(state.ID), data); err != nil {
			return fmt.Errorf("failed to save session state: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetState retrieves the state of a session
func (s *Storage) GetState(ctx context.Context, sessionID string) (*models.SessionState, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var state *models.SessionState

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return storage.ErrStateNotFound
		}

		data := bucket.Get([]byte(sessionID))
		if data == nil {
			return storage.ErrStateNotFound
		}

		// Десериализуем
		state = &models.SessionState{}
		if err := json.Unmarshal(data, state); err != nil {
			return fmt.Errorf("failed to unmarshal session state: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return state, nil
}

// DeleteState removes the state of a session
func (s *Storage) DeleteState(ctx context.Context, sessionID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(sessionID))
	})

	if err != nil {
		return fmt.Errorf("delete transaction failed: %w", err)
	}

	return nil
}

// ListSessions returns ids of all stored sessions
func (s *Storage) ListSessions(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var ids []string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSessions)
		if bucket == nil {
			// Нет bucket - возвращаем пустой список
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return ids, nil
}
