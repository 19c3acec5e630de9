package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/marmos91/pixvault/pkg/drive"
)

// CreateUser creates an account inside a single transaction, enforcing
// email uniqueness via the email index.
func (s *BadgerStore) CreateUser(ctx context.Context, name, email, passwordHash string) (*drive.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || email == "" || passwordHash == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "name, email and password are required"}
	}

	user := &drive.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(keyEmail(email))
		if err == nil {
			return &drive.StoreError{Code: drive.ErrAlreadyExists, Message: "email already registered", Path: email}
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check email index: %w", err)
		}

		data, err := encodeUser(user)
		if err != nil {
			return err
		}
		if err := txn.Set(keyUser(user.ID), data); err != nil {
			return fmt.Errorf("failed to store user: %w", err)
		}
		if err := txn.Set(keyEmail(email), user.ID[:]); err != nil {
			return fmt.Errorf("failed to store email index: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// FindUserByEmail resolves the email index and loads the account record.
func (s *BadgerStore) FindUserByEmail(ctx context.Context, email string) (*drive.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user *drive.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyEmail(email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return notFound("user")
		}
		if err != nil {
			return fmt.Errorf("failed to read email index: %w", err)
		}

		var id uuid.UUID
		if err := item.Value(func(val []byte) error {
			if len(val) != 16 {
				return fmt.Errorf("invalid UUID length in email index: %d", len(val))
			}
			copy(id[:], val)
			return nil
		}); err != nil {
			return err
		}

		user, err = getUser(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser returns an account by id.
func (s *BadgerStore) GetUser(ctx context.Context, id uuid.UUID) (*drive.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user *drive.User
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = getUser(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// getUser loads and decodes a user record inside a transaction.
func getUser(txn *badger.Txn, id uuid.UUID) (*drive.User, error) {
	item, err := txn.Get(keyUser(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	var user *drive.User
	if err := item.Value(func(val []byte) error {
		decoded, err := decodeUser(val)
		if err != nil {
			return err
		}
		user = decoded
		return nil
	}); err != nil {
		return nil, err
	}

	return user, nil
}
