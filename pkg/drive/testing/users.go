package testing

import (
	"context"
	"testing"

	"github.com/marmos91/pixvault/pkg/drive"
	"github.com/stretchr/testify/require"
)

// RunUserTests executes all account tests.
func (suite *StoreTestSuite) RunUserTests(t *testing.T) {
	t.Run("Create", suite.testCreateUser)
	t.Run("DuplicateEmail", suite.testCreateUserDuplicateEmail)
	t.Run("FindByEmail", suite.testFindUserByEmail)
	t.Run("MissingFields", suite.testCreateUserMissingFields)
}

func (suite *StoreTestSuite) testCreateUser(t *testing.T) {
	store := suite.NewStore(t)

	user, err := store.CreateUser(context.Background(), "Ada", "ada@example.com", "$2a$10$hash")
	require.NoError(t, err)
	require.Equal(t, "Ada", user.Name)
	require.Equal(t, "ada@example.com", user.Email)

	got, err := store.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "$2a$10$hash", got.PasswordHash)
}

func (suite *StoreTestSuite) testCreateUserDuplicateEmail(t *testing.T) {
	store := suite.NewStore(t)

	_, err := store.CreateUser(context.Background(), "Ada", "ada@example.com", "$2a$10$hash")
	require.NoError(t, err)

	_, err = store.CreateUser(context.Background(), "Imposter", "ada@example.com", "$2a$10$other")
	AssertErrorCode(t, drive.ErrAlreadyExists, err)
}

func (suite *StoreTestSuite) testFindUserByEmail(t *testing.T) {
	store := suite.NewStore(t)

	user, err := store.CreateUser(context.Background(), "Ada", "ada@example.com", "$2a$10$hash")
	require.NoError(t, err)

	found, err := store.FindUserByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)
	require.Equal(t, "$2a$10$hash", found.PasswordHash)

	_, err = store.FindUserByEmail(context.Background(), "nobody@example.com")
	AssertErrorCode(t, drive.ErrNotFound, err)
}

func (suite *StoreTestSuite) testCreateUserMissingFields(t *testing.T) {
	store := suite.NewStore(t)

	_, err := store.CreateUser(context.Background(), "", "ada@example.com", "$2a$10$hash")
	AssertErrorCode(t, drive.ErrInvalidArgument, err)

	_, err = store.CreateUser(context.Background(), "Ada", "", "$2a$10$hash")
	AssertErrorCode(t, drive.ErrInvalidArgument, err)
}
