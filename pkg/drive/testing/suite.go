// Package testing provides a reusable conformance suite for drive.Store
// implementations. It tests the interface contract, not implementation
// details, so both the memory and badger stores run the same assertions.
package testing

import (
	"testing"

	"github.com/marmos91/pixvault/pkg/drive"
)

// StoreTestSuite exercises the full drive.Store contract.
type StoreTestSuite struct {
	// NewStore creates a fresh store (UniqueNames off) for each test.
	NewStore func(t *testing.T) drive.Store

	// NewStrictStore creates a fresh store with UniqueNames enabled.
	NewStrictStore func(t *testing.T) drive.Store
}

// Run executes all tests in the suite.
func (suite *StoreTestSuite) Run(t *testing.T) {
	t.Run("Users", suite.RunUserTests)
	t.Run("Folders", suite.RunFolderTests)
	t.Run("Files", suite.RunFileTests)
	t.Run("Cascade", suite.RunCascadeTests)
}
