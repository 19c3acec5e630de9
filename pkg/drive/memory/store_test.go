package memory

import (
	"testing"

	"github.com/marmos91/pixvault/pkg/drive"
	storetesting "github.com/marmos91/pixvault/pkg/drive/testing"
)

func TestMemoryStore_Conformance(t *testing.T) {
	suite := &storetesting.StoreTestSuite{
		NewStore: func(t *testing.T) drive.Store {
			return NewMemoryStore(drive.StoreOptions{})
		},
		NewStrictStore: func(t *testing.T) drive.Store {
			return NewMemoryStore(drive.StoreOptions{UniqueNames: true})
		},
	}
	suite.Run(t)
}
