package badger

import (
	"encoding/json"
	"fmt"

	"github.com/marmos91/pixvault/pkg/drive"
)

// Serialization Strategy
// ======================
//
// Records (users, folders, files) are stored as JSON: human-readable,
// debuggable with badger tooling, and tolerant of schema evolution. Index
// values are raw UUID bytes (16 bytes) or empty, where compactness matters
// and the schema is stable.

// userData wraps the user record for storage. The password hash is
// excluded from the record's API serialization (json:"-"), so it is carried
// in a separate field here.
type userData struct {
	User         drive.User `json:"user"`
	PasswordHash string     `json:"password_hash"`
}

func encodeUser(user *drive.User) ([]byte, error) {
	data, err := json.Marshal(userData{User: *user, PasswordHash: user.PasswordHash})
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	return data, nil
}

func decodeUser(data []byte) (*drive.User, error) {
	var stored userData
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	user := stored.User
	user.PasswordHash = stored.PasswordHash
	return &user, nil
}

func encodeFolder(folder *drive.Folder) ([]byte, error) {
	data, err := json.Marshal(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to encode folder: %w", err)
	}
	return data, nil
}

func decodeFolder(data []byte) (*drive.Folder, error) {
	var folder drive.Folder
	if err := json.Unmarshal(data, &folder); err != nil {
		return nil, fmt.Errorf("failed to decode folder: %w", err)
	}
	return &folder, nil
}

func encodeFile(file *drive.File) ([]byte, error) {
	data, err := json.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode file: %w", err)
	}
	return data, nil
}

func decodeFile(data []byte) (*drive.File, error) {
	var file drive.File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}
	return &file, nil
}
