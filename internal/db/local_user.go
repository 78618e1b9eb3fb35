package db

import (
	"strings"

	"github.com/google/uuid"
)

const localUserKey = "local_user_id"

// EnsureLocalUserID returns the installation's opaque user identifier,
// minting one on first use. Every aggregate in the store is keyed by it.
func EnsureLocalUserID(store *KVStore) (string, error) {
	value, found, err := store.Get(localUserKey)
	if err != nil {
		return "", err
	}
	if found && strings.TrimSpace(value) != "" {
		return value, nil
	}

	userID := uuid.NewString()
	if err := store.Set(localUserKey, userID); err != nil {
		return "", err
	}
	return userID, nil
}
