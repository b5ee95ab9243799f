// Package keyring keeps the HTTP transport's bearer token in the OS keychain
// so it does not have to live in config.yaml.
package keyring

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	zkr "github.com/zalando/go-keyring"
)

const (
	serviceName = "nebo-contacts"
	accountName = "http-auth-token"
)

// ErrNotFound is returned when no token has been stored.
var ErrNotFound = errors.New("no token in keychain")

// GetToken retrieves the HTTP auth token from the OS keychain.
func GetToken() (string, error) {
	token, err := zkr.Get(serviceName, accountName)
	if errors.Is(err, zkr.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("keychain get: %w", err)
	}
	return token, nil
}

// SetToken stores the HTTP auth token in the OS keychain.
func SetToken(token string) error {
	if err := zkr.Set(serviceName, accountName, token); err != nil {
		return fmt.Errorf("keychain set: %w", err)
	}
	return nil
}

// DeleteToken removes the HTTP auth token. Deleting a missing token is not an error.
func DeleteToken() error {
	err := zkr.Delete(serviceName, accountName)
	if err != nil && !errors.Is(err, zkr.ErrNotFound) {
		return fmt.Errorf("keychain delete: %w", err)
	}
	return nil
}

// NewToken generates a random 256-bit token, stores it and returns it.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	if err := SetToken(token); err != nil {
		return "", err
	}
	return token, nil
}

// Available returns true if the OS keychain is functional.
// Returns false if NEBO_CONTACTS_KEYRING_DISABLED=1 is set (headless/CI).
// Otherwise tests the keychain with a test write/read/delete cycle.
func Available() bool {
	if os.Getenv("NEBO_CONTACTS_KEYRING_DISABLED") == "1" {
		return false
	}
	testService := "nebo-contacts-keyring-check"
	testAccount := "check"
	if err := zkr.Set(testService, testAccount, "ok"); err != nil {
		return false
	}
	_ = zkr.Delete(testService, testAccount)
	return true
}
