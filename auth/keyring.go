// Package auth provides a high-level API for persisting and retrieving playlist provider credentials from the system keyring.
package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
	"github.com/zapp-cli/zapp/constant"
)

const service = constant.Zapp

// SetCredentials persists the username and password for a protected playlist
// provider to the system keyring.
func SetCredentials(provider, username, password string) error {
	if provider == "" {
		return errors.New("provider must not be empty")
	}

	if err := keyring.Set(service, userKey(provider), username); err != nil {
		return err
	}

	return keyring.Set(service, passKey(provider), password)
}

// Credentials retrieves the stored username and password for a protected
// playlist provider from the system keyring.
func Credentials(provider string) (username, password string, err error) {
	username, err = keyring.Get(service, userKey(provider))
	if err != nil {
		return "", "", err
	}

	password, err = keyring.Get(service, passKey(provider))
	if err != nil {
		return "", "", err
	}

	return username, password, nil
}

// DeleteCredentials removes the stored credentials for a playlist provider
// from the system keyring.
func DeleteCredentials(provider string) error {
	if err := keyring.Delete(service, userKey(provider)); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}

	if err := keyring.Delete(service, passKey(provider)); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}

	return nil
}

func userKey(provider string) string {
	return fmt.Sprintf("%s_username", provider)
}

func passKey(provider string) string {
	return fmt.Sprintf("%s_password", provider)
}
