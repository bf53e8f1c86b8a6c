package command

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// storedCredentials is what login persists between invocations.
type storedCredentials struct {
	AccessToken string    `json:"access_token"`
	Email       string    `json:"email"`
	APIURL      string    `json:"api_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func saveCredentials(path string, creds *storedCredentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func loadCredentials(path string) (*storedCredentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var creds storedCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	if creds.AccessToken == "" {
		return nil, errors.New("no access token stored")
	}
	if !creds.ExpiresAt.IsZero() && time.Now().After(creds.ExpiresAt) {
		return nil, errors.New("access token expired")
	}
	return &creds, nil
}

func deleteCredentials(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
