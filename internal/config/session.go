package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zylch/zylch-go/models"
)

// ErrNoSession is returned by LoadSession when no session file exists yet.
var ErrNoSession = errors.New("no persisted session")

// LoadSession reads the persisted login session from path. Returns
// [ErrNoSession] if the file does not exist.
func LoadSession(path string) (models.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Session{}, ErrNoSession
		}
		return models.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var session models.Session
	if err = json.Unmarshal(data, &session); err != nil {
		return models.Session{}, fmt.Errorf("decode session file: %w", err)
	}

	return session, nil
}

// SaveSession persists the login session to path, creating parent
// directories as needed. The file is written 0600 since it holds the token.
func SaveSession(path string, session models.Session) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err = os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}

// ClearSession removes the persisted session file. Missing file is not an
// error.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
