package tui

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/julianstephens/habitchain/internal/logger"
	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/storage"
)

// Session is the logged-in user remembered between runs.
type Session struct {
	User  models.User `json:"user"`
	Emoji string      `json:"emoji"`
}

// LoadSession reads a saved session. ok is false when there is none or it
// cannot be used.
func LoadSession(path string) (Session, bool) {
	if path == "" {
		return Session{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Failed to read session file", "path", path, "error", err)
		}
		return Session{}, false
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Warn("Ignoring corrupt session file", "path", path, "error", err)
		return Session{}, false
	}
	if s.User.ID <= 0 {
		return Session{}, false
	}
	return s, true
}

func SaveSession(path string, s Session) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return storage.WriteFileAtomic(path, data)
}

func ClearSession(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
