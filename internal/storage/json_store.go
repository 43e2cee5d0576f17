package storage

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/julianstephens/habitchain/internal/errors"
	"github.com/julianstephens/habitchain/internal/logger"
	"github.com/julianstephens/habitchain/internal/models"
)

// JSONStore persists the data document as a single JSON file.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string {
	return s.path
}

// Init writes an empty document if no data file exists yet.
func (s *JSONStore) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}
	return s.Save(models.EmptyDocument())
}

func (s *JSONStore) Load() models.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("No data file found, starting empty", "path", s.path)
		} else {
			logger.Error("Failed to read data file, starting empty", "path", s.path, "error", err)
		}
		return models.EmptyDocument()
	}

	if len(data) == 0 {
		logger.Warn("Data file is empty, starting empty", "path", s.path)
		return models.EmptyDocument()
	}

	doc, err := Decode(data)
	if err != nil {
		logger.Error("Failed to parse data file, starting empty", "path", s.path, "error", err)
		return models.EmptyDocument()
	}

	return doc
}

// Save serializes doc and swaps it into place via a temp file and rename, so
// readers see either the old or the new document, never a partial one.
func (s *JSONStore) Save(doc models.Document) error {
	data, err := json.MarshalIndent(normalize(doc), "", "  ")
	if err != nil {
		return &apperrors.PersistenceError{Op: "encode", Path: s.path, Err: err}
	}

	return WriteFileAtomic(s.path, data)
}

// Decode parses a data document and fills in missing collections.
func Decode(data []byte) (models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Document{}, fmt.Errorf("failed to parse data document: %w", err)
	}
	return normalize(doc), nil
}

// normalize replaces nil collections and habit histories with empty slices so
// the file always carries arrays rather than nulls.
func normalize(doc models.Document) models.Document {
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Habits == nil {
		doc.Habits = []models.Habit{}
	}
	if doc.Members == nil {
		doc.Members = []models.Member{}
	}
	for i := range doc.Habits {
		if doc.Habits[i].History == nil {
			doc.Habits[i].History = []string{}
		}
	}
	return doc
}
