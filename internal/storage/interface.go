package storage

import "github.com/julianstephens/habitchain/internal/models"

// Provider loads and persists the whole data document.
type Provider interface {
	// Load never fails: a missing, empty or corrupt file yields an empty document.
	Load() models.Document
	// Save overwrites the persisted document with doc.
	Save(doc models.Document) error
	// Path returns the location of the persisted document.
	Path() string
}
