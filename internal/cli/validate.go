package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitchain/internal/models"
	"github.com/julianstephens/habitchain/internal/storage"
	"github.com/julianstephens/habitchain/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	doc, err := readDocument(ctx.Store.Path())
	if err != nil {
		return err
	}

	ctx.println("Validating data file...")
	result := validation.New().ValidateDocument(doc)

	ctx.println()
	ctx.println(result.FormatReport())
	return nil
}

// readDocument decodes the data file strictly. Unlike the store's Load, a
// corrupt file is an error here.
func readDocument(path string) (models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to read data file: %w", err)
	}
	doc, err := storage.Decode(data)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to parse data file: %w", err)
	}
	return doc, nil
}
