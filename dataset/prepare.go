package dataset

import (
	"fmt"
	"log/slog"

	"github.com/malisevdinoglu/GenAI-Chatbot/core"
)

// Required columns for a usable recipe row.
const (
	FieldName        = "name"
	FieldIngredients = "ingredients"
	FieldSteps       = "steps"
)

// contentTemplate is the fixed layout for embeddable recipe text.
const contentTemplate = "Recipe Title: %s\n\nIngredients: %s\n\nInstructions: %s"

// Prepare turns raw records into normalized recipe documents.
//
// It takes the first limit records (all if limit <= 0) and skips any record
// whose name, ingredients or steps is absent or empty; a skipped row never
// becomes an empty or partial document. The source metadata entry is
// "<source>_row_<index>" using the record's original position, so filtering
// never shifts identifiers. Returns an ordered, possibly empty slice.
//
// Prepare is a pure transform over already-read input; reading the raw source
// is ReadRecords' concern.
func Prepare(records []Record, source string, limit int) []core.RecipeDoc {
	logger := slog.Default().With("component", "preparer")

	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	docs := make([]core.RecipeDoc, 0, len(records))
	for index, record := range records {
		name := record[FieldName]
		ingredients := record[FieldIngredients]
		steps := record[FieldSteps]

		if name == "" || ingredients == "" || steps == "" {
			logger.Debug("skipping row with missing fields", "row", index)
			continue
		}

		docs = append(docs, core.RecipeDoc{
			Content: fmt.Sprintf(contentTemplate, name, ingredients, steps),
			Metadata: map[string]string{
				core.MetaSource:     fmt.Sprintf("%s_row_%d", source, index),
				core.MetaRecipeName: name,
			},
		})
	}

	logger.Info("prepared documents", "rows", len(records), "documents", len(docs))
	return docs
}
