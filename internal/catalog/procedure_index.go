// Package catalog answers lookups over the TUSS procedure table and the plan
// table. Both datasets are read-only after construction, so every method is
// safe for concurrent use.
package catalog

import (
	"errors"
	"strings"

	"github.com/descobre-saude/app/models"
	"github.com/descobre-saude/internal/normalizer"
)

const (
	// DefaultSearchLimit caps Search results when no limit is given.
	DefaultSearchLimit = 50
	// SuggestMinLength is the shortest query Suggest reacts to.
	SuggestMinLength = 2
	// SuggestLimit caps Suggest results.
	SuggestLimit = 15
)

// ErrProcedureNotFound is returned by Lookup on a miss.
var ErrProcedureNotFound = errors.New("procedure code not found")

type indexedProcedure struct {
	record      models.ProcedureCode
	description string // normalized
}

// ProcedureIndex holds the procedure table in dataset order.
type ProcedureIndex struct {
	entries []indexedProcedure
}

// NewProcedureIndex builds an index over procedures. The slice is copied.
func NewProcedureIndex(procedures []models.ProcedureCode) *ProcedureIndex {
	entries := make([]indexedProcedure, len(procedures))
	for i, p := range procedures {
		entries[i] = indexedProcedure{
			record:      p,
			description: normalizer.Normalize(p.Description),
		}
	}
	return &ProcedureIndex{entries: entries}
}

// Len returns the number of procedures in the index.
func (idx *ProcedureIndex) Len() int {
	return len(idx.entries)
}

// Search returns up to limit procedures matching query, in dataset order.
//
// A query made only of digits is a code query and matches codes starting with
// it. Any other query is split into normalized terms; a record matches when
// every term occurs in its normalized description or in its raw code.
// A blank query matches nothing. A limit <= 0 means DefaultSearchLimit.
func (idx *ProcedureIndex) Search(query string, limit int) []models.ProcedureCode {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []models.ProcedureCode{}
	}

	var match func(e *indexedProcedure) bool
	if normalizer.IsDigits(trimmed) {
		match = func(e *indexedProcedure) bool {
			return strings.HasPrefix(e.record.Code, trimmed)
		}
	} else {
		terms := normalizer.Terms(trimmed)
		match = func(e *indexedProcedure) bool {
			for _, term := range terms {
				if !strings.Contains(e.description, term) && !strings.Contains(e.record.Code, term) {
					return false
				}
			}
			return true
		}
	}

	results := make([]models.ProcedureCode, 0)
	for i := range idx.entries {
		if len(results) == limit {
			break
		}
		if match(&idx.entries[i]) {
			results = append(results, idx.entries[i].record)
		}
	}
	return results
}

// Suggest is the autocomplete flavour of Search: it ignores queries shorter
// than SuggestMinLength characters and returns at most SuggestLimit records.
func (idx *ProcedureIndex) Suggest(query string) []models.ProcedureCode {
	if len([]rune(query)) < SuggestMinLength {
		return []models.ProcedureCode{}
	}
	return idx.Search(query, SuggestLimit)
}

// Lookup returns the first procedure whose code equals code.
func (idx *ProcedureIndex) Lookup(code string) (models.ProcedureCode, error) {
	code = strings.TrimSpace(code)
	for _, e := range idx.entries {
		if e.record.Code == code {
			return e.record, nil
		}
	}
	return models.ProcedureCode{}, ErrProcedureNotFound
}
