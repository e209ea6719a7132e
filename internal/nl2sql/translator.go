package nl2sql

import "context"

type Result struct {
	SQL      string `json:"sql"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Translator turns a natural-language finance question into a single SQL
// statement. It is only consulted when no fixed intent rule matched.
type Translator interface {
	Translate(ctx context.Context, question string) (Result, error)
}
