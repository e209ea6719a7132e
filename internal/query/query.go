package query

import (
	"context"
	"time"
)

// Result is an ordered sequence of column-keyed records. Columns preserves
// the select-list order, which the per-row maps cannot.
type Result struct {
	Columns  []string
	Rows     []map[string]any
	Duration time.Duration
}

type Executor interface {
	Execute(ctx context.Context, sqlText string) (Result, error)
}
