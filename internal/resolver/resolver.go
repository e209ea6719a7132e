// Package resolver layers the fixed intent rules over the model fallback to
// produce the single SQL string a request executes.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spendql/spendql/internal/intent"
	"github.com/spendql/spendql/internal/nl2sql"
	"github.com/spendql/spendql/internal/observability"
)

// ErrNoQuery signals an empty question. Nothing downstream runs: no rule is
// evaluated and the fallback is never called.
var ErrNoQuery = errors.New("no query provided")

type Source string

const (
	SourceIntent Source = "intent"
	SourceModel  Source = "model"
)

// Resolved is the final SQL string together with how it was produced.
type Resolved struct {
	SQL    string
	Source Source
	Rule   string
	Model  string
}

type Resolver struct {
	translator nl2sql.Translator
}

func New(translator nl2sql.Translator) *Resolver {
	return &Resolver{translator: translator}
}

// Resolve expects a normalized (lowercased, trimmed) question. The intent
// table is consulted first; only an unrecognized question reaches the model,
// and a model failure propagates with no SQL produced.
func (r *Resolver) Resolve(ctx context.Context, question string) (Resolved, error) {
	if question == "" {
		return Resolved{}, ErrNoQuery
	}

	if sql, rule, ok := intent.Resolve(question); ok {
		observability.ObserveIntentMatch(rule)
		return Resolved{SQL: sql, Source: SourceIntent, Rule: rule}, nil
	}

	if r.translator == nil {
		return Resolved{}, fmt.Errorf("no intent matched and no translator is configured")
	}

	start := time.Now()
	result, err := r.translator.Translate(ctx, question)
	observability.ObserveFallback(time.Since(start), err)
	if err != nil {
		return Resolved{}, fmt.Errorf("generate sql: %w", err)
	}
	return Resolved{SQL: result.SQL, Source: SourceModel, Model: result.Model}, nil
}
