package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spendql/spendql/internal/observability"
	"github.com/spendql/spendql/internal/resolver"
)

type generateRequest struct {
	Query string `json:"query"`
}

// handleGenerateSQL resolves a question to SQL, executes it, and reports the
// outcome. Pipeline failures (empty question, fallback failure, execution
// failure) are part of the response contract and ship as HTTP 200 with an
// "error" field; clients of the previous service depend on that shape.
func handleGenerateSQL(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Resolver == nil || deps.Executor == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "query dependencies are not configured")
		return
	}

	// Extra fields ride along untouched; existing clients send session
	// metadata next to the query and expect it ignored.
	var request generateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}

	question := strings.ToLower(strings.TrimSpace(request.Query))
	response := map[string]any{"query": question}

	resolved, err := deps.Resolver.Resolve(r.Context(), question)
	if err != nil {
		if errors.Is(err, resolver.ErrNoQuery) {
			observability.ObserveEmptyQuestion()
			response["error"] = "no query provided"
			writeJSON(w, http.StatusOK, response)
			return
		}
		logError(deps.Logger, r, "sql generation failed", err,
			slog.String("question", question),
		)
		response["error"] = err.Error()
		writeJSON(w, http.StatusOK, response)
		return
	}

	response["sql"] = resolved.SQL

	start := time.Now()
	result, err := deps.Executor.Execute(r.Context(), resolved.SQL)
	observability.ObserveQueryExecution(time.Since(start), err)
	if err != nil {
		logError(deps.Logger, r, "sql execution failed", err,
			slog.String("question", question),
			slog.String("sql", resolved.SQL),
		)
		response["error"] = err.Error()
		writeJSON(w, http.StatusOK, response)
		return
	}

	if deps.Logger != nil {
		deps.Logger.InfoContext(r.Context(), "question resolved",
			slog.String("trace_id", observability.TraceIDFromContext(r.Context())),
			slog.String("source", string(resolved.Source)),
			slog.String("rule", resolved.Rule),
			slog.Int("rows", len(result.Rows)),
			slog.String("duration", result.Duration.String()),
		)
	}

	response["result"] = result.Rows
	writeJSON(w, http.StatusOK, response)
}

func logError(logger *slog.Logger, r *http.Request, message string, err error, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	all := append([]slog.Attr{
		slog.String("trace_id", observability.TraceIDFromContext(r.Context())),
		slog.Any("error", err),
	}, attrs...)
	logger.LogAttrs(r.Context(), slog.LevelError, message, all...)
}
