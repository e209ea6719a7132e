package asker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type Service struct {
	cfg       Config
	log       *slog.Logger
	http      *http.Client
	generator *Generator
}

type generateSQLRequest struct {
	Query string `json:"query"`
}

type generateSQLResponse struct {
	Query  string           `json:"query"`
	SQL    string           `json:"sql"`
	Error  string           `json:"error"`
	Result []map[string]any `json:"result"`
}

func NewService(cfg Config, logger *slog.Logger, client *http.Client) (*Service, error) {
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return nil, fmt.Errorf("api base url is required")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &Service{
		cfg:       cfg,
		log:       logger,
		http:      client,
		generator: NewGenerator(cfg.Seed, cfg.FreeFormPct),
	}, nil
}

func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		if err := s.askOnce(ctx); err != nil {
			s.log.Error("failed to ask demo question", slog.Any("error", err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Service) askOnce(ctx context.Context) error {
	question := s.generator.NextQuestion()

	var response generateSQLResponse
	status, body, err := s.doJSON(ctx, http.MethodPost, "/generate-sql", generateSQLRequest{Query: question}, &response)
	if err != nil {
		return fmt.Errorf("generate-sql request failed: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("generate-sql request status %d: %s", status, strings.TrimSpace(string(body)))
	}
	if response.Error != "" {
		s.log.Warn(
			"demo question could not be answered",
			slog.String("asker_id", s.cfg.AskerID),
			slog.String("question", question),
			slog.String("sql", response.SQL),
			slog.String("error", response.Error),
		)
		return nil
	}

	s.log.Info(
		"asked demo question",
		slog.String("asker_id", s.cfg.AskerID),
		slog.String("question", question),
		slog.String("sql", response.SQL),
		slog.Int("row_count", len(response.Result)),
	)
	return nil
}

func (s *Service) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) (int, []byte, error) {
	var payload io.Reader
	if requestBody != nil {
		raw, err := json.Marshal(requestBody)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.cfg.APIBaseURL+path, payload)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	if responseBody != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, responseBody); err != nil {
			return resp.StatusCode, body, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, body, nil
}
