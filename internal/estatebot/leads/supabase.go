package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/config"
	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
)

// SupabaseStore persists leads through the Supabase REST interface.
type SupabaseStore struct {
	url        string
	key        string
	table      string
	logger     *logx.Logger
	httpClient *http.Client
}

// NewSupabase creates a Supabase-backed lead store.
func NewSupabase(cfg config.LeadsConfig, logger *logx.Logger) (*SupabaseStore, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("missing SUPABASE_URL or SUPABASE_KEY")
	}
	table := cfg.Table
	if table == "" {
		table = "leads"
	}
	return &SupabaseStore{
		url:    cfg.SupabaseURL,
		key:    cfg.SupabaseKey,
		table:  table,
		logger: logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (s *SupabaseStore) Save(ctx context.Context, lead Lead) error {
	resp, err := s.request(ctx, http.MethodPost, s.table, lead)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		s.logger.Error(ctx, "supabase insert failed",
			logx.KV("status", resp.StatusCode), logx.KV("body", string(body)))
		return fmt.Errorf("%w: status %d", ErrSaveFailed, resp.StatusCode)
	}

	s.logger.Info(ctx, "lead saved", logx.KV("name", lead.Name), logx.KV("phone", lead.Phone))
	return nil
}

func (s *SupabaseStore) List(ctx context.Context) ([]Lead, error) {
	resp, err := s.request(ctx, http.MethodGet, s.table+"?select=*", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase list failed with status %d", resp.StatusCode)
	}

	var out []Lead
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return out, nil
}

// Ping verifies the REST endpoint answers.
func (s *SupabaseStore) Ping(ctx context.Context) error {
	resp, err := s.request(ctx, http.MethodGet, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("supabase ping failed with status %d", resp.StatusCode)
	}
	return nil
}

func (s *SupabaseStore) request(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, s.url+"/rest/v1/"+endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	return s.httpClient.Do(req)
}
