package leads

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
)

// FileStore appends leads to a pretty-printed JSON array on disk.
// The default backend for single-instance deployments.
type FileStore struct {
	path   string
	logger *logx.Logger
	mu     sync.Mutex
}

// NewFile creates a file-backed lead store, creating the file (and its
// directory) with an empty array when absent.
func NewFile(path string, logger *logx.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create leads dir: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("create leads file: %w", err)
		}
		logger.Info(context.Background(), "created new leads file", logx.KV("path", path))
	}
	return &FileStore{path: path, logger: logger}, nil
}

func (s *FileStore) Save(ctx context.Context, lead Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := s.load()
	if err != nil {
		// A corrupt file loses old records but must not lose the new lead.
		s.logger.Error(ctx, "leads file unreadable, starting a fresh list", logx.KV("error", err))
		contacts = nil
	}

	contacts = append(contacts, lead)

	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal leads: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write leads file: %w", err)
	}

	s.logger.Info(ctx, "lead saved",
		logx.KV("name", lead.Name), logx.KV("phone", lead.Phone), logx.KV("total", len(contacts)))
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() ([]Lead, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read leads file: %w", err)
	}
	var contacts []Lead
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("decode leads file: %w", err)
	}
	return contacts, nil
}
