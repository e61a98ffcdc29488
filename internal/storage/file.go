package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	logx "vocabpop/pkg/logx"
)

// fileStore is the dependency-free persistence backend: a single
// append-only JSON Lines file of shown records.
type fileStore struct {
	log logx.Logger

	mu   sync.Mutex
	path string
	f    *os.File
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("storage.path is required for file driver")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return &fileStore{log: log, path: path, f: f}, nil
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

func (s *fileStore) AppendShown(ctx context.Context, r ShownRecord) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return errors.New("history file closed")
	}
	return json.NewEncoder(s.f).Encode(r)
}

// RecentShown scans the whole file and keeps the last limit records.
// The history file stays small, so a full scan is fine here.
func (s *fileStore) RecentShown(ctx context.Context, limit int) ([]ShownRecord, error) {
	_ = ctx
	if limit <= 0 {
		limit = 20
	}

	s.mu.Lock()
	path := s.path
	s.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []ShownRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r ShownRecord
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			s.log.Debug("history line skipped", logx.Err(err))
			continue
		}
		out = append(out, r)
		if len(out) > limit {
			out = out[len(out)-limit:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
