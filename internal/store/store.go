// Package store persists the application document as a single JSON file.
// The whole document is written on every save; with one writer and a
// document measured in kilobytes that is simpler and safer than partial
// updates.
package store

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	apperrors "tomatoclock/internal/infrastructure/errors"
	"tomatoclock/internal/infrastructure/logging"
	"tomatoclock/internal/types"
)

// Service defines the interface for document persistence
type Service interface {
	// Load reads the document, returning a fresh default document when the
	// file does not exist yet.
	Load() (*types.AppData, error)
	// Save atomically replaces the document on disk.
	Save(data *types.AppData) error
	// Path returns the backing file location.
	Path() string
}

// document is the on-disk envelope. Keeping the data under a named key
// leaves room for sibling top-level keys in later versions.
type document struct {
	AppData *types.AppData `json:"appData"`
}

// JSONStore implements Service on a single JSON file with atomic writes.
type JSONStore struct {
	config *Config
	mu     sync.Mutex
	logger logging.Logger
}

// NewJSONStore creates a store for the given configuration.
func NewJSONStore(config *Config, logger logging.Logger) *JSONStore {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &JSONStore{config: config, logger: logger}
}

// Path returns the backing file location.
func (s *JSONStore) Path() string {
	return s.config.Path
}

// Load reads and decodes the document. A missing file yields the default
// document; a corrupt file is an error so user data is never silently
// overwritten.
func (s *JSONStore) Load() (*types.AppData, error) {
	const op = "store.Load"

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.config.Path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("No data file found, starting fresh", "path", s.config.Path)
			return types.NewAppData(), nil
		}
		return nil, apperrors.HandleStoreError(op, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.HandleStoreError(op, err)
	}
	if doc.AppData == nil {
		return types.NewAppData(), nil
	}
	normalizeLoaded(doc.AppData)
	return doc.AppData, nil
}

// Save encodes the document and replaces the file via a temp-file rename so
// a crash mid-write never leaves a truncated document behind.
func (s *JSONStore) Save(data *types.AppData) error {
	const op = "store.Save"

	s.mu.Lock()
	defer s.mu.Unlock()

	var raw []byte
	var err error
	if s.config.PrettyPrint {
		raw, err = json.MarshalIndent(document{AppData: data}, "", "  ")
	} else {
		raw, err = json.Marshal(document{AppData: data})
	}
	if err != nil {
		return apperrors.HandleStoreError(op, err)
	}

	dir := filepath.Dir(s.config.Path)
	tmp, err := os.CreateTemp(dir, ".pomodoro-data-*.tmp")
	if err != nil {
		return apperrors.HandleStoreError(op, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.HandleStoreError(op, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.HandleStoreError(op, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.HandleStoreError(op, err)
	}
	if err := os.Rename(tmpName, s.config.Path); err != nil {
		os.Remove(tmpName)
		return apperrors.HandleStoreError(op, err)
	}
	return nil
}

// normalizeLoaded repairs nil slices left by older documents so the rest of
// the code never nil-checks them.
func normalizeLoaded(data *types.AppData) {
	if data.Blacklist == nil {
		data.Blacklist = []types.BlacklistItem{}
	}
	if data.Tags == nil {
		data.Tags = types.NewAppData().Tags
	}
	if data.History == nil {
		data.History = []types.HistoryDay{}
	}
	if data.Interruptions == nil {
		data.Interruptions = []types.InterruptionDay{}
	}
	if data.Settings == (types.Settings{}) {
		data.Settings = types.DefaultSettings()
	}
}
