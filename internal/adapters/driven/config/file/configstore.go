package file

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/roster/internal/core/ports/driven"
)

// FileName is the configuration file inside the config directory.
const FileName = "config.toml"

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps dot-keyed settings in a TOML file. Keys are held flat
// and written as nested tables, so "contacts.google.client_id" becomes
// client_id under [contacts.google]. Every change rewrites the whole file.
type ConfigStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// NewConfigStore opens config.toml in dir, creating dir when missing. An
// absent file is an empty configuration.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if dir == "" {
		return nil, errors.New("config: directory not set")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &ConfigStore{path: filepath.Join(dir, FileName)}
	values, err := readFile(s.path)
	if err != nil {
		return nil, err
	}
	s.values = values
	return s, nil
}

// Path returns the file backing the store.
func (s *ConfigStore) Path() string {
	return s.path
}

// GetString implements driven.ConfigStore.
func (s *ConfigStore) GetString(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	str, _ := s.values[key].(string)
	return str
}

// GetStrings implements driven.ConfigStore. TOML arrays decode as []any,
// so non-string items are skipped.
func (s *ConfigStore) GetStrings(key string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch v := s.values[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Set implements driven.ConfigStore. The value is only kept if the file
// write succeeds.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.values)
	next[key] = value
	return s.commit(next)
}

// Unset implements driven.ConfigStore. Unsetting a missing key is a no-op.
func (s *ConfigStore) Unset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	next := maps.Clone(s.values)
	delete(next, key)
	return s.commit(next)
}

// commit writes values to a temp file and renames it over the config, so a
// crash never leaves a half-written file. Caller holds the write lock.
func (s *ConfigStore) commit(values map[string]any) error {
	body, err := toml.Marshal(toTables(values))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	s.values = values
	return nil
}

func readFile(path string) (map[string]any, error) {
	body, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var tables map[string]any
	if err := toml.Unmarshal(body, &tables); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fromTables(tables, ""), nil
}

// fromTables flattens nested tables into dot keys.
func fromTables(tables map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)
	for name, v := range tables {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		if sub, ok := v.(map[string]any); ok {
			maps.Copy(flat, fromTables(sub, key))
			continue
		}
		flat[key] = v
	}
	return flat
}

// toTables undoes fromTables. When a key is both a value and the prefix of
// other keys, the value wins and the longer keys are dropped.
func toTables(flat map[string]any) map[string]any {
	root := make(map[string]any)
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		v := flat[key]
		path := strings.Split(key, ".")
		table, ok := descend(root, path[:len(path)-1])
		if !ok {
			continue
		}
		leaf := path[len(path)-1]
		if _, isTable := table[leaf].(map[string]any); isTable {
			continue
		}
		table[leaf] = v
	}
	return root
}

// descend walks (creating as needed) the tables named by path. It fails if
// a segment is already a plain value.
func descend(root map[string]any, path []string) (map[string]any, bool) {
	table := root
	for _, name := range path {
		switch child := table[name].(type) {
		case nil:
			next := make(map[string]any)
			table[name] = next
			table = next
		case map[string]any:
			table = child
		default:
			return nil, false
		}
	}
	return table, true
}
