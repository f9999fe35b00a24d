// Package settings provides the persisted key/value preference store.
// Values live in a flat TOML file; every change fires per-key listeners so
// controllers can react to edits from this process or from another one.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Well-known keys.
const (
	KeyTheme           = "theme"
	KeyAutoBlack       = "auto_black"
	KeyCommonData      = "common_data"
	KeyCommonSmallData = "common_small_data"
	KeyMinUVIndex      = "min_uv_index"
	KeyProvider        = "provider"
	KeyAQIProvider     = "aqi_provider"
	KeyUnits           = "units"
)

// Change source values.
const (
	SourceLocal = "local" // Set* call in this process
	SourceFile  = "file"  // Reload picked up an external edit
)

// ErrClosed is returned by mutating calls on a closed store.
var ErrClosed = errors.New("settings store is closed")

// Change describes a single key change.
type Change struct {
	Key    string
	Old    any // nil if the key was absent
	New    any // nil if the key was removed
	Source string
}

type listener struct {
	fn func(Change)
}

// Store is a thread-safe key/value store backed by an optional TOML file.
type Store struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	path      string
	values    map[string]any
	listeners map[string][]*listener
	closed    bool
}

// NewMemory creates a store that is never written to disk.
func NewMemory(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger:    logger,
		values:    make(map[string]any),
		listeners: make(map[string][]*listener),
	}
}

// Open creates a store persisted at path, loading existing values.
// A missing file is not an error.
func Open(path string, logger *slog.Logger) (*Store, error) {
	s := NewMemory(logger)
	s.path = path

	values, err := readFile(path)
	if err != nil {
		return nil, err
	}
	s.values = values
	return s, nil
}

// Path returns the backing file path, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// Has reports whether key has a value.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// Keys returns all keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the raw value for key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the string value of key, or def if absent or not a string.
func (s *Store) GetString(key, def string) string {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	str, ok := v.(string)
	if !ok {
		return def
	}
	return str
}

// GetBool returns the boolean value of key, or def.
func (s *Store) GetBool(key string, def bool) bool {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// GetNumber returns the numeric value of key, or def.
func (s *Store) GetNumber(key string, def float64) float64 {
	v, ok := s.Get(key)
	if !ok {
		return def
	}
	n, ok := toFloat(v)
	if !ok {
		return def
	}
	return n
}

// SetString stores a string value.
func (s *Store) SetString(key, value string) error {
	return s.set(key, value)
}

// SetBool stores a boolean value.
func (s *Store) SetBool(key string, value bool) error {
	return s.set(key, value)
}

// SetNumber stores a numeric value.
func (s *Store) SetNumber(key string, value float64) error {
	return s.set(key, value)
}

// Remove deletes key.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	old, ok := s.values[key]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.values, key)
	err := s.saveLocked()
	s.mu.Unlock()

	s.fire(Change{Key: key, Old: old, Source: SourceLocal})
	return err
}

// OnKey registers fn to be called whenever key changes.
// Listeners run on the goroutine that made the change.
// The returned function removes the listener.
func (s *Store) OnKey(key string, fn func(Change)) func() {
	l := &listener{fn: fn}

	s.mu.Lock()
	s.listeners[key] = append(s.listeners[key], l)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		ls := s.listeners[key]
		for i, other := range ls {
			if other == l {
				s.listeners[key] = append(ls[:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Reload re-reads the backing file and fires listeners for every key whose
// value differs from memory.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}

	values, err := readFile(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	var changes []Change
	for k, nv := range values {
		ov, ok := s.values[k]
		if !ok || !equal(ov, nv) {
			changes = append(changes, Change{Key: k, Old: ov, New: nv, Source: SourceFile})
		}
	}
	for k, ov := range s.values {
		if _, ok := values[k]; !ok {
			changes = append(changes, Change{Key: k, Old: ov, Source: SourceFile})
		}
	}
	s.values = values
	s.mu.Unlock()

	sort.Slice(changes, func(i, j int) bool { return changes[i].Key < changes[j].Key })
	for _, c := range changes {
		s.logger.Debug("setting changed on disk", "key", c.Key)
		s.fire(c)
	}
	return nil
}

// Close drops all listeners. Later Set calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = make(map[string][]*listener)
	return nil
}

func (s *Store) set(key string, value any) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	old, had := s.values[key]
	if had && equal(old, value) {
		s.mu.Unlock()
		return nil
	}
	s.values[key] = value
	err := s.saveLocked()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("failed to persist setting", "key", key, "error", err)
	}
	s.fire(Change{Key: key, Old: old, New: value, Source: SourceLocal})
	return err
}

func (s *Store) fire(c Change) {
	s.mu.RLock()
	ls := append([]*listener(nil), s.listeners[c.Key]...)
	s.mu.RUnlock()

	for _, l := range ls {
		l.fn(c)
	}
}

// saveLocked writes all values to the backing file. Caller holds s.mu.
func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := toml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	// Write to temp file then rename so watchers never see a partial file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}

func readFile(path string) (map[string]any, error) {
	values := make(map[string]any)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return values, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch a.(type) {
	case string, bool:
		return a == b
	default:
		// Tables and arrays are not used by the application; treat as changed
		return false
	}
}
