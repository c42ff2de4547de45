// Package journal persists bounded, append-only JSON-array log files, one
// per hook type. Each append is a whole-file read-modify-write guarded by an
// advisory lock file so concurrent invocations cannot lose entries.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultMaxEntries is the per-file entry ceiling. Oldest entries are
	// evicted first once it is exceeded.
	DefaultMaxEntries = 1000
	// DefaultMaxEntryBytes is the serialized-size ceiling for one entry.
	DefaultMaxEntryBytes = 64 * 1024

	dirPermission  = 0755
	filePermission = 0644
)

var (
	// ErrInvalidFilename is returned for empty or path-escaping log names.
	ErrInvalidFilename = errors.New("invalid log filename")
	// ErrEntryTooLarge is returned when a payload exceeds the per-entry
	// size ceiling. The log file is left unmodified.
	ErrEntryTooLarge = errors.New("log entry too large")
)

// Entry is one record in a journal file.
type Entry struct {
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Journal writes bounded JSON-array log files under a single directory.
type Journal struct {
	dir           string
	maxEntries    int
	maxEntryBytes int
	now           func() time.Time
}

// New creates a journal rooted at dir. Non-positive limits fall back to the
// defaults.
func New(dir string, maxEntries, maxEntryBytes int) *Journal {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if maxEntryBytes <= 0 {
		maxEntryBytes = DefaultMaxEntryBytes
	}
	return &Journal{
		dir:           dir,
		maxEntries:    maxEntries,
		maxEntryBytes: maxEntryBytes,
		now:           time.Now,
	}
}

// Dir returns the journal's log directory.
func (j *Journal) Dir() string {
	return j.dir
}

// Path returns the on-disk path for a named log file.
func (j *Journal) Path(name string) string {
	return filepath.Join(j.dir, name+".json")
}

// Append adds a timestamped entry holding payload to the named log file,
// evicting the oldest entries once the count ceiling is reached.
func (j *Journal) Append(name string, payload any) error {
	if err := validateName(name); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal log payload: %w", err)
	}
	if len(data) > j.maxEntryBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrEntryTooLarge, len(data), j.maxEntryBytes)
	}

	if err := os.MkdirAll(j.dir, dirPermission); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := j.Path(name)
	unlock, err := acquireLock(path)
	if err != nil {
		return err
	}
	defer unlock()

	entries := j.readEntries(path)
	if len(entries) >= j.maxEntries {
		entries = entries[len(entries)-j.maxEntries+1:]
	}
	entries = append(entries, Entry{
		Timestamp: j.now().UTC().Format(time.RFC3339Nano),
		Data:      json.RawMessage(data),
	})

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal log entries: %w", err)
	}

	// Write-then-rename so readers never observe a half-written array. The
	// temp name cannot collide: the lock is held for the whole cycle.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, filePermission); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace log file: %w", err)
	}
	return nil
}

// Read returns all entries of the named log file. A missing file yields an
// empty slice.
func (j *Journal) Read(name string) ([]Entry, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(j.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse log file: %w", err)
	}
	return entries, nil
}

// readEntries loads the existing array, treating missing or corrupt content
// as empty rather than failing the append.
func (j *Journal) readEntries(path string) []Entry {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("Failed to read log file, starting fresh")
		}
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Log file is not a valid entry array, starting fresh")
		return nil
	}
	return entries
}

func validateName(name string) error {
	if name == "" || strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFilename)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return nil
}
