package store

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/klauspost/compress/zstd"

	"github.com/plaindb/plaindb/core"
)

var ErrNoHistory = errors.New("history is not enabled")

const (
	defaultFileName = "plain.db"
	tmpSuffix       = ".tmp"
)

// Store persists the whole database as one zstd-compressed snapshot file on
// a billy filesystem: osfs for real use, memfs for tests and the in-memory
// CLI mode.
type Store struct {
	fs      billy.Filesystem
	name    string
	history *History
}

type Options struct {
	FileName string // snapshot file name, defaults to "plain.db"
	History  bool   // record every persisted snapshot in a git log
}

func (options Options) fileName() string {
	if options.FileName == "" {
		return defaultFileName
	}
	return options.FileName
}

func NewFileStore(dir string, options Options) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	store := &Store{fs: osfs.New(dir), name: options.fileName()}

	if options.History {
		history, err := openFileHistory(dir)
		if err != nil {
			return nil, err
		}
		store.history = history
	}

	return store, nil
}

func NewMemoryStore(options Options) (*Store, error) {
	store := &Store{fs: memfs.New(), name: options.fileName()}

	if options.History {
		history, err := openMemoryHistory()
		if err != nil {
			return nil, err
		}
		store.history = history
	}

	return store, nil
}

// History returns the snapshot history, or nil when it is disabled.
func (store *Store) History() *History {
	return store.history
}

// Persist encodes and compresses the database, then atomically replaces the
// snapshot file by writing to a temp file and renaming over the target.
// With history enabled, the snapshot is also recorded as a commit.
func (store *Store) Persist(db *core.Database, identity core.Identity, message string) error {
	raw, err := Encode(db)
	if err != nil {
		return err
	}
	compressed, err := compress(raw)
	if err != nil {
		return err
	}

	tmp := store.name + tmpSuffix
	f, err := store.fs.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := f.Write(compressed); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := store.fs.Rename(tmp, store.name); err != nil {
		return err
	}

	if store.history != nil {
		if _, err := store.history.Record(compressed, identity, message); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
	}

	return nil
}

// Load reads the persisted database. A missing snapshot file yields an
// empty database; a file that fails to decompress or decode yields
// ErrCorruptStorage, which callers must treat as fatal rather than starting
// over with an empty database.
func (store *Store) Load() (*core.Database, error) {
	f, err := store.fs.Open(store.name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.NewDatabase(), nil
		}
		return nil, err
	}
	defer f.Close()

	compressed, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return decodeSnapshot(compressed)
}

// LoadSnapshot decodes a database state previously recorded in the history.
func (store *Store) LoadSnapshot(id string) (*core.Database, error) {
	if store.history == nil {
		return nil, ErrNoHistory
	}
	compressed, err := store.history.Snapshot(id)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(compressed)
}

func decodeSnapshot(compressed []byte) (*core.Database, error) {
	raw, err := decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStorage, err)
	}
	return Decode(raw)
}

func compress(raw []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
