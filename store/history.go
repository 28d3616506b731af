package store

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
	"github.com/go-git/go-git/v6/storage/filesystem"
	"github.com/go-git/go-git/v6/storage/memory"

	"github.com/plaindb/plaindb/core"
)

const (
	historyDir   = "history"
	snapshotFile = "snapshot.db"
)

// Snapshot identifies one recorded state of the database.
type Snapshot struct {
	Id      string
	When    time.Time
	Author  string // "Name <email>" format
	Message string
}

func (snapshot Snapshot) String() string {
	return fmt.Sprintf("Snapshot{Id: %s, When: %s, Author: %s}", snapshot.Id, snapshot.When, snapshot.Author)
}

// History records every persisted snapshot as a commit in a git repository
// under the data directory, so any previous state can be listed and
// restored.
type History struct {
	repo *git.Repository
	wt   billy.Filesystem
}

func openFileHistory(baseDir string) (*History, error) {
	fs := osfs.New(filepath.Join(baseDir, historyDir))

	dot, err := fs.Chroot(".git")
	if err != nil {
		return nil, err
	}

	st := filesystem.NewStorageWithOptions(
		dot,
		cache.NewObjectLRUDefault(),
		filesystem.Options{ExclusiveAccess: true})

	repo, err := git.Open(st, fs)
	if err != nil {
		repo, err = git.Init(st, git.WithWorkTree(fs))
		if err != nil {
			return nil, err
		}
	}

	return &History{repo: repo, wt: fs}, nil
}

func openMemoryHistory() (*History, error) {
	wt := memfs.New()

	repo, err := git.Init(memory.NewStorage(), git.WithWorkTree(wt))
	if err != nil {
		return nil, err
	}

	return &History{repo: repo, wt: wt}, nil
}

// Record commits the compressed snapshot bytes, returning the new entry.
func (history *History) Record(data []byte, identity core.Identity, message string) (Snapshot, error) {
	f, err := history.wt.Create(snapshotFile)
	if err != nil {
		return Snapshot{}, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return Snapshot{}, err
	}
	if err := f.Close(); err != nil {
		return Snapshot{}, err
	}

	worktree, err := history.repo.Worktree()
	if err != nil {
		return Snapshot{}, err
	}
	if _, err := worktree.Add(snapshotFile); err != nil {
		return Snapshot{}, err
	}

	signature := &object.Signature{Name: identity.Name, Email: identity.Email, When: time.Now()}
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author:            signature,
		AllowEmptyCommits: true,
	})
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Id:      hash.String(),
		When:    signature.When,
		Author:  fmt.Sprintf("%s <%s>", identity.Name, identity.Email),
		Message: message,
	}, nil
}

// List returns recorded snapshots, newest first. A limit of 0 means all.
func (history *History) List(limit int) ([]Snapshot, error) {
	headRef, err := history.repo.Head()
	if err != nil || headRef == nil {
		// No commits yet
		return nil, nil
	}

	cIter, err := history.repo.Log(&git.LogOptions{From: headRef.Hash()})
	if err != nil {
		return nil, err
	}

	var snapshots []Snapshot
	err = cIter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(snapshots) >= limit {
			return storer.ErrStop
		}
		author := ""
		if c.Author.Name != "" || c.Author.Email != "" {
			author = fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email)
		}
		snapshots = append(snapshots, Snapshot{
			Id:      c.Hash.String(),
			When:    c.Committer.When,
			Author:  author,
			Message: strings.TrimSpace(c.Message),
		})
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return nil, err
	}

	return snapshots, nil
}

// Latest returns the most recent snapshot, or the zero Snapshot when
// nothing has been recorded yet.
func (history *History) Latest() Snapshot {
	headRef, err := history.repo.Head()
	if err != nil || headRef == nil {
		return Snapshot{}
	}

	commit, err := history.repo.CommitObject(headRef.Hash())
	if err != nil {
		return Snapshot{}
	}

	author := ""
	if commit.Author.Name != "" || commit.Author.Email != "" {
		author = fmt.Sprintf("%s <%s>", commit.Author.Name, commit.Author.Email)
	}

	return Snapshot{
		Id:      headRef.Hash().String(),
		When:    commit.Committer.When,
		Author:  author,
		Message: strings.TrimSpace(commit.Message),
	}
}

// Snapshot returns the raw compressed snapshot recorded under the given
// commit id.
func (history *History) Snapshot(id string) ([]byte, error) {
	commit, err := history.repo.CommitObject(plumbing.NewHash(id))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s not found: %w", id, err)
	}

	file, err := commit.File(snapshotFile)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s has no data: %w", id, err)
	}

	reader, err := file.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
