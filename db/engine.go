package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/plaindb/plaindb/core"
	"github.com/plaindb/plaindb/lang"
	"github.com/plaindb/plaindb/store"
)

var (
	ErrTransactionActive = errors.New("transaction already active")
	ErrNoTransaction     = errors.New("no active transaction")
)

// Engine executes parsed commands against the single in-memory database.
// Outside a transaction every mutating command persists immediately;
// begin/commit/rollback batch mutations into one persisted unit backed by a
// deep snapshot of the table set.
type Engine struct {
	store    *store.Store
	identity core.Identity

	db       *core.Database
	snapshot *core.Database // set while a transaction is active
}

// NewEngine loads the persisted database and returns an engine bound to it.
// A missing snapshot file yields an empty database; a corrupt one is a
// fatal error for the session.
func NewEngine(st *store.Store, identity core.Identity) (*Engine, error) {
	db, err := st.Load()
	if err != nil {
		return nil, err
	}
	return &Engine{store: st, identity: identity, db: db}, nil
}

func (engine *Engine) Database() *core.Database {
	return engine.db
}

func (engine *Engine) InTransaction() bool {
	return engine.snapshot != nil
}

func (engine *Engine) Execute(line string) (Result, error) {
	statement, err := lang.Parse(line)
	if err != nil {
		return nil, err
	}

	switch statement.Type() {
	case lang.BuildStatementType:
		return engine.executeBuild(statement.(lang.BuildStatement))
	case lang.AddStatementType:
		return engine.executeAdd(statement.(lang.AddStatement))
	case lang.ChangeStatementType:
		return engine.executeChange(statement.(lang.ChangeStatement))
	case lang.KickStatementType:
		return engine.executeKick(statement.(lang.KickStatement))
	case lang.ShowStatementType:
		return engine.executeShow(statement.(lang.ShowStatement))
	case lang.MixStatementType:
		return engine.executeMix(statement.(lang.MixStatement))
	case lang.BeginStatementType:
		return engine.executeBegin()
	case lang.CommitStatementType:
		return engine.executeCommit()
	case lang.RollbackStatementType:
		return engine.executeRollback()
	default:
		return nil, fmt.Errorf("unsupported statement type: %v", statement.Type())
	}
}

// autoCommit persists the database unless a transaction is active, in which
// case the mutation stays pending until commit.
func (engine *Engine) autoCommit(message string) error {
	if engine.snapshot != nil {
		return nil
	}
	return engine.store.Persist(engine.db, engine.identity, message)
}

func (engine *Engine) executeBegin() (CommitResult, error) {
	startTime := time.Now()

	if engine.snapshot != nil {
		return CommitResult{}, ErrTransactionActive
	}
	engine.snapshot = engine.db.Clone()

	return CommitResult{
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

func (engine *Engine) executeCommit() (CommitResult, error) {
	startTime := time.Now()

	if engine.snapshot == nil {
		return CommitResult{}, ErrNoTransaction
	}
	if err := engine.store.Persist(engine.db, engine.identity, "commit transaction"); err != nil {
		return CommitResult{}, err
	}
	engine.snapshot = nil

	return CommitResult{
		Persisted:        true,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

func (engine *Engine) executeRollback() (CommitResult, error) {
	startTime := time.Now()

	if engine.snapshot == nil {
		return CommitResult{}, ErrNoTransaction
	}
	engine.db = engine.snapshot
	engine.snapshot = nil

	return CommitResult{
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

// History lists recorded snapshots, newest first.
func (engine *Engine) History(limit int) ([]store.Snapshot, error) {
	history := engine.store.History()
	if history == nil {
		return nil, store.ErrNoHistory
	}
	return history.List(limit)
}

// RestoreSnapshot replaces the live database with a recorded snapshot and
// persists it, which records the restore itself as a new snapshot.
func (engine *Engine) RestoreSnapshot(id string) error {
	if engine.snapshot != nil {
		return ErrTransactionActive
	}

	db, err := engine.store.LoadSnapshot(id)
	if err != nil {
		return err
	}
	engine.db = db

	return engine.store.Persist(engine.db, engine.identity, "restore to "+id)
}
