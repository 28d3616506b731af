package plaindb

import (
	"github.com/plaindb/plaindb/core"
	"github.com/plaindb/plaindb/db"
	"github.com/plaindb/plaindb/store"
)

type Instance struct {
	Store *store.Store
}

func Open(st *store.Store) *Instance {
	return &Instance{
		Store: st,
	}
}

func (instance *Instance) Engine(identity core.Identity) (*db.Engine, error) {
	return db.NewEngine(instance.Store, identity)
}
