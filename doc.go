// Package plaindb is a file-backed database manager with a plain-words
// query language instead of SQL.
//
// The whole database lives in memory and is persisted as a single
// zstd-compressed snapshot file. Every mutating command persists
// immediately unless a transaction is active; begin/commit/rollback batch
// several mutations into one persisted unit or discard them all.
//
// # Quick Start
//
// Create an in-memory database:
//
//	st, _ := store.NewMemoryStore(store.Options{})
//	instance := plaindb.Open(st)
//	engine, _ := instance.Engine(core.Identity{Name: "App", Email: "app@example.com"})
//
//	engine.Execute(`build users id int name text primarykey id`)
//	engine.Execute(`add in users id 1 name "Ann"`)
//
//	result, _ := engine.Execute("show users")
//	result.Display()
//
// # Commands
//
//   - build <table> <column> <type> ... [primarykey <column>]
//   - add in <table> <column> <value> ...
//   - change <table> <key> <column> <value> ...
//   - kick out <table> <key>
//   - show <table>
//   - mix it up <table1> <table2> <column>
//   - begin, commit, rollback
//
// Column types: int, float, boolean, date, char, text, string.
package plaindb
