package core

import (
	"fmt"
	"maps"
)

// Row maps column names to typed values. Every declared column is present;
// columns not supplied on insert hold nil.
type Row map[string]any

// Table owns its rows exclusively. Row order is insertion order and is the
// iteration order for show and join. When a primary key is declared, rows
// are additionally indexed by the key's formatted value.
type Table struct {
	Name       string
	Columns    []Column
	PrimaryKey string // empty when no key column was declared
	Rows       []Row

	index map[string]int
}

func (table *Table) Column(name string) (Column, bool) {
	for _, column := range table.Columns {
		if column.Name == name {
			return column, true
		}
	}
	return Column{}, false
}

func (table *Table) ColumnNames() []string {
	names := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		names[i] = column.Name
	}
	return names
}

// Reindex rebuilds the primary key index from the row slice. Must be called
// after rows are loaded or key values rewritten in place.
func (table *Table) Reindex() {
	if table.PrimaryKey == "" {
		table.index = nil
		return
	}
	table.index = make(map[string]int, len(table.Rows))
	for i, row := range table.Rows {
		table.index[Format(row[table.PrimaryKey])] = i
	}
}

// Find locates a row by primary key value. Returns false when the table has
// no primary key or no row carries the value.
func (table *Table) Find(key any) (int, bool) {
	if table.index == nil {
		return 0, false
	}
	i, ok := table.index[Format(key)]
	return i, ok
}

// Insert appends a row, enforcing primary key presence and uniqueness.
func (table *Table) Insert(row Row) error {
	if table.PrimaryKey != "" {
		key := row[table.PrimaryKey]
		if key == nil {
			return fmt.Errorf("%w: column %q in table %q", ErrMissingKey, table.PrimaryKey, table.Name)
		}
		if _, exists := table.Find(key); exists {
			return fmt.Errorf("%w: %s %q already exists in table %q", ErrDuplicateKey, table.PrimaryKey, Format(key), table.Name)
		}
		if table.index == nil {
			table.index = make(map[string]int)
		}
		table.index[Format(key)] = len(table.Rows)
	}
	table.Rows = append(table.Rows, row)
	return nil
}

// Remove deletes the row at position i, preserving the order of the rest.
func (table *Table) Remove(i int) {
	table.Rows = append(table.Rows[:i], table.Rows[i+1:]...)
	table.Reindex()
}

func (table *Table) Clone() *Table {
	clone := &Table{
		Name:       table.Name,
		Columns:    append([]Column(nil), table.Columns...),
		PrimaryKey: table.PrimaryKey,
		Rows:       make([]Row, len(table.Rows)),
	}
	for i, row := range table.Rows {
		clone.Rows[i] = maps.Clone(row)
	}
	clone.Reindex()
	return clone
}

// Database is the process-wide table set. Order tracks table creation order
// so that listing and persistence are deterministic.
type Database struct {
	Tables map[string]*Table
	Order  []string
}

func NewDatabase() *Database {
	return &Database{Tables: make(map[string]*Table)}
}

// CreateTable registers a new table. The primary key, when named, must be
// one of the declared columns; column names must be unique.
func (db *Database) CreateTable(name string, columns []Column, primaryKey string) (*Table, error) {
	if _, exists := db.Tables[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTable, name)
	}

	seen := make(map[string]bool, len(columns))
	for _, column := range columns {
		if seen[column.Name] {
			return nil, fmt.Errorf("%w: %q in table %q", ErrDuplicateColumn, column.Name, name)
		}
		seen[column.Name] = true
	}

	if primaryKey != "" && !seen[primaryKey] {
		return nil, fmt.Errorf("%w: %q is not a column of table %q", ErrUnknownPrimaryKey, primaryKey, name)
	}

	table := &Table{Name: name, Columns: append([]Column(nil), columns...), PrimaryKey: primaryKey}
	for i := range table.Columns {
		table.Columns[i].PrimaryKey = table.Columns[i].Name == primaryKey && primaryKey != ""
	}

	db.Tables[name] = table
	db.Order = append(db.Order, name)
	return table, nil
}

func (db *Database) Table(name string) (*Table, error) {
	table, exists := db.Tables[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return table, nil
}

// TableNames returns table names in creation order.
func (db *Database) TableNames() []string {
	return append([]string(nil), db.Order...)
}

// Clone deep-copies the whole table set. Used for transaction snapshots.
func (db *Database) Clone() *Database {
	clone := &Database{
		Tables: make(map[string]*Table, len(db.Tables)),
		Order:  append([]string(nil), db.Order...),
	}
	for name, table := range db.Tables {
		clone.Tables[name] = table.Clone()
	}
	return clone
}
