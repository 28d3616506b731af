package db

import (
	"fmt"
	"strconv"
	"time"

	"github.com/plaindb/plaindb/core"
	"github.com/plaindb/plaindb/lang"
)

func (engine *Engine) executeBuild(statement lang.BuildStatement) (CommitResult, error) {
	startTime := time.Now()

	columns := make([]core.Column, 0, len(statement.Columns))
	for _, def := range statement.Columns {
		columnType, err := core.ParseType(def.TypeName)
		if err != nil {
			return CommitResult{}, fmt.Errorf("column %q: %w", def.Name, err)
		}
		columns = append(columns, core.Column{Name: def.Name, Type: columnType})
	}

	if _, err := engine.db.CreateTable(statement.Table, columns, statement.PrimaryKey); err != nil {
		return CommitResult{}, err
	}

	if err := engine.autoCommit("build " + statement.Table); err != nil {
		return CommitResult{}, err
	}

	return CommitResult{
		TablesCreated:    1,
		Persisted:        !engine.InTransaction(),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

func (engine *Engine) executeAdd(statement lang.AddStatement) (CommitResult, error) {
	startTime := time.Now()

	table, err := engine.db.Table(statement.Table)
	if err != nil {
		return CommitResult{}, err
	}

	row, err := buildRow(table, statement.Sets)
	if err != nil {
		return CommitResult{}, err
	}

	if err := table.Insert(row); err != nil {
		return CommitResult{}, err
	}

	if err := engine.autoCommit("add in " + table.Name); err != nil {
		return CommitResult{}, err
	}

	return CommitResult{
		RowsWritten:      1,
		Persisted:        !engine.InTransaction(),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

func (engine *Engine) executeChange(statement lang.ChangeStatement) (CommitResult, error) {
	startTime := time.Now()

	table, err := engine.db.Table(statement.Table)
	if err != nil {
		return CommitResult{}, err
	}

	rowIndex, err := findRow(table, statement.Key)
	if err != nil {
		return CommitResult{}, err
	}

	// Convert every supplied value before touching the row, so a failure
	// halfway leaves no partial mutation behind.
	updates := make(core.Row, len(statement.Sets))
	for _, set := range statement.Sets {
		column, ok := table.Column(set.Column)
		if !ok {
			return CommitResult{}, fmt.Errorf("%w: %q in table %q", core.ErrUnknownColumn, set.Column, table.Name)
		}
		value, err := core.Convert(set.Value, column.Type)
		if err != nil {
			return CommitResult{}, fmt.Errorf("column %q: %w", column.Name, err)
		}
		updates[column.Name] = value
	}

	keyChanged := false
	if table.PrimaryKey != "" {
		if newKey, ok := updates[table.PrimaryKey]; ok {
			if existing, found := table.Find(newKey); found && existing != rowIndex {
				return CommitResult{}, fmt.Errorf("%w: %s %q already exists in table %q",
					core.ErrDuplicateKey, table.PrimaryKey, core.Format(newKey), table.Name)
			}
			keyChanged = true
		}
	}

	for name, value := range updates {
		table.Rows[rowIndex][name] = value
	}
	if keyChanged {
		table.Reindex()
	}

	if err := engine.autoCommit("change " + table.Name); err != nil {
		return CommitResult{}, err
	}

	return CommitResult{
		RowsWritten:      1,
		Persisted:        !engine.InTransaction(),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

func (engine *Engine) executeKick(statement lang.KickStatement) (CommitResult, error) {
	startTime := time.Now()

	table, err := engine.db.Table(statement.Table)
	if err != nil {
		return CommitResult{}, err
	}

	rowIndex, err := findRow(table, statement.Key)
	if err != nil {
		return CommitResult{}, err
	}

	table.Remove(rowIndex)

	if err := engine.autoCommit("kick out " + table.Name); err != nil {
		return CommitResult{}, err
	}

	return CommitResult{
		RowsDeleted:      1,
		Persisted:        !engine.InTransaction(),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

func (engine *Engine) executeShow(statement lang.ShowStatement) (QueryResult, error) {
	startTime := time.Now()

	table, err := engine.db.Table(statement.Table)
	if err != nil {
		return QueryResult{}, err
	}

	columns := table.ColumnNames()
	data := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		cells := make([]string, len(columns))
		for j, name := range columns {
			cells[j] = core.Format(row[name])
		}
		data[i] = cells
	}

	return QueryResult{
		Columns:          columns,
		Data:             data,
		RecordsRead:      len(data),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     len(data),
	}, nil
}

func (engine *Engine) executeMix(statement lang.MixStatement) (QueryResult, error) {
	startTime := time.Now()
	rowsScanned := 0

	left, err := engine.db.Table(statement.Left)
	if err != nil {
		return QueryResult{}, err
	}
	right, err := engine.db.Table(statement.Right)
	if err != nil {
		return QueryResult{}, err
	}

	leftColumn, ok := left.Column(statement.Column)
	if !ok {
		return QueryResult{}, fmt.Errorf("%w: %q in table %q", core.ErrUnknownColumn, statement.Column, left.Name)
	}
	rightColumn, ok := right.Column(statement.Column)
	if !ok {
		return QueryResult{}, fmt.Errorf("%w: %q in table %q", core.ErrUnknownColumn, statement.Column, right.Name)
	}
	if leftColumn.Type != rightColumn.Type {
		return QueryResult{}, fmt.Errorf("%w: column %q is %s in %q but %s in %q",
			core.ErrTypeMismatch, statement.Column,
			core.TypeName(leftColumn.Type), left.Name,
			core.TypeName(rightColumn.Type), right.Name)
	}

	// The join column appears once, in table1's position; the rest of
	// table2's columns follow table1's.
	columns := left.ColumnNames()
	var rightNames []string
	for _, name := range right.ColumnNames() {
		if name != statement.Column {
			rightNames = append(rightNames, name)
		}
	}
	columns = append(columns, rightNames...)

	// Nested linear scan: table1 outer, table2 inner, every matching pair
	// emitted in order with no dedup.
	var data [][]string
	for _, leftRow := range left.Rows {
		for _, rightRow := range right.Rows {
			rowsScanned++
			if !core.Equal(leftRow[statement.Column], rightRow[statement.Column]) {
				continue
			}

			cells := make([]string, 0, len(columns))
			for _, name := range left.ColumnNames() {
				cells = append(cells, core.Format(leftRow[name]))
			}
			for _, name := range rightNames {
				cells = append(cells, core.Format(rightRow[name]))
			}
			data = append(data, cells)
		}
	}

	return QueryResult{
		Columns:          columns,
		Data:             data,
		RecordsRead:      len(data),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     rowsScanned,
	}, nil
}

// findRow resolves a raw key token to a row position: by primary key value
// when the table declares one, by 1-based position otherwise.
func findRow(table *core.Table, rawKey string) (int, error) {
	if table.PrimaryKey != "" {
		keyColumn, _ := table.Column(table.PrimaryKey)
		key, err := core.Convert(rawKey, keyColumn.Type)
		if err != nil {
			return 0, fmt.Errorf("%s %q: %w", table.PrimaryKey, rawKey, err)
		}
		rowIndex, ok := table.Find(key)
		if !ok {
			return 0, fmt.Errorf("%w: %s %q in table %q", core.ErrRecordNotFound, table.PrimaryKey, rawKey, table.Name)
		}
		return rowIndex, nil
	}

	position, err := strconv.Atoi(rawKey)
	if err != nil || position < 1 || position > len(table.Rows) {
		return 0, fmt.Errorf("%w: row %q in table %q", core.ErrRecordNotFound, rawKey, table.Name)
	}
	return position - 1, nil
}

// buildRow assembles a full row from the supplied column/value pairs.
// Declared columns with no supplied value default to null.
func buildRow(table *core.Table, sets []lang.Assignment) (core.Row, error) {
	row := make(core.Row, len(table.Columns))

	for _, set := range sets {
		column, ok := table.Column(set.Column)
		if !ok {
			return nil, fmt.Errorf("%w: %q in table %q", core.ErrUnknownColumn, set.Column, table.Name)
		}
		value, err := core.Convert(set.Value, column.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", column.Name, err)
		}
		row[column.Name] = value
	}

	for _, column := range table.Columns {
		if _, ok := row[column.Name]; !ok {
			row[column.Name] = nil
		}
	}

	return row, nil
}
