package lang

type StatementType int

const (
	BuildStatementType StatementType = iota
	AddStatementType
	ChangeStatementType
	KickStatementType
	ShowStatementType
	MixStatementType
	BeginStatementType
	CommitStatementType
	RollbackStatementType
)

// Statement is a parsed command. Values are raw tokens; type conversion
// happens in the engine, which knows the target column types.
type Statement interface {
	Type() StatementType
}

type ColumnDef struct {
	Name     string
	TypeName string
}

type Assignment struct {
	Column string
	Value  string
}

// BuildStatement creates a table:
// build <table> <column> <type> ... [primarykey <column>]
type BuildStatement struct {
	Table      string
	Columns    []ColumnDef
	PrimaryKey string
}

// AddStatement inserts a row:
// add in <table> <column> <value> ...
type AddStatement struct {
	Table string
	Sets  []Assignment
}

// ChangeStatement updates a row by key:
// change <table> <key> <column> <value> ...
type ChangeStatement struct {
	Table string
	Key   string
	Sets  []Assignment
}

// KickStatement deletes a row by key:
// kick out <table> <key>
type KickStatement struct {
	Table string
	Key   string
}

// ShowStatement reads a full table:
// show <table>
type ShowStatement struct {
	Table string
}

// MixStatement joins two tables on a shared column:
// mix it up <table1> <table2> <column>
type MixStatement struct {
	Left   string
	Right  string
	Column string
}

type BeginStatement struct{}
type CommitStatement struct{}
type RollbackStatement struct{}

func (statement BuildStatement) Type() StatementType    { return BuildStatementType }
func (statement AddStatement) Type() StatementType      { return AddStatementType }
func (statement ChangeStatement) Type() StatementType   { return ChangeStatementType }
func (statement KickStatement) Type() StatementType     { return KickStatementType }
func (statement ShowStatement) Type() StatementType     { return ShowStatementType }
func (statement MixStatement) Type() StatementType      { return MixStatementType }
func (statement BeginStatement) Type() StatementType    { return BeginStatementType }
func (statement CommitStatement) Type() StatementType   { return CommitStatementType }
func (statement RollbackStatement) Type() StatementType { return RollbackStatementType }
