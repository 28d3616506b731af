package core

type ColumnType int

const (
	IntType ColumnType = iota
	FloatType
	BooleanType
	DateType
	CharType
	TextType
	StringType
)

type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
}

// Identity names the author of a persisted commit, recorded in the
// snapshot history.
type Identity struct {
	Name  string
	Email string
}
