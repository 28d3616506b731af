package lang

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMalformedCommand = errors.New("malformed command")
)

// Parse tokenizes one command line and parses it against the fixed grammar
// for its leading verb. Verbs are case-sensitive.
func Parse(line string) (Statement, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrMalformedCommand)
	}

	switch {
	case tokens[0].is("build"):
		return parseBuild(tokens[1:])
	case tokens[0].is("add"):
		if len(tokens) < 2 || !tokens[1].is("in") {
			return nil, fmt.Errorf("%w: use 'add in <table> <column> <value> ...'", ErrMalformedCommand)
		}
		return parseAdd(tokens[2:])
	case tokens[0].is("change"):
		return parseChange(tokens[1:])
	case tokens[0].is("kick"):
		if len(tokens) < 2 || !tokens[1].is("out") {
			return nil, fmt.Errorf("%w: use 'kick out <table> <key>'", ErrMalformedCommand)
		}
		return parseKick(tokens[2:])
	case tokens[0].is("mix"):
		if len(tokens) < 3 || !tokens[1].is("it") || !tokens[2].is("up") {
			return nil, fmt.Errorf("%w: use 'mix it up <table1> <table2> <column>'", ErrMalformedCommand)
		}
		return parseMix(tokens[3:])
	case tokens[0].is("show"):
		return parseShow(tokens[1:])
	case tokens[0].is("begin"):
		return parseBare(tokens, BeginStatement{}, "begin")
	case tokens[0].is("commit"):
		return parseBare(tokens, CommitStatement{}, "commit")
	case tokens[0].is("rollback"):
		return parseBare(tokens, RollbackStatement{}, "rollback")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[0].Value)
	}
}

func parseBuild(args []Token) (Statement, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: use 'build <table> <column> <type> ... [primarykey <column>]'", ErrMalformedCommand)
	}

	statement := BuildStatement{Table: args[0].Value}

	i := 1
	for i < len(args) {
		if args[i].is("primarykey") {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%w: missing primary key column name", ErrMalformedCommand)
			}
			if i+2 < len(args) {
				return nil, fmt.Errorf("%w: 'primarykey <column>' must end the build command", ErrMalformedCommand)
			}
			statement.PrimaryKey = args[i+1].Value
			break
		}

		if i+1 >= len(args) {
			return nil, fmt.Errorf("%w: missing type for column %q", ErrMalformedCommand, args[i].Value)
		}
		statement.Columns = append(statement.Columns, ColumnDef{Name: args[i].Value, TypeName: args[i+1].Value})
		i += 2
	}

	return statement, nil
}

func parseAdd(args []Token) (Statement, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: use 'add in <table> <column> <value> ...'", ErrMalformedCommand)
	}

	sets, err := parseAssignments(args[1:])
	if err != nil {
		return nil, err
	}

	return AddStatement{Table: args[0].Value, Sets: sets}, nil
}

func parseChange(args []Token) (Statement, error) {
	if len(args) < 4 {
		return nil, fmt.Errorf("%w: use 'change <table> <key> <column> <value> ...'", ErrMalformedCommand)
	}

	sets, err := parseAssignments(args[2:])
	if err != nil {
		return nil, err
	}

	return ChangeStatement{Table: args[0].Value, Key: args[1].Value, Sets: sets}, nil
}

func parseKick(args []Token) (Statement, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: use 'kick out <table> <key>'", ErrMalformedCommand)
	}
	return KickStatement{Table: args[0].Value, Key: args[1].Value}, nil
}

func parseShow(args []Token) (Statement, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: use 'show <table>'", ErrMalformedCommand)
	}
	return ShowStatement{Table: args[0].Value}, nil
}

func parseMix(args []Token) (Statement, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("%w: use 'mix it up <table1> <table2> <column>'", ErrMalformedCommand)
	}
	return MixStatement{Left: args[0].Value, Right: args[1].Value, Column: args[2].Value}, nil
}

func parseBare(tokens []Token, statement Statement, verb string) (Statement, error) {
	if len(tokens) != 1 {
		return nil, fmt.Errorf("%w: %q takes no arguments", ErrMalformedCommand, verb)
	}
	return statement, nil
}

// parseAssignments reads repeating <column> <value> pairs.
func parseAssignments(args []Token) ([]Assignment, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("%w: missing value for column %q", ErrMalformedCommand, args[len(args)-1].Value)
	}

	sets := make([]Assignment, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		sets = append(sets, Assignment{Column: args[i].Value, Value: args[i+1].Value})
	}
	return sets, nil
}
