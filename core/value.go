package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted textual form for DATE values.
const DateLayout = "2006-01-02"

// ParseType resolves a declared type name against the closed type enum.
// Type names are matched case-insensitively.
func ParseType(name string) (ColumnType, error) {
	switch strings.ToLower(name) {
	case "int":
		return IntType, nil
	case "float":
		return FloatType, nil
	case "boolean":
		return BooleanType, nil
	case "date":
		return DateType, nil
	case "char":
		return CharType, nil
	case "text":
		return TextType, nil
	case "string":
		return StringType, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidType, name)
	}
}

func TypeName(columnType ColumnType) string {
	switch columnType {
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case BooleanType:
		return "boolean"
	case DateType:
		return "date"
	case CharType:
		return "char"
	case TextType:
		return "text"
	case StringType:
		return "string"
	default:
		return "unknown"
	}
}

// Convert turns a raw command token into the typed value for the declared
// column type. INT converts to int64, FLOAT to float64, BOOLEAN to bool,
// DATE to a UTC time.Time at midnight. CHAR, TEXT and STRING accept
// arbitrary text; CHAR length is conventionally one character but is not
// enforced.
func Convert(raw string, columnType ColumnType) (any, error) {
	switch columnType {
	case IntType:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an int", ErrTypeConversion, raw)
		}
		return n, nil
	case FloatType:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a float", ErrTypeConversion, raw)
		}
		return f, nil
	case BooleanType:
		switch strings.ToLower(raw) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrTypeConversion, raw)
		}
	case DateType:
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a date (want %s)", ErrTypeConversion, raw, DateLayout)
		}
		return t.UTC(), nil
	case CharType, TextType, StringType:
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidType, columnType)
	}
}

// Equal compares two typed values. Null equals only null; dates compare by
// instant.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return a == b
}

// Format renders a typed value as text, both for display and for primary
// key indexing. Null renders as NULL.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(DateLayout)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
