package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for name, expected := range map[string]ColumnType{
		"int":     IntType,
		"float":   FloatType,
		"boolean": BooleanType,
		"date":    DateType,
		"char":    CharType,
		"text":    TextType,
		"string":  StringType,
		"INT":     IntType,
		"Boolean": BooleanType,
	} {
		columnType, err := ParseType(name)
		require.NoError(t, err, name)
		require.Equal(t, expected, columnType, name)
	}

	_, err := ParseType("varchar")
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		columnType ColumnType
		expected   any
	}{
		{"int", "42", IntType, int64(42)},
		{"negative int", "-7", IntType, int64(-7)},
		{"float", "3.5", FloatType, 3.5},
		{"float from integer text", "2", FloatType, 2.0},
		{"boolean true", "true", BooleanType, true},
		{"boolean false", "FALSE", BooleanType, false},
		{"date", "2024-03-01", DateType, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"char", "x", CharType, "x"},
		{"text", "hello world", TextType, "hello world"},
		{"string", "", StringType, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, err := Convert(test.raw, test.columnType)
			require.NoError(t, err)
			require.Equal(t, test.expected, v)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		columnType ColumnType
	}{
		{"int from text", "abc", IntType},
		{"int from float text", "1.5", IntType},
		{"float from text", "abc", FloatType},
		{"boolean from number", "1", BooleanType},
		{"boolean from yes", "yes", BooleanType},
		{"date wrong layout", "01-03-2024", DateType},
		{"date nonsense", "2024-13-40", DateType},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Convert(test.raw, test.columnType)
			require.ErrorIs(t, err, ErrTypeConversion)
		})
	}
}

func TestEqual(t *testing.T) {
	require.True(t, Equal(nil, nil))
	require.False(t, Equal(nil, int64(0)))
	require.False(t, Equal("", nil))
	require.True(t, Equal(int64(5), int64(5)))
	require.False(t, Equal(int64(5), int64(6)))
	require.True(t, Equal("a", "a"))

	utc := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	shifted := utc.In(time.FixedZone("plus2", 2*3600))
	require.True(t, Equal(utc, shifted))
}

func TestFormat(t *testing.T) {
	require.Equal(t, "NULL", Format(nil))
	require.Equal(t, "42", Format(int64(42)))
	require.Equal(t, "3.5", Format(3.5))
	require.Equal(t, "true", Format(true))
	require.Equal(t, "2024-03-01", Format(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "hi", Format("hi"))
}
