package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plaindb/plaindb/core"
)

func sampleDatabase(t *testing.T) *core.Database {
	t.Helper()

	db := core.NewDatabase()
	users, err := db.CreateTable("users", []core.Column{
		{Name: "id", Type: core.IntType},
		{Name: "name", Type: core.TextType},
		{Name: "score", Type: core.FloatType},
		{Name: "active", Type: core.BooleanType},
		{Name: "joined", Type: core.DateType},
		{Name: "grade", Type: core.CharType},
	}, "id")
	require.NoError(t, err)

	require.NoError(t, users.Insert(core.Row{
		"id":     int64(1),
		"name":   "Ann",
		"score":  99.5,
		"active": true,
		"joined": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		"grade":  "A",
	}))
	require.NoError(t, users.Insert(core.Row{
		"id":     int64(-2),
		"name":   "",
		"score":  -0.25,
		"active": false,
		"joined": time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC),
		"grade":  nil,
	}))

	logs, err := db.CreateTable("logs", []core.Column{{Name: "message", Type: core.StringType}}, "")
	require.NoError(t, err)
	require.NoError(t, logs.Insert(core.Row{"message": "hello world"}))

	return db
}

func requireDatabaseEqual(t *testing.T, expected, actual *core.Database) {
	t.Helper()

	require.Equal(t, expected.Order, actual.Order)
	for _, name := range expected.Order {
		want := expected.Tables[name]
		got, err := actual.Table(name)
		require.NoError(t, err)

		require.Equal(t, want.Columns, got.Columns, name)
		require.Equal(t, want.PrimaryKey, got.PrimaryKey, name)
		require.Len(t, got.Rows, len(want.Rows), name)

		for i, wantRow := range want.Rows {
			for _, column := range want.Columns {
				if !core.Equal(wantRow[column.Name], got.Rows[i][column.Name]) {
					t.Fatalf("table %q row %d column %q: want %v, got %v",
						name, i, column.Name, wantRow[column.Name], got.Rows[i][column.Name])
				}
			}
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	db := sampleDatabase(t)

	data, err := Encode(db)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	requireDatabaseEqual(t, db, decoded)

	// decoded tables are indexed and usable immediately
	users, err := decoded.Table("users")
	require.NoError(t, err)
	i, ok := users.Find(int64(-2))
	require.True(t, ok)
	require.Equal(t, 1, i)
}

func TestEncodeDecodeEmptyDatabase(t *testing.T) {
	data, err := Encode(core.NewDatabase())
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Empty(t, decoded.TableNames())
}

func TestDecodeCorrupt(t *testing.T) {
	valid, err := Encode(sampleDatabase(t))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not a snapshot at all")},
		{"bad magic", append([]byte("XXXX"), valid[4:]...)},
		{"bad version", append(append([]byte{}, valid[:4]...), append([]byte{99}, valid[5:]...)...)},
		{"truncated", valid[:len(valid)/2]},
		{"trailing bytes", append(append([]byte{}, valid...), 0)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.data)
			require.ErrorIs(t, err, ErrCorruptStorage)
		})
	}
}
