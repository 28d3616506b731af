package plaindb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plaindb/plaindb/core"
	"github.com/plaindb/plaindb/db"
	"github.com/plaindb/plaindb/store"
)

func TestOpenAndExecute(t *testing.T) {
	st, err := store.NewMemoryStore(store.Options{})
	require.NoError(t, err)

	instance := Open(st)
	engine, err := instance.Engine(core.Identity{Name: "App", Email: "app@example.com"})
	require.NoError(t, err)

	for _, line := range []string{
		"build users id int name text primarykey id",
		`add in users id 1 name "Ann"`,
		`add in users id 2 name "Bob"`,
		"change users 2 name Bobby",
		"kick out users 1",
	} {
		_, err := engine.Execute(line)
		require.NoError(t, err, line)
	}

	result, err := engine.Execute("show users")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"2", "Bobby"}}, result.(db.QueryResult).Data)

	// a second engine on the same store picks up the persisted state
	engine2, err := instance.Engine(core.Identity{Name: "Other", Email: "other@example.com"})
	require.NoError(t, err)

	result, err = engine2.Execute("show users")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"2", "Bobby"}}, result.(db.QueryResult).Data)
}
