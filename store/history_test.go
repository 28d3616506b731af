package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plaindb/plaindb/core"
)

func TestHistoryRecordAndList(t *testing.T) {
	history, err := openMemoryHistory()
	require.NoError(t, err)

	identity := core.Identity{Name: "Ann", Email: "ann@example.com"}

	first, err := history.Record([]byte("state one"), identity, "first")
	require.NoError(t, err)
	require.NotEmpty(t, first.Id)

	second, err := history.Record([]byte("state two"), identity, "second")
	require.NoError(t, err)
	require.NotEqual(t, first.Id, second.Id)

	snapshots, err := history.List(0)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	require.Equal(t, second.Id, snapshots[0].Id)
	require.Equal(t, first.Id, snapshots[1].Id)
	require.Equal(t, "Ann <ann@example.com>", snapshots[0].Author)

	limited, err := history.List(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, second.Id, limited[0].Id)
}

func TestHistoryListEmpty(t *testing.T) {
	history, err := openMemoryHistory()
	require.NoError(t, err)

	snapshots, err := history.List(0)
	require.NoError(t, err)
	require.Empty(t, snapshots)

	require.Empty(t, history.Latest().Id)
}

func TestHistorySnapshotData(t *testing.T) {
	history, err := openMemoryHistory()
	require.NoError(t, err)

	identity := core.Identity{Name: "Ann", Email: "ann@example.com"}

	first, err := history.Record([]byte("state one"), identity, "first")
	require.NoError(t, err)
	_, err = history.Record([]byte("state two"), identity, "second")
	require.NoError(t, err)

	data, err := history.Snapshot(first.Id)
	require.NoError(t, err)
	require.Equal(t, []byte("state one"), data)

	_, err = history.Snapshot("0000000000000000000000000000000000000000")
	require.Error(t, err)
}

func TestHistoryLatest(t *testing.T) {
	history, err := openMemoryHistory()
	require.NoError(t, err)

	identity := core.Identity{Name: "Ann", Email: "ann@example.com"}
	recorded, err := history.Record([]byte("state"), identity, "only")
	require.NoError(t, err)

	latest := history.Latest()
	require.Equal(t, recorded.Id, latest.Id)
	require.Equal(t, "only", latest.Message)
}

func TestHistoryRecordIdenticalData(t *testing.T) {
	history, err := openMemoryHistory()
	require.NoError(t, err)

	identity := core.Identity{Name: "Ann", Email: "ann@example.com"}

	_, err = history.Record([]byte("same"), identity, "first")
	require.NoError(t, err)
	_, err = history.Record([]byte("same"), identity, "second")
	require.NoError(t, err)

	snapshots, err := history.List(0)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
}
