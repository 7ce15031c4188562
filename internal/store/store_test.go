package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleWorker(first string) *Worker {
	return &Worker{FirstName: first, LastName: "Larsen", Email: "even@even.no"}
}

func TestWorkersListInserted(t *testing.T) {
	workers := NewMemory().Workers()

	w1, w2 := exampleWorker("even"), exampleWorker("matre")
	require.NoError(t, workers.Insert(w1))
	require.NoError(t, workers.Insert(w2))
	assert.NotEqual(t, w1.ID, w2.ID)

	list, err := workers.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "even", list[0].FirstName)
	assert.Equal(t, "matre", list[1].FirstName)
}

func TestWorkersRetrieveAllProperties(t *testing.T) {
	workers := NewMemory().Workers()
	require.NoError(t, workers.Insert(exampleWorker("even")))
	w := exampleWorker("matre")
	require.NoError(t, workers.Insert(w))

	got, err := workers.Retrieve(w.ID)
	require.NoError(t, err)
	assert.Equal(t, *w, got)
	assert.Nil(t, got.TaskID)

	_, err = workers.Retrieve(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkersUpdateAssignsTask(t *testing.T) {
	db := NewMemory()
	workers, tasks := db.Workers(), db.Tasks()

	w := exampleWorker("even")
	require.NoError(t, workers.Insert(w))
	task := &Task{Name: "urgent"}
	require.NoError(t, tasks.Insert(task))

	w.TaskID = &task.ID
	require.NoError(t, workers.Update(w))

	got, err := workers.Retrieve(w.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TaskID)
	assert.Equal(t, task.ID, *got.TaskID)

	err = workers.Update(&Worker{ID: 42})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTasks(t *testing.T) {
	tasks := NewMemory().Tasks()
	for _, name := range []string{"urgent", "started", "finished"} {
		require.NoError(t, tasks.Insert(&Task{Name: name}))
	}

	list, err := tasks.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].ID, list[1].ID, list[2].ID})

	got, err := tasks.Retrieve(2)
	require.NoError(t, err)
	assert.Equal(t, "started", got.Name)

	got.Name = "paused"
	require.NoError(t, tasks.Update(&got))
	got, err = tasks.Retrieve(2)
	require.NoError(t, err)
	assert.Equal(t, "paused", got.Name)

	_, err = tasks.Retrieve(7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReturnsCopy(t *testing.T) {
	tasks := NewMemory().Tasks()
	require.NoError(t, tasks.Insert(&Task{Name: "urgent"}))

	list, err := tasks.List()
	require.NoError(t, err)
	list[0].Name = "changed"

	got, err := tasks.Retrieve(1)
	require.NoError(t, err)
	assert.Equal(t, "urgent", got.Name)
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workerboard.json")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Workers().Insert(exampleWorker("even")))
	require.NoError(t, db.Tasks().Insert(&Task{Name: "urgent"}))

	reopened, err := Open(path)
	require.NoError(t, err)

	workers, err := reopened.Workers().List()
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, "even", workers[0].FirstName)

	task := &Task{Name: "started"}
	require.NoError(t, reopened.Tasks().Insert(task))
	assert.Equal(t, 2, task.ID)
}

func TestOpenRejectsCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workerboard.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestFailedSnapshotLeavesStateUntouched(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "missing-dir", "workerboard.json"))
	require.NoError(t, err)

	task := &Task{Name: "urgent"}
	assert.Error(t, db.Tasks().Insert(task))
	assert.Zero(t, task.ID)

	list, err := db.Tasks().List()
	require.NoError(t, err)
	assert.Empty(t, list)
}
