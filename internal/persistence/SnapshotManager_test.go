package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/models"
	"fittrack/internal/providers"
	"fittrack/internal/testutil"
)

func sampleSnapshot() *models.ProgressSnapshot {
	return &models.ProgressSnapshot{
		Version:   models.SnapshotVersion,
		StartDate: "2025-01-06",
		Weights:   map[string]float64{"2025-01-06": 74.5, "2025-01-13": 73.9},
		Workouts:  map[string]string{"2025-01-06": "Monday"},
		Meals:     map[string][]string{"2025-01-06": {"Breakfast (9:00 AM)", "Lunch (1:30 PM)"}},
	}
}

func TestSnapshotManager_RoundtripZstdFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.dat")
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	m := NewSnapshotManager(NewFileBackend(path), comp, &testutil.MockLogger{})

	require.NoError(t, m.Save(context.Background(), sampleSnapshot()))

	loaded, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), loaded)

	start, err := m.StoredStartDate()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", start)
}

func TestSnapshotManager_LoadEmpty(t *testing.T) {
	m := NewSnapshotManager(&testutil.MockBackend{}, &testutil.MockCompressor{}, &testutil.MockLogger{})

	snap, err := m.Load(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, snap)

	start, err := m.StoredStartDate()
	assert.NoError(t, err)
	assert.Empty(t, start)
}

func TestSnapshotManager_LoadInvalidJSON(t *testing.T) {
	backend := &testutil.MockBackend{Data: []byte("not json")}
	m := NewSnapshotManager(backend, &testutil.MockCompressor{}, &testutil.MockLogger{})

	_, err := m.Load(context.Background())
	assert.ErrorIs(t, err, models.ErrCorruptSnapshot)
}

func TestSnapshotManager_DecompressError(t *testing.T) {
	backend := &testutil.MockBackend{Data: []byte("x")}
	comp := &testutil.MockCompressor{
		DecompressFn: func([]byte) ([]byte, error) { return nil, errors.New("bad frame") },
	}
	m := NewSnapshotManager(backend, comp, &testutil.MockLogger{})

	_, err := m.Load(context.Background())
	assert.ErrorIs(t, err, models.ErrCorruptSnapshot)
}

func TestSnapshotManager_CompressError(t *testing.T) {
	backend := &testutil.MockBackend{}
	comp := &testutil.MockCompressor{
		CompressFn: func([]byte) ([]byte, error) { return nil, errors.New("compress failed") },
	}
	m := NewSnapshotManager(backend, comp, &testutil.MockLogger{})

	assert.Error(t, m.Save(context.Background(), sampleSnapshot()))
	assert.Equal(t, 0, backend.WriteCount())
}

func TestSnapshotManager_BackendErrors(t *testing.T) {
	backend := &testutil.MockBackend{ReadErr: errors.New("read failed"), WriteErr: errors.New("write failed")}
	m := NewSnapshotManager(backend, &testutil.MockCompressor{}, &testutil.MockLogger{})

	_, err := m.Load(context.Background())
	assert.EqualError(t, err, "read failed")
	assert.EqualError(t, m.Save(context.Background(), sampleSnapshot()), "write failed")

	_, err = m.StoredStartDate()
	assert.Error(t, err)
}

func TestSnapshotManager_UnversionedSnapshot(t *testing.T) {
	backend := &testutil.MockBackend{Data: []byte(`{"start_date":"2025-01-06","weights":{"2025-01-07":74.2}}`)}
	logger := &testutil.MockLogger{}
	m := NewSnapshotManager(backend, &testutil.MockCompressor{}, logger)

	snap, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SnapshotVersion, snap.Version)
	assert.Equal(t, 1, logger.Count("warn", providers.TypeApp))
}

func TestSnapshotManager_NewerVersionRejected(t *testing.T) {
	backend := &testutil.MockBackend{Data: []byte(`{"version":99,"start_date":"2025-01-06"}`)}
	m := NewSnapshotManager(backend, &testutil.MockCompressor{}, &testutil.MockLogger{})

	snap, err := m.Load(context.Background())
	assert.ErrorIs(t, err, models.ErrCorruptSnapshot)
	assert.Nil(t, snap)
}

func TestSnapshotManager_Close(t *testing.T) {
	backend := &testutil.MockBackend{}
	m := NewSnapshotManager(backend, &testutil.MockCompressor{}, &testutil.MockLogger{})
	require.NoError(t, m.Close())
	assert.True(t, backend.Closed)
}
