package persistence

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"fittrack/internal/models"
	"fittrack/internal/persistence/interfaces"
	"fittrack/internal/providers"
)

const ioTimeout = 10 * time.Second

// SnapshotManager encodes progress snapshots as compressed JSON and moves them
// to and from the configured backend.
type SnapshotManager struct {
	backend    interfaces.BackendInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewSnapshotManager(backend interfaces.BackendInterface, compressor interfaces.CompressorInterface, logger providers.Logger) *SnapshotManager {
	return &SnapshotManager{
		backend:    backend,
		compressor: compressor,
		logger:     logger,
	}
}

func (m *SnapshotManager) Save(ctx context.Context, snap *models.ProgressSnapshot) error {
	jsonData, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	data, err := m.compressor.Compress(jsonData)
	if err != nil {
		return err
	}
	return m.backend.Write(ctx, data)
}

// Load returns nil, nil when the backend holds no snapshot.
func (m *SnapshotManager) Load(ctx context.Context) (*models.ProgressSnapshot, error) {
	data, err := m.backend.Read(ctx)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	decompressedData, err := m.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrCorruptSnapshot, err)
	}

	var snap models.ProgressSnapshot
	if err := json.Unmarshal(decompressedData, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrCorruptSnapshot, err)
	}
	switch {
	case snap.Version == 0:
		m.logger.Warnf(providers.TypeApp, "Snapshot without version found in %s, reading it as version %d", m.backend.Name(), models.SnapshotVersion)
		snap.Version = models.SnapshotVersion
	case snap.Version > models.SnapshotVersion:
		return nil, fmt.Errorf("%w: version %d is newer than supported %d", models.ErrCorruptSnapshot, snap.Version, models.SnapshotVersion)
	}
	return &snap, nil
}

// StoredStartDate reads the program start date of the stored snapshot.
func (m *SnapshotManager) StoredStartDate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()

	snap, err := m.Load(ctx)
	if err != nil || snap == nil {
		return "", err
	}
	return snap.StartDate, nil
}

func (m *SnapshotManager) Name() string {
	return m.backend.Name()
}

func (m *SnapshotManager) Close() error {
	return m.backend.Close()
}
