package persistence

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"fittrack/internal/models"
	"fittrack/internal/providers"
	"fittrack/internal/structures"
	"fittrack/internal/testutil"
)

func testConfig(saveInterval time.Duration) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			Driver:       "file",
			SaveInterval: saveInterval,
		},
		Reminders: structures.RemindersConfig{
			Enabled: true,
			Spec:    "* * * * *",
		},
	}
}

type schedulerFixture struct {
	scheduler *Scheduler
	backend   *testutil.MockBackend
	logger    *testutil.MockLogger
	metrics   *testutil.MockMetrics
}

func newSchedulerFixture(t *testing.T, now time.Time) (*schedulerFixture, func(time.Time)) {
	t.Helper()
	service, clock := testutil.NewTrackerService(t, now)
	f := &schedulerFixture{
		backend: &testutil.MockBackend{},
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
	}
	manager := NewSnapshotManager(f.backend, &testutil.MockCompressor{}, f.logger)
	f.scheduler = NewScheduler(testConfig(time.Minute), f.logger, service, manager, f.metrics).(*Scheduler)
	return f, func(at time.Time) { clock.At = at }
}

func TestScheduler_PersistThenRestore(t *testing.T) {
	f, _ := newSchedulerFixture(t, testutil.ProgramStart.AddDate(0, 0, 2))
	_, err := f.scheduler.service.RecordWeight("", 74.0)
	require.NoError(t, err)
	_, err = f.scheduler.service.MarkWorkoutComplete("", "")
	require.NoError(t, err)

	require.NoError(t, f.scheduler.Persist())
	assert.Equal(t, 1, f.backend.WriteCount())
	assert.Equal(t, 1, f.metrics.PersistenceObserved)

	other, _ := testutil.NewTrackerService(t, testutil.ProgramStart.AddDate(0, 0, 2))
	restorer := NewScheduler(testConfig(time.Minute), f.logger, other,
		NewSnapshotManager(f.backend, &testutil.MockCompressor{}, f.logger), f.metrics)
	require.NoError(t, restorer.Restore())

	assert.Equal(t, 74.0, other.CurrentWeight())
	assert.Equal(t, 1, other.WorkoutCompletionCount())
}

func TestScheduler_RestoreNothingStored(t *testing.T) {
	f, _ := newSchedulerFixture(t, testutil.ProgramStart)
	assert.NoError(t, f.scheduler.Restore())
	assert.Equal(t, 74.5, f.scheduler.service.CurrentWeight())
}

func TestScheduler_RestoreCorruptData(t *testing.T) {
	f, _ := newSchedulerFixture(t, testutil.ProgramStart)
	f.backend.Data = []byte(`{"version":1,"weights":{"not-a-date":70}}`)

	err := f.scheduler.Restore()
	assert.ErrorIs(t, err, models.ErrCorruptSnapshot)
	assert.Equal(t, 74.5, f.scheduler.service.CurrentWeight())
}

func TestScheduler_RestoreWarnsOnStartDateMismatch(t *testing.T) {
	f, _ := newSchedulerFixture(t, testutil.ProgramStart)
	f.backend.Data = []byte(`{"version":1,"start_date":"2024-12-01","weights":{"2025-01-08":74.1}}`)

	require.NoError(t, f.scheduler.Restore())
	assert.Equal(t, 1, f.logger.Count("warn", providers.TypeApp))
	assert.Equal(t, 74.1, f.scheduler.service.CurrentWeight())
}

func TestScheduler_PersistError(t *testing.T) {
	f, _ := newSchedulerFixture(t, testutil.ProgramStart)
	f.backend.WriteErr = errors.New("disk full")

	assert.Error(t, f.scheduler.Persist())
	assert.Equal(t, 1, f.logger.Count("error", providers.TypeApp))
	assert.Equal(t, 1, f.metrics.PersistenceObserved)
}

func TestScheduler_PersistChangesOnlyWhenDirty(t *testing.T) {
	f, _ := newSchedulerFixture(t, testutil.ProgramStart)

	f.scheduler.persistChanges()
	assert.Equal(t, 0, f.backend.WriteCount())

	require.NoError(t, f.scheduler.service.MarkMealComplete("", "Dinner (8:00 PM)"))
	f.scheduler.persistChanges()
	assert.Equal(t, 1, f.backend.WriteCount())

	f.scheduler.persistChanges()
	assert.Equal(t, 1, f.backend.WriteCount())
}

func TestScheduler_PersistChangesRetriesAfterFailure(t *testing.T) {
	f, _ := newSchedulerFixture(t, testutil.ProgramStart)
	_, err := f.scheduler.service.RecordWeight("", 74.2)
	require.NoError(t, err)

	f.backend.WriteErr = errors.New("timeout")
	f.scheduler.persistChanges()
	assert.Equal(t, 0, f.backend.WriteCount())

	f.backend.WriteErr = nil
	f.scheduler.persistChanges()
	assert.Equal(t, 1, f.backend.WriteCount())

	f.scheduler.persistChanges()
	assert.Equal(t, 1, f.backend.WriteCount())
}

func TestScheduler_FireReminderOncePerMinute(t *testing.T) {
	f, setNow := newSchedulerFixture(t, testutil.ProgramStart.Add(7*time.Hour))

	assert.True(t, f.scheduler.FireReminder())
	assert.False(t, f.scheduler.FireReminder(), "same minute must not fire twice")

	setNow(testutil.ProgramStart.Add(7*time.Hour + 30*time.Second))
	assert.False(t, f.scheduler.FireReminder())

	setNow(testutil.ProgramStart.Add(7*time.Hour + 1*time.Minute))
	assert.False(t, f.scheduler.FireReminder(), "no entry at 07:01")

	setNow(testutil.ProgramStart.Add(7*time.Hour + 30*time.Minute))
	assert.True(t, f.scheduler.FireReminder())

	setNow(testutil.ProgramStart.AddDate(0, 0, 1).Add(7 * time.Hour))
	assert.True(t, f.scheduler.FireReminder(), "next day fires again")

	assert.Equal(t, 3, f.metrics.RemindersFired)
	assert.Equal(t, 3, f.logger.Count("info", providers.TypeReminder))
}

func TestScheduler_InitAndStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	service, _ := testutil.NewTrackerService(t, testutil.ProgramStart)
	backend := &testutil.MockBackend{}
	logger := &testutil.MockLogger{}
	conf := testConfig(100 * time.Millisecond)
	s := NewScheduler(conf, logger, service, NewSnapshotManager(backend, &testutil.MockCompressor{}, logger), &testutil.MockMetrics{})

	require.NoError(t, s.Init())
	_, err := service.RecordWeight("", 74.3)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return backend.WriteCount() == 1 }, 3*time.Second, 20*time.Millisecond)
	s.Stop()

	require.NoError(t, s.Close())
	assert.True(t, backend.Closed)
}

func TestScheduler_InitRejectsBadReminderSpec(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	service, _ := testutil.NewTrackerService(t, testutil.ProgramStart)
	conf := testConfig(time.Minute)
	conf.Reminders.Spec = "every morning"
	logger := &testutil.MockLogger{}
	s := NewScheduler(conf, logger, service, NewSnapshotManager(&testutil.MockBackend{}, &testutil.MockCompressor{}, logger), &testutil.MockMetrics{})

	assert.Error(t, s.Init())
	s.Stop()
}

func TestScheduler_StopBeforeInit(t *testing.T) {
	f, _ := newSchedulerFixture(t, testutil.ProgramStart)
	assert.NotPanics(t, f.scheduler.Stop)
}

