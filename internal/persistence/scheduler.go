package persistence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/atomic"

	"fittrack/internal/models"
	"fittrack/internal/persistence/interfaces"
	"fittrack/internal/providers"
	"fittrack/internal/services"
	"fittrack/internal/structures"
)

const reminderKeyLayout = "2006-01-02 15:04"

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.TrackerServiceInterface
	manager *SnapshotManager
	metrics providers.MetricsProviderInterface
	cron    *cron.Cron
	opsMu   sync.Mutex

	// retry is set when a periodic save failed so the next tick writes even
	// without new changes.
	retry        atomic.Bool
	lastReminder atomic.String
}

func (s *Scheduler) Init() error {
	s.cron = cron.New(cron.WithLocation(s.service.Now().Location()))

	interval := s.config.Persistence.SaveInterval
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.persistChanges); err != nil {
		return fmt.Errorf("schedule persistence: %w", err)
	}

	if s.config.Reminders.Enabled {
		if _, err := s.cron.AddFunc(s.config.Reminders.Spec, func() { s.FireReminder() }); err != nil {
			return fmt.Errorf("schedule reminders %q: %w", s.config.Reminders.Spec, err)
		}
		s.logger.Infof(providers.TypeApp, "Reminders scheduled with %q", s.config.Reminders.Spec)
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) persistChanges() {
	if !s.service.TakeDirty() && !s.retry.Load() {
		return
	}
	if err := s.Persist(); err != nil {
		s.retry.Store(true)
		return
	}
	s.retry.Store(false)
	s.logger.Infof(providers.TypeApp, "Persisted progress to %s", s.manager.Name())
}

// FireReminder delivers the notification due this minute. A minute fires at
// most once, however often the job runs.
func (s *Scheduler) FireReminder() bool {
	n, now, ok := s.service.DueReminder()
	if !ok {
		return false
	}
	key := now.Format(reminderKeyLayout)
	if s.lastReminder.Swap(key) == key {
		return false
	}
	s.logger.Infof(providers.TypeReminder, "%s %s", n.Time, n.Message)
	s.metrics.IncRemindersFired()
	return true
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) Restore() error {
	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()

	snap, err := s.manager.Load(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		s.logger.Infof(providers.TypeApp, "No stored progress in %s, starting fresh", s.manager.Name())
		return nil
	}
	if start := models.DateKey(s.service.Goal().StartDate); snap.StartDate != "" && snap.StartDate != start {
		s.logger.Warnf(providers.TypeApp, "Stored start date %s differs from configured %s", snap.StartDate, start)
	}
	if err := s.service.PutSnapshot(snap); err != nil {
		return err
	}
	s.logger.Infof(providers.TypeApp, "Restored %d weight entries, %d workouts from %s",
		len(snap.Weights), len(snap.Workouts), s.manager.Name())
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()

	start := time.Now()
	err := s.manager.Save(ctx, s.service.GetSnapshot())
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func (s *Scheduler) Close() error {
	return s.manager.Close()
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.TrackerServiceInterface, manager *SnapshotManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		manager: manager,
		metrics: metrics,
	}
}
