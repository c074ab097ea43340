package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"DormPower/internal/clock"
	"DormPower/internal/collector"
	"DormPower/internal/config"
	"DormPower/internal/metrics"
	"DormPower/internal/model"
	"DormPower/internal/notifier"
	"DormPower/internal/recorder"
	"DormPower/internal/store"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ErrRunInProgress is returned by RunOnce while another check is running.
var ErrRunInProgress = errors.New("balance check already running")

// Scheduler runs balance checks, once or on a cron schedule. At most one
// check runs at a time.
type Scheduler struct {
	Cron         *cron.Cron
	Collector    *collector.Collector
	Dispatcher   *notifier.Dispatcher
	Store        *store.Store
	Recorder     recorder.Recorder
	Metrics      *metrics.Metrics
	Clock        clock.Clock
	Log          logrus.FieldLogger
	TextfilePath string
	Ctx          context.Context

	running sync.Mutex
}

// NewScheduler creates a new Scheduler using the UTC+8 clock.
func NewScheduler(ctx context.Context, col *collector.Collector, d *notifier.Dispatcher, st *store.Store, rec recorder.Recorder, m *metrics.Metrics, log logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithParser(config.CronParser),
			cron.WithLocation(clock.Location),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log))),
		),
		Collector:  col,
		Dispatcher: d,
		Store:      st,
		Recorder:   rec,
		Metrics:    m,
		Clock:      clock.Shanghai{},
		Log:        log,
		Ctx:        ctx,
	}
}

// Register schedules RunOnce. Overlapping runs are skipped.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.scheduledRun); err != nil {
		return fmt.Errorf("register balance check: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running check to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	// Wait for a triggered check too.
	s.running.Lock()
	s.running.Unlock()
	s.Log.Info("scheduler stopped")
}

// Trigger runs a check now, outside the cron schedule. It is skipped when a
// scheduled check is still running.
func (s *Scheduler) Trigger() {
	s.scheduledRun()
}

func (s *Scheduler) scheduledRun() {
	err := s.RunOnce(s.Ctx)
	switch {
	case errors.Is(err, ErrRunInProgress):
		s.Log.Warn("previous balance check still running, skipped")
	case err != nil:
		s.Log.WithError(err).Error("balance check failed")
	}
}

// RunOnce fetches balances, notifies, and records the reading. Only a fetch
// failure is returned; everything after it is best effort and logged.
// It returns ErrRunInProgress without doing anything if a check is running.
func (s *Scheduler) RunOnce(ctx context.Context) (err error) {
	if !s.running.TryLock() {
		return ErrRunInProgress
	}
	defer s.running.Unlock()

	start := time.Now()
	log := s.Log.WithField("run_id", uuid.NewString())
	defer func() { s.finish(log, start, err) }()

	log.Info("running balance check")
	b, err := s.Collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect balances: %w", err)
	}
	s.Metrics.ObserveBalances(b.Lighting, b.AirConditioning)

	title, content := notifier.BuildNotification(b)
	res := s.Dispatcher.Dispatch(ctx, title, content)
	log.WithFields(logrus.Fields{"sent": res.Sent, "failed": res.Failed}).Info("notifications done")

	now := s.Clock.Now()
	period := store.PeriodOf(now)
	stored := s.persist(log.WithField("period", period), period, model.NewReading(now, b))

	if err := s.Recorder.RecordSample(&recorder.Sample{
		FetchedAt:       now,
		Period:          period,
		Lighting:        b.Lighting,
		AirConditioning: b.AirConditioning,
		Stored:          stored,
		Warning:         b.Low(),
	}); err != nil {
		log.WithError(err).Error("record sample")
	}
	return nil
}

// persist appends r and rebuilds the derived files. It reports whether r was written.
func (s *Scheduler) persist(log logrus.FieldLogger, period string, r model.Reading) bool {
	data, appended, saveErr := s.Store.Append(period, r)
	if saveErr != nil {
		log.WithError(saveErr).Error("save reading")
	} else if appended {
		s.Metrics.RecordsStored.Inc()
	}

	index, err := s.Store.RebuildPeriodIndex()
	if err != nil {
		log.WithError(err).Error("update period index")
	}

	window, err := s.Store.RebuildRollingWindow(period, data, index)
	if err != nil {
		log.WithError(err).Error("update rolling window")
	}
	s.Metrics.WindowSize.Set(float64(len(window)))
	return appended && saveErr == nil
}

func (s *Scheduler) finish(log logrus.FieldLogger, start time.Time, err error) {
	s.Metrics.ObserveRun(start, err)
	if s.TextfilePath != "" {
		if werr := s.Metrics.WriteTextfile(s.TextfilePath); werr != nil {
			log.WithError(werr).Error("write metrics textfile")
		}
	}
	if err == nil {
		log.WithField("duration", time.Since(start).Round(time.Millisecond)).Info("balance check finished")
	}
}
