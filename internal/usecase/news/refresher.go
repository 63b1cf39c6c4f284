package news

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"

	"crypto-news-feed/internal/domain/entity"
	"crypto-news-feed/internal/observability/logging"
	"crypto-news-feed/internal/observability/metrics"
	"crypto-news-feed/internal/observability/tracing"
)

// ErrAlreadyStarted is returned by Start when the refresher is already running.
var ErrAlreadyStarted = errors.New("refresher already started")

// State is the refresher's current activity.
type State int32

const (
	StateIdle State = iota
	StateFetching
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	default:
		return "unknown"
	}
}

// Fetcher produces the records for one refresh cycle. An empty result means
// nothing usable was fetched.
type Fetcher interface {
	Fetch(ctx context.Context) []entity.NewsRecord
}

// Clock abstracts the time source used to stamp snapshots.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// RefresherConfig configures a Refresher. Zero values select defaults.
type RefresherConfig struct {
	// Interval between the start of consecutive cycles. Default DefaultRefreshInterval.
	Interval time.Duration

	// CycleTimeout bounds a single cycle. Zero means no bound beyond the
	// fetcher's own HTTP timeout.
	CycleTimeout time.Duration

	Clock  Clock
	Logger *slog.Logger
}

// Refresher periodically fetches news and publishes it to a Store.
// A cycle that yields no records leaves the current snapshot in place.
type Refresher struct {
	fetcher Fetcher
	store   *Store
	cfg     RefresherConfig
	logger  *slog.Logger
	state   atomic.Int32

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewRefresher creates a Refresher writing into store.
func NewRefresher(fetcher Fetcher, store *Store, cfg RefresherConfig) *Refresher {
	if cfg.Interval <= 0 {
		cfg.Interval = store.RefreshInterval()
	}
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Refresher{
		fetcher: fetcher,
		store:   store,
		cfg:     cfg,
		logger:  cfg.Logger.With(slog.String("component", "refresher")),
	}
}

// State returns the current state.
func (r *Refresher) State() State {
	return State(r.state.Load())
}

// Interval returns the configured refresh interval.
func (r *Refresher) Interval() time.Duration {
	return r.cfg.Interval
}

func (r *Refresher) setState(s State) {
	r.state.Store(int32(s))
	metrics.SetRefreshFetching(s == StateFetching)
}

// RunCycle performs one refresh: fetch, then publish if anything came back.
// It reports whether the snapshot was replaced.
func (r *Refresher) RunCycle(ctx context.Context) bool {
	start := r.cfg.Clock.Now()

	ctx, span := tracing.GetTracer().Start(ctx, "news.refresh")
	defer span.End()

	r.setState(StateFetching)
	defer r.setState(StateIdle)

	if r.cfg.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.CycleTimeout)
		defer cancel()
	}

	items := r.fetcher.Fetch(ctx)
	now := r.cfg.Clock.Now()

	replaced := len(items) > 0
	if replaced {
		r.store.Replace(items, now)
		r.logger.Info("snapshot replaced",
			slog.Int("items", len(items)),
			slog.Time("last_update", now))
	} else {
		snap := r.store.Load()
		r.logger.Warn("no news fetched, keeping previous snapshot",
			slog.Int("items", snap.Count()),
			slog.Bool("ever_updated", snap.Updated()))
	}

	span.SetAttributes(
		attribute.Int("news.items_fetched", len(items)),
		attribute.Bool("news.snapshot_replaced", replaced),
	)
	metrics.RecordRefreshCycle(replaced, now.Sub(start))
	return replaced
}

// Start runs one cycle right away and then every Interval until Stop is
// called or ctx is cancelled. Cycles never overlap: a cycle that outlasts the
// interval delays the next one.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	cronLogger := logging.NewCronLogger(r.logger)

	job := cron.NewChain(
		cron.Recover(cronLogger),
		cron.DelayIfStillRunning(cronLogger),
	).Then(cron.FuncJob(func() {
		if runCtx.Err() != nil {
			return
		}
		r.RunCycle(runCtx)
	}))

	c := cron.New(cron.WithLogger(cronLogger))
	c.Schedule(cron.Every(r.cfg.Interval), job)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		job.Run()
	}()
	c.Start()

	r.cron = c
	r.cancel = cancel
	r.running = true

	r.logger.Info("refresher started", slog.Duration("interval", r.cfg.Interval))
	return nil
}

// Stop cancels the in-flight cycle, stops the schedule and waits for running
// cycles to return. It is safe to call more than once.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	r.cancel()
	<-r.cron.Stop().Done()
	r.wg.Wait()

	r.running = false
	r.logger.Info("refresher stopped")
}
