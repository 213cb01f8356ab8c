package workers

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MKhiriev/commerce-console/internal/logger"
)

// Job is one refresh task. Its error is logged.
type Job func(ctx context.Context) error

// Poller runs named jobs every interval. Runs of the same job are not
// deduplicated: a slow run may overlap the next one.
type Poller struct {
	interval time.Duration
	logger   *logger.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	entries map[string]cron.EntryID
	pending map[string]Job
}

// NewPoller creates an idle poller. Intervals below one second are raised
// to one second.
func NewPoller(interval time.Duration, log *logger.Logger) *Poller {
	return &Poller{
		interval: max(interval, time.Second),
		logger:   log,
		entries:  map[string]cron.EntryID{},
		pending:  map[string]Job{},
	}
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start implements [Worker]. Jobs scheduled before Start begin now.
func (p *Poller) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.cron = cron.New(cron.WithChain(cron.Recover(cronLogger{p.logger})))
	for name, job := range p.pending {
		p.scheduleLocked(name, job)
	}
	p.cron.Start()

	p.logger.Info().Dur("interval", p.interval).Msg("poller started")
}

// Schedule runs job every interval under name, replacing a job with the
// same name.
func (p *Poller) Schedule(name string, job Job) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending[name] = job
	if p.cron != nil {
		p.scheduleLocked(name, job)
	}
}

// Unschedule removes the job called name.
func (p *Poller) Unschedule(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.pending, name)
	if id, ok := p.entries[name]; ok {
		p.cron.Remove(id)
		delete(p.entries, name)
	}
}

// Jobs returns the number of scheduled jobs.
func (p *Poller) Jobs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Stop implements [Worker]. Running jobs see their context cancelled and
// Stop waits for them to return.
func (p *Poller) Stop() {
	p.mu.Lock()
	c, cancel := p.cron, p.cancel
	p.cron, p.cancel = nil, nil
	p.entries = map[string]cron.EntryID{}
	p.mu.Unlock()

	if c == nil {
		return
	}
	cancel()
	<-c.Stop().Done()
	p.logger.Info().Msg("poller stopped")
}

func (p *Poller) scheduleLocked(name string, job Job) {
	if id, ok := p.entries[name]; ok {
		p.cron.Remove(id)
	}

	ctx := p.ctx
	p.entries[name] = p.cron.Schedule(cron.Every(p.interval), cron.FuncJob(func() {
		if ctx.Err() != nil {
			return
		}
		if err := job(ctx); err != nil {
			p.logger.Warn().Err(err).Str("job", name).Msg("poll failed")
		}
	}))
}

// cronLogger routes cron's own messages to the console log.
type cronLogger struct {
	l *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
