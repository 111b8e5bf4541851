package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"go-application-tracker/internal/domain"
	"go-application-tracker/pkg/logger"
)

// runTimeout bounds a single batch; a stuck storage call cannot wedge
// the scheduler forever.
const runTimeout = 5 * time.Minute

// Scheduler fires the automation engine on a fixed interval. It is
// process-scoped state with an explicit Start/Stop lifecycle; the
// inProgress flag makes overlapping batches impossible (skip-if-busy).
type Scheduler struct {
	bot      domain.BotUsecase
	auth     domain.AuthUsecase
	interval time.Duration

	started    atomic.Bool
	inProgress atomic.Bool
	stop       chan struct{}
	done       chan struct{}
}

func New(bot domain.BotUsecase, auth domain.AuthUsecase, interval time.Duration) *Scheduler {
	return &Scheduler{
		bot:      bot,
		auth:     auth,
		interval: interval,
	}
}

// Start launches the timer loop. Calling Start on a running scheduler is
// a no-op.
func (s *Scheduler) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.loop()
	logger.Log.Info("automation scheduler started", "interval", s.interval.String())
}

// Stop terminates the timer loop and waits for it to exit. A batch
// already in flight finishes on its own; only the trigger stops.
func (s *Scheduler) Stop() {
	if !s.started.CompareAndSwap(true, false) {
		return
	}
	close(s.stop)
	<-s.done
	logger.Log.Info("automation scheduler stopped")
}

func (s *Scheduler) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			go s.tick()
		}
	}
}

// tick runs one scheduled batch. Every failure mode here is a logged
// skip; nothing a run does can take the process down.
func (s *Scheduler) tick() {
	if !s.inProgress.CompareAndSwap(false, true) {
		logger.Log.Warn("previous automation run still in progress, skipping tick")
		return
	}
	defer s.inProgress.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	actor, err := s.auth.ResolveAutomationActor(ctx)
	if err != nil {
		logger.Log.Info("no bot user found for scheduled processing, skipping run")
		return
	}

	result, err := s.bot.RunOnce(ctx, actor)
	if err != nil {
		logger.Log.Error("scheduled processing failed", "error", err)
		return
	}

	logger.Log.Info("scheduled processing result",
		"examined", result.Examined,
		"updated", len(result.Updated),
	)
}
