package countdown

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TickSource runs fn every interval until the returned cancel func is called.
type TickSource interface {
	Every(interval time.Duration, fn func()) (cancel func(), err error)
}

// CronSource backs each periodic source with its own cron entry.
type CronSource struct {
	cron *cron.Cron
}

func NewCronSource(log *zap.Logger) *CronSource {
	cronLogger := cron.PrintfLogger(zap.NewStdLog(log))
	return &CronSource{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
	}
}

func (s *CronSource) Every(interval time.Duration, fn func()) (func(), error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive")
	}
	id, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), fn)
	if err != nil {
		return nil, fmt.Errorf("add cron entry: %w", err)
	}
	return func() { s.cron.Remove(id) }, nil
}

func (s *CronSource) Len() int {
	return len(s.cron.Entries())
}

func (s *CronSource) Start() {
	s.cron.Start()
}

func (s *CronSource) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
