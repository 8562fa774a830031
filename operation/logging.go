package operation

import (
	"time"

	"github.com/go-kit/kit/log"

	"github.com/Qalifah/portsim/snapshot"
)

type loggingService struct {
	logger log.Logger
	Service
}

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{logger, s}
}

func (s *loggingService) Run(commands []Command) (r Report, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "run",
			"run_id", r.RunID,
			"commands", len(commands),
			"applied", r.Applied,
			"failed", r.Failed,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.Run(commands)
}

func (s *loggingService) Snapshot() (snap snapshot.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "snapshot",
			"ports", len(snap.Ports),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.Service.Snapshot()
}
