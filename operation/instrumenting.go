package operation

import (
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/Qalifah/portsim/snapshot"
)

type instrumentingService struct {
	requestCount   metrics.Counter
	commandCount   metrics.Counter
	requestLatency metrics.Histogram
	Service
}

// NewInstrumentingService returns an instance of an instrumenting Service.
// requestCount and requestLatency are labelled by method, commandCount by
// action and outcome.
func NewInstrumentingService(requestCount, commandCount metrics.Counter, requestLatency metrics.Histogram, s Service) Service {
	return &instrumentingService{
		requestCount:   requestCount,
		commandCount:   commandCount,
		requestLatency: requestLatency,
		Service:        s,
	}
}

func (s *instrumentingService) Run(commands []Command) (Report, error) {
	defer func(begin time.Time) {
		s.requestCount.With("method", "run").Add(1)
		s.requestLatency.With("method", "run").Observe(time.Since(begin).Seconds())
	}(time.Now())

	r, err := s.Service.Run(commands)
	for _, res := range r.Results {
		outcome := "applied"
		if res.Err != nil {
			outcome = "failed"
		}
		s.commandCount.With("action", string(res.Action), "outcome", outcome).Add(1)
	}
	return r, err
}

func (s *instrumentingService) Snapshot() (snapshot.Snapshot, error) {
	defer func(begin time.Time) {
		s.requestCount.With("method", "snapshot").Add(1)
		s.requestLatency.With("method", "snapshot").Observe(time.Since(begin).Seconds())
	}(time.Now())

	return s.Service.Snapshot()
}
