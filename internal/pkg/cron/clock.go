package cron

import (
	"context"
	"log/slog"
	"time"
)

const NetworkClockCheckJob = "network_clock_check"

// TimeOracle returns nil when the network time cannot be read.
type TimeOracle interface {
	NetworkTime(ctx context.Context) *time.Time
}

// ClockJobs monitors the server clock against network time between punches.
type ClockJobs struct {
	oracle   TimeOracle
	maxDrift time.Duration
	now      func() time.Time
}

func NewClockJobs(oracle TimeOracle, maxDrift time.Duration, now func() time.Time) *ClockJobs {
	if now == nil {
		now = time.Now
	}
	return &ClockJobs{oracle: oracle, maxDrift: maxDrift, now: now}
}

func (j *ClockJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) error {
	return scheduler.AddJob(Job{
		Name:       NetworkClockCheckJob,
		Interval:   interval,
		RunOnStart: true,
		Fn:         j.CheckNetworkClock,
	})
}

func (j *ClockJobs) CheckNetworkClock(ctx context.Context) error {
	drift, ok := j.Drift(ctx)
	if !ok {
		slog.Debug("Cron: network time unavailable, skipping clock check")
		return nil
	}

	if drift > j.maxDrift {
		slog.Warn("Cron: server clock drift exceeds limit",
			"drift", drift.String(),
			"max_drift", j.maxDrift.String(),
		)
		return nil
	}

	slog.Debug("Cron: server clock in sync", "drift", drift.String())
	return nil
}

// Drift returns the absolute server-to-network difference, ok=false when the
// oracle is unavailable.
func (j *ClockJobs) Drift(ctx context.Context) (time.Duration, bool) {
	network := j.oracle.NetworkTime(ctx)
	if network == nil {
		return 0, false
	}

	drift := j.now().Sub(*network)
	if drift < 0 {
		drift = -drift
	}
	return drift, true
}
