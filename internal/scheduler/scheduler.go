package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const scanTimeout = 10 * time.Minute

// Scanner runs one anomaly scan and reports how many alerts went out
type Scanner interface {
	ScanAnomalies(ctx context.Context) (int, error)
}

// AnomalyScan runs the anomaly scan on a cron schedule
type AnomalyScan struct {
	cron    *cron.Cron
	scanner Scanner
	log     *logrus.Logger
}

// NewAnomalyScan registers the scan under a standard five-field cron expression
func NewAnomalyScan(schedule string, scanner Scanner, log *logrus.Logger) (*AnomalyScan, error) {
	s := &AnomalyScan{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		scanner: scanner,
		log:     log,
	}
	if _, err := s.cron.AddFunc(schedule, s.Run); err != nil {
		return nil, fmt.Errorf("invalid anomaly scan schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running scheduled scans in the background
func (s *AnomalyScan) Start() {
	s.cron.Start()
	s.log.Infof("Anomaly scan scheduled, next run at %s", s.cron.Entries()[0].Next.Format(time.RFC3339))
}

// Stop halts scheduling and waits for a running scan to finish or ctx to expire
func (s *AnomalyScan) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("Anomaly scan still running at shutdown")
	}
}

// Run executes one scan
func (s *AnomalyScan) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	start := time.Now()
	sent, err := s.scanner.ScanAnomalies(ctx)
	if err != nil {
		s.log.Errorf("Anomaly scan failed: %v", err)
		return
	}
	s.log.WithFields(logrus.Fields{
		"alerts_sent": sent,
		"duration":    time.Since(start).String(),
	}).Info("Anomaly scan completed")
}
