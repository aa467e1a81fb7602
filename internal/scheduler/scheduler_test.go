package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScanner struct {
	sent  int
	err   error
	calls int
}

func (f *fakeScanner) ScanAnomalies(ctx context.Context) (int, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("scan without deadline")
	}
	return f.sent, f.err
}

func TestNewAnomalyScan_InvalidSchedule(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := NewAnomalyScan("every morning", &fakeScanner{}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid anomaly scan schedule")
}

func TestRun(t *testing.T) {
	logger, hook := test.NewNullLogger()
	scanner := &fakeScanner{sent: 2}
	s, err := NewAnomalyScan("0 6 * * *", scanner, logger)
	require.NoError(t, err)

	s.Run()

	assert.Equal(t, 1, scanner.calls)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Anomaly scan completed", entry.Message)
	assert.Equal(t, 2, entry.Data["alerts_sent"])
}

func TestRun_Failure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s, err := NewAnomalyScan("@hourly", &fakeScanner{err: errors.New("db down")}, logger)
	require.NoError(t, err)

	s.Run()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Contains(t, entry.Message, "db down")
}

func TestStartStop(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s, err := NewAnomalyScan("0 6 * * *", &fakeScanner{}, logger)
	require.NoError(t, err)

	s.Start()
	assert.Contains(t, hook.LastEntry().Message, "Anomaly scan scheduled")
	s.Stop(context.Background())
}
