package scheduler

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeRunRecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	jobLogger := zerolog.New(&buf)

	assert.NotPanics(t, func() {
		SafeRun(jobLogger, "contact_sync", func() error {
			panic("boom")
		})
	})
	assert.Contains(t, buf.String(), `"message":"job panicked"`)
	assert.Contains(t, buf.String(), `"job":"contact_sync"`)
}

func TestSafeRunLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	jobLogger := zerolog.New(&buf)

	SafeRun(jobLogger, "contact_sync", func() error { return errors.New("sync failed") })
	assert.Contains(t, buf.String(), "job finished with error")

	buf.Reset()
	SafeRun(jobLogger, "contact_sync", func() error { return nil })
	assert.Contains(t, buf.String(), "job finished successfully")
}

func TestAddCronJob(t *testing.T) {
	cron := gocron.NewScheduler(time.UTC)

	require.NoError(t, AddCronJob(cron, "0 */6 * * *", "contact_sync", zerolog.Nop(), func() error { return nil }))
	assert.Len(t, cron.Jobs(), 1)

	err := AddCronJob(cron, "every now and then", "broken", zerolog.Nop(), func() error { return nil })
	assert.ErrorContains(t, err, "failed to schedule broken")
}
