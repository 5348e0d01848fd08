package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/pkg/logging"
)

func testLogger() *logging.Logger {
	cfg := logging.DefaultConfig("history-test")
	cfg.Level = logging.LevelError
	return logging.New(cfg)
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createSummary(id string, startedAt time.Time) domain.RunSummary {
	return domain.RunSummary{
		ID:           id,
		Status:       domain.RunStatusDone,
		CarrierName:  "FF",
		ShipmentID:   "SHP1002",
		OrderNumbers: []string{"12345678", "23456789.50"},
		StartedAt:    startedAt,
		CompletedAt:  startedAt.Add(3 * time.Second),
		BOLPath:      "/out/FF_SHP1002_BOL.pdf",
		LabelPath:    "/out/FF_SHP1002_Label.pdf",
		LabelPages:   4,
	}
}

func TestAppendAndRecent(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Append(t.Context(), createSummary("run-1", base)))
	require.NoError(t, store.Append(t.Context(), createSummary("run-2", base.Add(time.Minute))))
	require.NoError(t, store.Append(t.Context(), createSummary("run-3", base.Add(2*time.Minute))))

	summaries, err := store.Recent(t.Context(), 2)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "run-3", summaries[0].ID, "newest first")
	assert.Equal(t, "run-2", summaries[1].ID)
	assert.Equal(t, []string{"12345678", "23456789.50"}, summaries[0].OrderNumbers)
	assert.Equal(t, base.Add(2*time.Minute), summaries[0].StartedAt)
	assert.Equal(t, 4, summaries[0].LabelPages)
}

func TestAppendFailedRun(t *testing.T) {
	store := openTestStore(t)

	summary := domain.RunSummary{
		ID:            "run-failed",
		Status:        domain.RunStatusFailed,
		CarrierName:   "NFF",
		OrderNumbers:  []string{"99887766"},
		StartedAt:     time.Date(2026, time.August, 24, 9, 5, 0, 0, time.UTC),
		CompletedAt:   time.Date(2026, time.August, 24, 9, 5, 1, 0, time.UTC),
		FailureStage:  string(domain.RunStatusRendering),
		FailureReason: "label render failed",
	}
	require.NoError(t, store.Append(t.Context(), summary))

	summaries, err := store.Recent(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.Equal(t, domain.RunStatusFailed, summaries[0].Status)
	assert.Equal(t, "rendering", summaries[0].FailureStage)
	assert.Equal(t, "label render failed", summaries[0].FailureReason)
	assert.Empty(t, summaries[0].BOLPath)
}

func TestPartialSuccessRoundTrip(t *testing.T) {
	store := openTestStore(t)

	summary := createSummary("run-partial", time.Date(2026, time.August, 24, 9, 10, 0, 0, time.UTC))
	summary.FailedOrders = []string{"23456789.50"}
	require.NoError(t, store.Append(t.Context(), summary))

	summaries, err := store.Recent(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, []string{"23456789.50"}, summaries[0].FailedOrders)
}

func TestDuplicateRunIDRejected(t *testing.T) {
	store := openTestStore(t)
	summary := createSummary("run-1", time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC))

	require.NoError(t, store.Append(t.Context(), summary))
	assert.Error(t, store.Append(t.Context(), summary))
}

func TestRecentOnEmptyStore(t *testing.T) {
	store := openTestStore(t)

	summaries, err := store.Recent(t.Context(), 5)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
