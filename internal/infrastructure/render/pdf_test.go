package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/pkg/logging"
	"github.com/jblick1327/shipping/pkg/metrics"
)

func testLogger() *logging.Logger {
	cfg := logging.DefaultConfig("render-test")
	cfg.Level = logging.LevelError
	return logging.New(cfg)
}

func newTestRenderer(t *testing.T) (*PDFRenderer, string) {
	t.Helper()
	base := t.TempDir()
	renderer := NewPDFRenderer(base, DefaultTemplateLayout(), testLogger(), metrics.New(metrics.DefaultConfig("render-test")))
	return renderer, base
}

func createTestLabel() domain.LabelDescriptor {
	return domain.LabelDescriptor{
		UnitIndex:       1,
		TotalUnits:      1,
		PrimaryText:     "1/1",
		CarrierName:     "FF LOGISTICS",
		ReceiverCity:    "Toronto, Ontario",
		AddressBlock:    "BRIGHT BEGINNINGS DAYCARE\n45 ELM STREET\nToronto, Ontario\nM4B 1B3",
		TrackingNumber:  "TN100",
		ReferenceNumber: "SH 100234",
	}
}

// TestArtifactPathPartitioning tests that artifacts land under
// <base>/<year>/<month-abbrev>/<day>/ with spaces stripped from the
// file name
func TestArtifactPathPartitioning(t *testing.T) {
	renderer, base := newTestRenderer(t)
	date := time.Date(2026, time.August, 31, 14, 0, 0, 0, time.UTC)

	t.Run("bill of lading", func(t *testing.T) {
		path, err := renderer.FillTemplate(t.Context(), domain.FieldMap{"BOLnum": "SH 100234"}, "FF LOGISTICS", "SH 100234", date)
		require.NoError(t, err)

		rel, err := filepath.Rel(base, path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("2026", "Aug", "31", "FFLOGISTICS_SH100234_BOL.pdf"), rel)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("labels", func(t *testing.T) {
		path, err := renderer.RenderLabels(t.Context(), []domain.LabelDescriptor{createTestLabel()}, "FF LOGISTICS", "SH 100234", date)
		require.NoError(t, err)

		rel, err := filepath.Rel(base, path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("2026", "Aug", "31", "FFLOGISTICS_SH100234_Label.pdf"), rel)
	})

	t.Run("single digit day is zero padded", func(t *testing.T) {
		early := time.Date(2026, time.September, 4, 9, 0, 0, 0, time.UTC)
		path, err := renderer.FillTemplate(t.Context(), domain.FieldMap{}, "KPS", "SH200", early)
		require.NoError(t, err)

		rel, err := filepath.Rel(base, path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("2026", "Sep", "04", "KPS_SH200_BOL.pdf"), rel)
	})
}
