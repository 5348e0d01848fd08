package orderdb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/pkg/logging"
)

func testLogger() *logging.Logger {
	cfg := logging.DefaultConfig("orderdb-test")
	cfg.Level = logging.LevelError
	return logging.New(cfg)
}

func fixedNow() time.Time {
	return time.Date(2026, time.August, 24, 10, 30, 0, 0, time.UTC)
}

func createUpdate(orderNumber string) domain.ShipmentUpdate {
	return domain.ShipmentUpdate{
		OrderNumber:    domain.MustNewOrderNumber(orderNumber),
		TrackingNumber: "TN77821",
		CarrierName:    "FF",
		Weight:         "410.5",
		Cartons:        8,
		QuotePrice:     "149.99",
		ShipDate:       time.Date(2026, time.August, 25, 0, 0, 0, 0, time.UTC),
	}
}

// TestNormalizeUpdate tests the column constraints applied before the
// shipment write
func TestNormalizeUpdate(t *testing.T) {
	t.Run("full update passes through", func(t *testing.T) {
		write, err := normalizeUpdate(createUpdate("445566"), fixedNow)
		require.NoError(t, err)

		assert.Equal(t, "2026-08-25", write.ShipDate)
		assert.Equal(t, "TN77821", write.Tracking)
		assert.Equal(t, "FF", write.Carrier)
		assert.Equal(t, 410.5, write.Weight)
		assert.Equal(t, 8, write.Pieces)
		assert.Equal(t, 149.99, write.Freight)
	})

	t.Run("missing tracking aborts the write", func(t *testing.T) {
		update := createUpdate("445566")
		update.TrackingNumber = ""

		_, err := normalizeUpdate(update, fixedNow)
		assert.ErrorIs(t, err, domain.ErrTrackingNumberRequired)
	})

	t.Run("long values are cut to column width", func(t *testing.T) {
		update := createUpdate("445566")
		update.TrackingNumber = strings.Repeat("T", 40)
		update.CarrierName = strings.Repeat("C", 30)

		write, err := normalizeUpdate(update, fixedNow)
		require.NoError(t, err)
		assert.Len(t, write.Tracking, 30)
		assert.Len(t, write.Carrier, 23)
	})

	t.Run("blank amounts default to zero", func(t *testing.T) {
		update := createUpdate("445566")
		update.Weight = ""
		update.QuotePrice = "  "

		write, err := normalizeUpdate(update, fixedNow)
		require.NoError(t, err)
		assert.Zero(t, write.Weight)
		assert.Zero(t, write.Freight)
	})

	t.Run("malformed amounts abort the write", func(t *testing.T) {
		update := createUpdate("445566")
		update.Weight = "heavy"

		_, err := normalizeUpdate(update, fixedNow)
		assert.Error(t, err)
	})

	t.Run("zero cartons write as one piece", func(t *testing.T) {
		update := createUpdate("445566")
		update.Cartons = 0

		write, err := normalizeUpdate(update, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, 1, write.Pieces)
	})

	t.Run("zero ship date falls back to the clock", func(t *testing.T) {
		update := createUpdate("445566")
		update.ShipDate = time.Time{}

		write, err := normalizeUpdate(update, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "2026-08-24", write.ShipDate)
	})
}

func writeOrderFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// TestCSVStoreFetchOrder tests header-mapped row lookup
func TestCSVStoreFetchOrder(t *testing.T) {
	contents := "SSD_SHIPMENT_ID,SSD_SHIP_TO,SSD_SHIP_TO_2,SSD_SHIP_TO_3,SSD_SHIP_TO_4,SSD_SHIP_TO_POSTAL\n" +
		"445566.00,BRIGHT START DAYCARE,88 KING STREET WEST,ATTN: John Smith 4165551234,\"Toronto, Ontario\",M5H 1A1\n" +
		" 778899.00 ,OTHER SCHOOL,1 SIDE ROAD,Reception,Ottawa,K1A 0A9\n"

	store := NewCSVStore(writeOrderFile(t, contents), testLogger())

	t.Run("matches by shipment id", func(t *testing.T) {
		record, err := store.FetchOrder(context.Background(), domain.MustNewOrderNumber("445566"))
		require.NoError(t, err)

		assert.Equal(t, "445566.00", record.ShipmentID)
		assert.Equal(t, "BRIGHT START DAYCARE", record.ShipToName)
		assert.Equal(t, "88 KING STREET WEST", record.ShipToAddress)
		assert.Equal(t, "ATTN: John Smith 4165551234", record.ShipToContact)
		assert.Equal(t, "Toronto, Ontario", record.ShipToCity)
		assert.Equal(t, "M5H 1A1", record.ShipToPostal)
	})

	t.Run("trims the key before matching", func(t *testing.T) {
		record, err := store.FetchOrder(context.Background(), domain.MustNewOrderNumber("778899"))
		require.NoError(t, err)
		assert.Equal(t, "OTHER SCHOOL", record.ShipToName)
	})

	t.Run("missing row returns not found", func(t *testing.T) {
		_, err := store.FetchOrder(context.Background(), domain.MustNewOrderNumber("999999"))
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

func TestCSVStoreMissingFile(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "missing.csv"), testLogger())

	_, err := store.FetchOrder(context.Background(), domain.MustNewOrderNumber("445566"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrOrderNotFound))
}

func TestCSVStoreMissingKeyColumn(t *testing.T) {
	store := NewCSVStore(writeOrderFile(t, "A,B\n1,2\n"), testLogger())

	_, err := store.FetchOrder(context.Background(), domain.MustNewOrderNumber("445566"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SSD_SHIPMENT_ID")
}

func TestCSVStoreUpdateIsNoOp(t *testing.T) {
	path := writeOrderFile(t, "SSD_SHIPMENT_ID\n445566.00\n")
	store := NewCSVStore(path, testLogger())

	require.NoError(t, store.UpdateShipment(context.Background(), createUpdate("445566")))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SSD_SHIPMENT_ID\n445566.00\n", string(contents))
}
