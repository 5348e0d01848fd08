package orderdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/pkg/logging"
	"github.com/jblick1327/shipping/pkg/metrics"
)

// Column width limits on the shipment update table
const (
	maxTrackingLength = 30
	maxCarrierLength  = 23
)

const fetchOrderQuery = `
	SELECT ssd_shipment_id, ssd_ship_to, ssd_ship_to_2, ssd_ship_to_3, ssd_ship_to_4, ssd_ship_to_postal
	FROM oessod
	WHERE ssd_shipment_id = $1`

const checkOrderQuery = `SELECT ordno FROM oeshpu WHERE ordno = $1`

const updateShipmentQuery = `
	UPDATE oeshpu
	SET dateship = $1, costcenter = $2, shipvia = $3, weightlbs = $4, pieces = $5, freight = $6
	WHERE ordno = $7`

// PostgresStore reads shipment headers from the order detail table and
// writes shipping data back to the shipment update table
type PostgresStore struct {
	db      *sql.DB
	logger  *logging.Logger
	metrics *metrics.Metrics
	nowFunc func() time.Time
}

// NewPostgresStore opens a connection pool against the order database
func NewPostgresStore(dsn string, logger *logging.Logger, m *metrics.Metrics) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open order database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping order database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &PostgresStore{
		db:      db,
		logger:  logger.WithComponent("orderdb"),
		metrics: m,
		nowFunc: time.Now,
	}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// FetchOrder loads the shipment header row keyed by the order number
func (s *PostgresStore) FetchOrder(ctx context.Context, number domain.OrderNumber) (*domain.OrderRecord, error) {
	start := time.Now()

	var shipmentID string
	var shipTo, shipTo2, shipTo3, shipTo4, postal sql.NullString

	err := s.db.QueryRowContext(ctx, fetchOrderQuery, number.Value()).Scan(
		&shipmentID, &shipTo, &shipTo2, &shipTo3, &shipTo4, &postal,
	)
	duration := time.Since(start)

	if errors.Is(err, sql.ErrNoRows) {
		s.metrics.RecordDBOperation("oessod", "select", true, duration)
		s.logger.Warn("No order record found", "orderNumber", number.Value())
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, number.Value())
	}
	if err != nil {
		s.metrics.RecordDBOperation("oessod", "select", false, duration)
		return nil, fmt.Errorf("failed to fetch order %s: %w", number.Value(), err)
	}

	s.metrics.RecordDBOperation("oessod", "select", true, duration)
	s.logger.DatabaseQuery(ctx, "oessod", "select", duration, true, 1)

	return &domain.OrderRecord{
		ShipmentID:    shipmentID,
		ShipToName:    shipTo.String,
		ShipToAddress: shipTo2.String,
		ShipToContact: shipTo3.String,
		ShipToCity:    shipTo4.String,
		ShipToPostal:  postal.String,
	}, nil
}

// UpdateShipment writes the shipping data for one order. The row must
// exist and the tracking number must be present, otherwise the update
// aborts without touching the table.
func (s *PostgresStore) UpdateShipment(ctx context.Context, update domain.ShipmentUpdate) error {
	start := time.Now()
	ordno := update.OrderNumber.Value()

	var existing string
	err := s.db.QueryRowContext(ctx, checkOrderQuery, ordno).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Warn("No shipment row to update", "orderNumber", ordno)
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, ordno)
	}
	if err != nil {
		s.metrics.RecordDBOperation("oeshpu", "update", false, time.Since(start))
		return fmt.Errorf("failed to check shipment row for %s: %w", ordno, err)
	}

	write, err := normalizeUpdate(update, s.nowFunc)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, updateShipmentQuery,
		write.ShipDate, write.Tracking, write.Carrier, write.Weight, write.Pieces, write.Freight, ordno,
	)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordDBOperation("oeshpu", "update", false, duration)
		return fmt.Errorf("failed to update shipment for %s: %w", ordno, err)
	}

	rows, _ := result.RowsAffected()
	s.metrics.RecordDBOperation("oeshpu", "update", true, duration)
	s.logger.DatabaseQuery(ctx, "oeshpu", "update", duration, true, rows)
	s.logger.Info("Shipment row updated",
		"orderNumber", ordno,
		"trackingNumber", write.Tracking,
		"carrier", write.Carrier)

	return nil
}

// shipmentWrite holds the column values after truncation and defaulting
type shipmentWrite struct {
	ShipDate string
	Tracking string
	Carrier  string
	Weight   float64
	Pieces   int
	Freight  float64
}

// normalizeUpdate applies the column constraints: tracking must be
// present and is cut to 30 characters, the carrier name to 23, blank
// amounts default to zero and a zero carton count writes as one piece.
func normalizeUpdate(update domain.ShipmentUpdate, nowFunc func() time.Time) (shipmentWrite, error) {
	if update.TrackingNumber == "" {
		return shipmentWrite{}, fmt.Errorf("%w: order %s", domain.ErrTrackingNumberRequired, update.OrderNumber.Value())
	}

	tracking := update.TrackingNumber
	if len(tracking) > maxTrackingLength {
		tracking = tracking[:maxTrackingLength]
	}

	carrier := update.CarrierName
	if len(carrier) > maxCarrierLength {
		carrier = carrier[:maxCarrierLength]
	}

	weight, err := parseAmount(update.Weight)
	if err != nil {
		return shipmentWrite{}, fmt.Errorf("invalid weight %q for order %s: %w", update.Weight, update.OrderNumber.Value(), err)
	}

	freight, err := parseAmount(update.QuotePrice)
	if err != nil {
		return shipmentWrite{}, fmt.Errorf("invalid quote price %q for order %s: %w", update.QuotePrice, update.OrderNumber.Value(), err)
	}

	pieces := update.Cartons
	if pieces == 0 {
		pieces = 1
	}

	shipDate := update.ShipDate
	if shipDate.IsZero() {
		shipDate = nowFunc()
	}

	return shipmentWrite{
		ShipDate: shipDate.Format("2006-01-02"),
		Tracking: tracking,
		Carrier:  carrier,
		Weight:   weight,
		Pieces:   pieces,
		Freight:  freight,
	}, nil
}

func parseAmount(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0.00, nil
	}
	return strconv.ParseFloat(trimmed, 64)
}
