package orderdb

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/pkg/logging"
)

// CSVStore serves shipment headers from a flat file for development and
// testing. Updates are logged and not persisted.
type CSVStore struct {
	path   string
	logger *logging.Logger
}

// NewCSVStore creates a store over the given CSV file. The file needs a
// header row naming the order detail columns.
func NewCSVStore(path string, logger *logging.Logger) *CSVStore {
	return &CSVStore{
		path:   path,
		logger: logger.WithComponent("orderdb-csv"),
	}
}

// FetchOrder scans the file for the row whose shipment id matches the
// order number
func (s *CSVStore) FetchOrder(ctx context.Context, number domain.OrderNumber) (*domain.OrderRecord, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open order file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read order file header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns["SSD_SHIPMENT_ID"]; !ok {
		return nil, fmt.Errorf("order file %s is missing the SSD_SHIPMENT_ID column", s.path)
	}

	want := strings.TrimSpace(number.Value())
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read order file row: %w", err)
		}

		if strings.TrimSpace(cell(row, columns, "SSD_SHIPMENT_ID")) != want {
			continue
		}

		s.logger.Info("Order record fetched from file", "orderNumber", number.Value())
		return &domain.OrderRecord{
			ShipmentID:    cell(row, columns, "SSD_SHIPMENT_ID"),
			ShipToName:    cell(row, columns, "SSD_SHIP_TO"),
			ShipToAddress: cell(row, columns, "SSD_SHIP_TO_2"),
			ShipToContact: cell(row, columns, "SSD_SHIP_TO_3"),
			ShipToCity:    cell(row, columns, "SSD_SHIP_TO_4"),
			ShipToPostal:  cell(row, columns, "SSD_SHIP_TO_POSTAL"),
		}, nil
	}

	s.logger.Warn("No order record found in file", "orderNumber", number.Value())
	return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, number.Value())
}

// UpdateShipment logs the write that the live store would perform
func (s *CSVStore) UpdateShipment(ctx context.Context, update domain.ShipmentUpdate) error {
	s.logger.Info("Simulating shipment update",
		"orderNumber", update.OrderNumber.Value(),
		"trackingNumber", update.TrackingNumber,
		"carrier", update.CarrierName,
		"weight", update.Weight,
		"cartons", update.Cartons,
		"quotePrice", update.QuotePrice)
	return nil
}

func cell(row []string, columns map[string]int, name string) string {
	index, ok := columns[name]
	if !ok || index >= len(row) {
		return ""
	}
	return row[index]
}
