package domain

import (
	"context"
	"errors"
	"time"
)

// Repository errors
var (
	ErrOrderNotFound          = errors.New("order record not found")
	ErrTrackingNumberRequired = errors.New("tracking number is required for the shipment update")
)

// ShipmentUpdate carries the write-back values for one order. Field
// truncation and numeric defaulting happen at the store boundary.
type ShipmentUpdate struct {
	OrderNumber    OrderNumber
	TrackingNumber string
	CarrierName    string
	Weight         string
	Cartons        int
	QuotePrice     string
	ShipDate       time.Time
}

// OrderRepository loads shipment headers and writes shipping data back
// to the order tables
type OrderRepository interface {
	FetchOrder(ctx context.Context, orderNumber OrderNumber) (*OrderRecord, error)
	UpdateShipment(ctx context.Context, update ShipmentUpdate) error
}

// DocumentRenderer renders the filled form and the label pages into
// dated artifact files, returning the written paths
type DocumentRenderer interface {
	FillTemplate(ctx context.Context, fields FieldMap, carrierName, shipmentID string, date time.Time) (string, error)
	RenderLabels(ctx context.Context, sequence []LabelDescriptor, carrierName, shipmentID string, date time.Time) (string, error)
}

// RunHistoryRepository records finished generation runs
type RunHistoryRepository interface {
	Append(ctx context.Context, summary RunSummary) error
	Recent(ctx context.Context, limit int) ([]RunSummary, error)
}

// EventPublisher publishes domain events to the message bus
type EventPublisher interface {
	Publish(ctx context.Context, key string, event DomainEvent) error
	Close() error
}
