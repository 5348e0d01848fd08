package application

import "time"

// DimensionEntry is one raw dimension input with its unit classification
type DimensionEntry struct {
	Value string
	Kind  string
}

// GenerateBOLCommand represents one request to generate the bill of
// lading and label documents for a shipment
type GenerateBOLCommand struct {
	CarrierOption        int
	CustomCarrierName    string
	OrderNumbers         []string
	Dimensions           []DimensionEntry
	DeclaredSkids        *int
	Cartons              int
	TrackingNumber       string
	QuoteNumber          string
	QuotePrice           string
	Weight               string
	DeliveryInstructions []string
	ShipDate             *time.Time
}

// GetOrderQuery represents the query to look up a shipment header by
// order number
type GetOrderQuery struct {
	OrderNumber string
}

// RecentRunsQuery represents the query for recent generation runs
type RecentRunsQuery struct {
	Limit int
}
