package application

import "time"

// RunReportDTO represents a finished generation run in responses
type RunReportDTO struct {
	RunID         string    `json:"runId"`
	Status        string    `json:"status"`
	CarrierName   string    `json:"carrierName"`
	ShipmentID    string    `json:"shipmentId"`
	OrderNumbers  []string  `json:"orderNumbers"`
	BOLPath       string    `json:"bolPath,omitempty"`
	LabelPath     string    `json:"labelPath,omitempty"`
	LabelPages    int       `json:"labelPages"`
	FailedOrders  []string  `json:"failedOrders,omitempty"`
	FailureStage  string    `json:"failureStage,omitempty"`
	FailureReason string    `json:"failureReason,omitempty"`
	StartedAt     time.Time `json:"startedAt"`
	CompletedAt   time.Time `json:"completedAt"`
}

// RunSummaryDTO represents one entry from the run history
type RunSummaryDTO struct {
	RunID         string    `json:"runId"`
	Status        string    `json:"status"`
	CarrierName   string    `json:"carrierName"`
	ShipmentID    string    `json:"shipmentId,omitempty"`
	OrderNumbers  []string  `json:"orderNumbers"`
	BOLPath       string    `json:"bolPath,omitempty"`
	LabelPath     string    `json:"labelPath,omitempty"`
	LabelPages    int       `json:"labelPages"`
	FailedOrders  []string  `json:"failedOrders,omitempty"`
	FailureStage  string    `json:"failureStage,omitempty"`
	FailureReason string    `json:"failureReason,omitempty"`
	StartedAt     time.Time `json:"startedAt"`
	CompletedAt   time.Time `json:"completedAt"`
}

// LabelPageDTO represents one label page in a preview
type LabelPageDTO struct {
	UnitIndex    int    `json:"unitIndex"`
	TotalUnits   int    `json:"totalUnits"`
	PrimaryText  string `json:"primaryText"`
	SuffixText   string `json:"suffixText,omitempty"`
	ShowTracking bool   `json:"showTracking"`
}

// PreviewDTO represents the derived document content without rendering
type PreviewDTO struct {
	CarrierName string            `json:"carrierName"`
	ShipmentID  string            `json:"shipmentId"`
	Fields      map[string]string `json:"fields"`
	Labels      []LabelPageDTO    `json:"labels"`
}

// OrderRecordDTO represents a fetched shipment header in responses. The
// attention line and city come back normalized for display.
type OrderRecordDTO struct {
	ShipmentID          string `json:"shipmentId"`
	ShipToName          string `json:"shipToName"`
	ShipToAddress       string `json:"shipToAddress"`
	AttentionLine       string `json:"attentionLine"`
	AttentionWasPresent bool   `json:"attentionWasPresent"`
	CityProvince        string `json:"cityProvince"`
	PostalCode          string `json:"postalCode"`
}
