package domain

import "time"

// DomainEvent is the interface all domain events implement
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// BOLGeneratedEvent is emitted when a generation run completes
type BOLGeneratedEvent struct {
	RunID        string    `json:"runId"`
	ShipmentID   string    `json:"shipmentId"`
	CarrierName  string    `json:"carrierName"`
	OrderNumbers []string  `json:"orderNumbers"`
	BOLPath      string    `json:"bolPath"`
	LabelPath    string    `json:"labelPath"`
	LabelPages   int       `json:"labelPages"`
	FailedOrders []string  `json:"failedOrders,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// EventType returns the event type
func (e *BOLGeneratedEvent) EventType() string {
	return "shipping.bol.generated"
}

// OccurredAt returns when the event occurred
func (e *BOLGeneratedEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// RunFailedEvent is emitted when a generation run fails before completion
type RunFailedEvent struct {
	RunID       string    `json:"runId"`
	ShipmentID  string    `json:"shipmentId,omitempty"`
	CarrierName string    `json:"carrierName,omitempty"`
	Stage       string    `json:"stage"`
	Reason      string    `json:"reason"`
	Timestamp   time.Time `json:"timestamp"`
}

// EventType returns the event type
func (e *RunFailedEvent) EventType() string {
	return "shipping.bol.run-failed"
}

// OccurredAt returns when the event occurred
func (e *RunFailedEvent) OccurredAt() time.Time {
	return e.Timestamp
}
