package domain

import (
	"errors"
	"fmt"
	"time"
)

// RunStatus represents the state of a generation run
type RunStatus string

// Run statuses in pipeline order
const (
	RunStatusIdle       RunStatus = "idle"
	RunStatusValidating RunStatus = "validating"
	RunStatusFetching   RunStatus = "fetching"
	RunStatusBuilding   RunStatus = "building"
	RunStatusRendering  RunStatus = "rendering"
	RunStatusPersisting RunStatus = "persisting"
	RunStatusDone       RunStatus = "done"
	RunStatusFailed     RunStatus = "failed"
)

// Domain errors
var (
	ErrInvalidRunTransition = errors.New("invalid run transition")
	ErrRunFinished          = errors.New("run already finished")
)

var runSequence = map[RunStatus]RunStatus{
	RunStatusIdle:       RunStatusValidating,
	RunStatusValidating: RunStatusFetching,
	RunStatusFetching:   RunStatusBuilding,
	RunStatusBuilding:   RunStatusRendering,
	RunStatusRendering:  RunStatusPersisting,
	RunStatusPersisting: RunStatusDone,
}

// IsTerminal reports whether the status ends the run
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusDone || s == RunStatusFailed
}

// OrderUpdateOutcome records the write-back result for one order number
type OrderUpdateOutcome struct {
	OrderNumber OrderNumber
	Applied     bool
	Error       string
}

// GenerationRun tracks one pass through the generation pipeline. Stages
// advance strictly in order; any stage may fail, and a failed run records
// the stage it died in.
type GenerationRun struct {
	ID             string
	Status         RunStatus
	Carrier        Carrier
	ShipmentID     string
	OrderNumbers   []OrderNumber
	StartedAt      time.Time
	CompletedAt    time.Time
	FailureStage   RunStatus
	FailureReason  string
	BOLPath        string
	LabelPath      string
	LabelPages     int
	UpdateOutcomes []OrderUpdateOutcome

	domainEvents []DomainEvent
}

// NewGenerationRun creates a run in the idle state
func NewGenerationRun(id string, carrier Carrier, orderNumbers []OrderNumber, startedAt time.Time) *GenerationRun {
	numbers := make([]OrderNumber, len(orderNumbers))
	copy(numbers, orderNumbers)

	return &GenerationRun{
		ID:           id,
		Status:       RunStatusIdle,
		Carrier:      carrier,
		OrderNumbers: numbers,
		StartedAt:    startedAt,
	}
}

func (r *GenerationRun) advance(next RunStatus) error {
	if r.Status.IsTerminal() {
		return ErrRunFinished
	}
	if runSequence[r.Status] != next {
		return fmt.Errorf("%w: %s to %s", ErrInvalidRunTransition, r.Status, next)
	}
	r.Status = next
	return nil
}

// BeginValidation moves the run into input validation
func (r *GenerationRun) BeginValidation() error {
	return r.advance(RunStatusValidating)
}

// BeginFetch moves the run into record retrieval
func (r *GenerationRun) BeginFetch() error {
	return r.advance(RunStatusFetching)
}

// BeginBuild moves the run into field map and label derivation
func (r *GenerationRun) BeginBuild() error {
	return r.advance(RunStatusBuilding)
}

// BeginRender moves the run into document rendering
func (r *GenerationRun) BeginRender() error {
	return r.advance(RunStatusRendering)
}

// BeginPersist moves the run into the shipment write-back
func (r *GenerationRun) BeginPersist() error {
	return r.advance(RunStatusPersisting)
}

// SetShipment records the shipment identifier once the record is fetched
func (r *GenerationRun) SetShipment(shipmentID string) {
	r.ShipmentID = shipmentID
}

// RecordArtifacts records the rendered document paths
func (r *GenerationRun) RecordArtifacts(bolPath, labelPath string, labelPages int) {
	r.BOLPath = bolPath
	r.LabelPath = labelPath
	r.LabelPages = labelPages
}

// RecordUpdateOutcome records the write-back result for one order
func (r *GenerationRun) RecordUpdateOutcome(number OrderNumber, err error) {
	outcome := OrderUpdateOutcome{OrderNumber: number, Applied: err == nil}
	if err != nil {
		outcome.Error = err.Error()
	}
	r.UpdateOutcomes = append(r.UpdateOutcomes, outcome)
}

// FailedOrders returns the order numbers whose write-back did not apply
func (r *GenerationRun) FailedOrders() []string {
	var failed []string
	for _, outcome := range r.UpdateOutcomes {
		if !outcome.Applied {
			failed = append(failed, outcome.OrderNumber.Value())
		}
	}
	return failed
}

// Complete finishes the run from the persisting stage and emits the
// generated event. Write-back failures do not block completion: the run
// reports them per order instead.
func (r *GenerationRun) Complete(at time.Time) error {
	if err := r.advance(RunStatusDone); err != nil {
		return err
	}
	r.CompletedAt = at

	r.AddDomainEvent(&BOLGeneratedEvent{
		RunID:        r.ID,
		ShipmentID:   r.ShipmentID,
		CarrierName:  r.Carrier.Name(),
		OrderNumbers: r.orderNumberValues(),
		BOLPath:      r.BOLPath,
		LabelPath:    r.LabelPath,
		LabelPages:   r.LabelPages,
		FailedOrders: r.FailedOrders(),
		Timestamp:    at,
	})
	return nil
}

// Fail ends the run from any non-terminal state, recording the stage it
// failed in, and emits the failure event
func (r *GenerationRun) Fail(reason error, at time.Time) error {
	if r.Status.IsTerminal() {
		return ErrRunFinished
	}

	r.FailureStage = r.Status
	r.FailureReason = reason.Error()
	r.Status = RunStatusFailed
	r.CompletedAt = at

	r.AddDomainEvent(&RunFailedEvent{
		RunID:       r.ID,
		ShipmentID:  r.ShipmentID,
		CarrierName: r.Carrier.Name(),
		Stage:       string(r.FailureStage),
		Reason:      r.FailureReason,
		Timestamp:   at,
	})
	return nil
}

// Duration returns the elapsed run time, zero until the run finishes
func (r *GenerationRun) Duration() time.Duration {
	if r.CompletedAt.IsZero() {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

func (r *GenerationRun) orderNumberValues() []string {
	values := make([]string, len(r.OrderNumbers))
	for i, n := range r.OrderNumbers {
		values[i] = n.Value()
	}
	return values
}

// Summary projects the run into its persisted form
func (r *GenerationRun) Summary() RunSummary {
	return RunSummary{
		ID:            r.ID,
		Status:        r.Status,
		CarrierName:   r.Carrier.Name(),
		ShipmentID:    r.ShipmentID,
		OrderNumbers:  r.orderNumberValues(),
		StartedAt:     r.StartedAt,
		CompletedAt:   r.CompletedAt,
		FailureStage:  string(r.FailureStage),
		FailureReason: r.FailureReason,
		BOLPath:       r.BOLPath,
		LabelPath:     r.LabelPath,
		LabelPages:    r.LabelPages,
		FailedOrders:  r.FailedOrders(),
	}
}

// RunSummary is the persisted projection of a finished run
type RunSummary struct {
	ID            string
	Status        RunStatus
	CarrierName   string
	ShipmentID    string
	OrderNumbers  []string
	StartedAt     time.Time
	CompletedAt   time.Time
	FailureStage  string
	FailureReason string
	BOLPath       string
	LabelPath     string
	LabelPages    int
	FailedOrders  []string
}

// AddDomainEvent adds a domain event to the run
func (r *GenerationRun) AddDomainEvent(event DomainEvent) {
	r.domainEvents = append(r.domainEvents, event)
}

// GetDomainEvents returns the accumulated domain events
func (r *GenerationRun) GetDomainEvents() []DomainEvent {
	return r.domainEvents
}

// ClearDomainEvents clears the accumulated domain events
func (r *GenerationRun) ClearDomainEvents() {
	r.domainEvents = nil
}
