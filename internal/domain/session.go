package domain

import (
	"errors"
	"strings"
)

// Delivery instruction names in their fixed display order
const (
	DeliveryInside      = "Inside"
	DeliveryTailgate    = "Tailgate"
	DeliveryAppointment = "Appointment"
	DeliveryTwoMan      = "2-Man"
	DeliveryWhiteGlove  = "White Glove"
)

var deliveryInstructionOrder = []string{
	DeliveryInside,
	DeliveryTailgate,
	DeliveryAppointment,
	DeliveryTwoMan,
	DeliveryWhiteGlove,
}

// Domain errors
var (
	ErrCarrierNotSelected         = errors.New("a carrier must be selected")
	ErrNoOrderNumbers             = errors.New("at least one order number is required")
	ErrEntryIndexOutOfRange       = errors.New("entry index out of range")
	ErrUnknownDeliveryInstruction = errors.New("unknown delivery instruction")
)

// ShipmentSession accumulates the operator inputs for one shipment ahead
// of a generation run. Mutations enforce the selected carrier's entry
// policy, and handling unit counts stay derived from the dimension list.
type ShipmentSession struct {
	carrier              Carrier
	orderNumbers         []OrderNumber
	dimensions           []SkidDimension
	declaredSkids        int
	cartons              int
	trackingNumber       string
	quoteNumber          string
	quotePrice           string
	weight               string
	deliveryInstructions []string
}

// NewShipmentSession creates an empty session
func NewShipmentSession() *ShipmentSession {
	return &ShipmentSession{}
}

// SetCarrier selects the carrier. Moving onto or off a carrier that
// restricts dimension entry clears the dimension list so stale entries
// cannot leak through the policy gate.
func (s *ShipmentSession) SetCarrier(carrier Carrier) {
	previous := s.carrier
	s.carrier = carrier

	if previous.Equals(carrier) {
		return
	}

	restricted := func(c Carrier) bool {
		return c.BypassesDimensionEntry() || c.AggregatesToSingleLabel()
	}
	if restricted(previous) || restricted(carrier) {
		s.dimensions = nil
		s.syncDeclaredSkids()
	}
}

// Carrier returns the selected carrier
func (s *ShipmentSession) Carrier() Carrier {
	return s.carrier
}

// AddOrderNumber validates and appends an order number
func (s *ShipmentSession) AddOrderNumber(raw string) error {
	number, err := NewOrderNumber(raw)
	if err != nil {
		return err
	}
	s.orderNumbers = append(s.orderNumbers, number)
	return nil
}

// UpdateOrderNumber replaces the order number at the given position
func (s *ShipmentSession) UpdateOrderNumber(index int, raw string) error {
	if index < 0 || index >= len(s.orderNumbers) {
		return ErrEntryIndexOutOfRange
	}
	number, err := NewOrderNumber(raw)
	if err != nil {
		return err
	}
	s.orderNumbers[index] = number
	return nil
}

// RemoveOrderNumber deletes the order number at the given position
func (s *ShipmentSession) RemoveOrderNumber(index int) error {
	if index < 0 || index >= len(s.orderNumbers) {
		return ErrEntryIndexOutOfRange
	}
	s.orderNumbers = append(s.orderNumbers[:index], s.orderNumbers[index+1:]...)
	return nil
}

// OrderNumbers returns a copy of the accumulated order numbers
func (s *ShipmentSession) OrderNumbers() []OrderNumber {
	out := make([]OrderNumber, len(s.orderNumbers))
	copy(out, s.orderNumbers)
	return out
}

// LeadOrderNumber returns the first order number, whose record drives
// the document
func (s *ShipmentSession) LeadOrderNumber() (OrderNumber, error) {
	if len(s.orderNumbers) == 0 {
		return OrderNumber{}, ErrNoOrderNumbers
	}
	return s.orderNumbers[0], nil
}

// AddDimension canonicalizes and appends a handling unit entry under the
// carrier's entry policy. Carriers that bypass dimension entry record
// the placeholder regardless of the raw value.
func (s *ShipmentSession) AddDimension(raw string, kind DimensionKind) error {
	if s.carrier.AggregatesToSingleLabel() {
		return ErrDimensionsNotAccepted
	}

	if s.carrier.BypassesDimensionEntry() {
		s.dimensions = append(s.dimensions, NewPlaceholderDimension())
		s.syncDeclaredSkids()
		return nil
	}

	dim, err := NewSkidDimension(raw, kind)
	if err != nil {
		return err
	}
	s.dimensions = append(s.dimensions, dim)
	s.syncDeclaredSkids()
	return nil
}

// UpdateDimension re-canonicalizes the entry at the given position
func (s *ShipmentSession) UpdateDimension(index int, raw string, kind DimensionKind) error {
	if index < 0 || index >= len(s.dimensions) {
		return ErrEntryIndexOutOfRange
	}

	if s.carrier.BypassesDimensionEntry() {
		s.dimensions[index] = NewPlaceholderDimension()
		s.syncDeclaredSkids()
		return nil
	}

	dim, err := NewSkidDimension(raw, kind)
	if err != nil {
		return err
	}
	s.dimensions[index] = dim
	s.syncDeclaredSkids()
	return nil
}

// RemoveDimension deletes the entry at the given position
func (s *ShipmentSession) RemoveDimension(index int) error {
	if index < 0 || index >= len(s.dimensions) {
		return ErrEntryIndexOutOfRange
	}
	s.dimensions = append(s.dimensions[:index], s.dimensions[index+1:]...)
	s.syncDeclaredSkids()
	return nil
}

// Dimensions returns a copy of the dimension list
func (s *ShipmentSession) Dimensions() []SkidDimension {
	out := make([]SkidDimension, len(s.dimensions))
	copy(out, s.dimensions)
	return out
}

// Counts returns handling unit totals derived from the dimension list
func (s *ShipmentSession) Counts() UnitCounts {
	return CountUnits(s.dimensions)
}

func (s *ShipmentSession) syncDeclaredSkids() {
	s.declaredSkids = CountUnits(s.dimensions).Skids
}

// SetDeclaredSkidCount overrides the skid count. Carriers that bypass
// dimension entry rely on this as the only unit count source.
func (s *ShipmentSession) SetDeclaredSkidCount(count int) {
	s.declaredSkids = count
}

// DeclaredSkidCount returns the operator-declared skid count
func (s *ShipmentSession) DeclaredSkidCount() int {
	return s.declaredSkids
}

// SetCartons records the loose carton count
func (s *ShipmentSession) SetCartons(cartons int) {
	s.cartons = cartons
}

// Cartons returns the loose carton count
func (s *ShipmentSession) Cartons() int {
	return s.cartons
}

// SetTrackingNumber records the trimmed tracking number
func (s *ShipmentSession) SetTrackingNumber(tracking string) {
	s.trackingNumber = strings.TrimSpace(tracking)
}

// TrackingNumber returns the tracking number
func (s *ShipmentSession) TrackingNumber() string {
	return s.trackingNumber
}

// SetQuoteNumber records the trimmed quote number
func (s *ShipmentSession) SetQuoteNumber(quoteNumber string) {
	s.quoteNumber = strings.TrimSpace(quoteNumber)
}

// QuoteNumber returns the quote number
func (s *ShipmentSession) QuoteNumber() string {
	return s.quoteNumber
}

// SetQuotePrice records the trimmed quote price
func (s *ShipmentSession) SetQuotePrice(quotePrice string) {
	s.quotePrice = strings.TrimSpace(quotePrice)
}

// QuotePrice returns the quote price
func (s *ShipmentSession) QuotePrice() string {
	return s.quotePrice
}

// SetWeight records the trimmed weight
func (s *ShipmentSession) SetWeight(weight string) {
	s.weight = strings.TrimSpace(weight)
}

// Weight returns the weight
func (s *ShipmentSession) Weight() string {
	return s.weight
}

// SetDeliveryInstructions validates the instruction names and stores
// them in their fixed display order, duplicates collapsed
func (s *ShipmentSession) SetDeliveryInstructions(names []string) error {
	selected := make(map[string]bool, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if !isKnownDeliveryInstruction(trimmed) {
			return ErrUnknownDeliveryInstruction
		}
		selected[trimmed] = true
	}

	s.deliveryInstructions = nil
	for _, name := range deliveryInstructionOrder {
		if selected[name] {
			s.deliveryInstructions = append(s.deliveryInstructions, name)
		}
	}
	return nil
}

// DeliveryInstructions returns the selected instructions in display order
func (s *ShipmentSession) DeliveryInstructions() []string {
	out := make([]string, len(s.deliveryInstructions))
	copy(out, s.deliveryInstructions)
	return out
}

func isKnownDeliveryInstruction(name string) bool {
	for _, known := range deliveryInstructionOrder {
		if known == name {
			return true
		}
	}
	return false
}

// DeliveryFields splits the selected instructions across the two
// additional information lines. Up to three instructions fit on the
// second line alone; four or more spill the first two onto the first
// line. No selection leaves both lines empty.
func (s *ShipmentSession) DeliveryFields() (addInfo7, addInfo8 string) {
	instructions := s.deliveryInstructions
	if len(instructions) == 0 {
		return "", ""
	}

	if len(instructions) <= 3 {
		return "", strings.Join(instructions, ", ") + " Delivery"
	}

	return strings.Join(instructions[:2], ", ") + ",",
		strings.Join(instructions[2:], ", ") + " Delivery"
}

// Validate checks the session against the selected carrier's policy and
// returns the first violation
func (s *ShipmentSession) Validate() error {
	if s.carrier.IsZero() {
		return ErrCarrierNotSelected
	}

	if len(s.orderNumbers) == 0 {
		return ErrNoOrderNumbers
	}

	if err := s.carrier.ValidateConditionalFields(s.trackingNumber, s.quoteNumber, s.quotePrice, s.weight); err != nil {
		return err
	}

	return s.carrier.ValidateUnitCount(s.declaredSkids, s.dimensions)
}
