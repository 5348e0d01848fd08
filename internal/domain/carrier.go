package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Carrier menu options as presented by the legacy picker
const (
	CarrierOptionKPS         = 1
	CarrierOptionParcelPro   = 2
	CarrierOptionFF          = 3
	CarrierOptionNFF         = 4
	CarrierOptionFFLogistics = 5
	CarrierOptionCRR         = 6
	CarrierOptionCustom      = 7
)

// Carrier display names
const (
	CarrierNameKPS         = "KPS"
	CarrierNameParcelPro   = "PARCEL PRO"
	CarrierNameFF          = "FF"
	CarrierNameNFF         = "NFF"
	CarrierNameFFLogistics = "FF LOGISTICS"
	CarrierNameCRR         = "CRR"
)

// Domain errors
var (
	ErrUnknownCarrierOption = errors.New("unknown carrier option")
	ErrEmptyCarrierName     = errors.New("carrier name is required for a custom carrier")
)

// Carrier is a value object identifying the selected carrier and the
// document policy attached to it
type Carrier struct {
	option int
	name   string
	custom bool
}

// Predefined carriers
var (
	CarrierKPS         = Carrier{option: CarrierOptionKPS, name: CarrierNameKPS}
	CarrierParcelPro   = Carrier{option: CarrierOptionParcelPro, name: CarrierNameParcelPro}
	CarrierFF          = Carrier{option: CarrierOptionFF, name: CarrierNameFF}
	CarrierNFF         = Carrier{option: CarrierOptionNFF, name: CarrierNameNFF}
	CarrierFFLogistics = Carrier{option: CarrierOptionFFLogistics, name: CarrierNameFFLogistics}
	CarrierCRR         = Carrier{option: CarrierOptionCRR, name: CarrierNameCRR}
)

// NewCarrier creates a Carrier from a menu option. The custom name is
// only consulted for the custom option and is uppercased on entry.
func NewCarrier(option int, customName string) (Carrier, error) {
	switch option {
	case CarrierOptionKPS:
		return CarrierKPS, nil
	case CarrierOptionParcelPro:
		return CarrierParcelPro, nil
	case CarrierOptionFF:
		return CarrierFF, nil
	case CarrierOptionNFF:
		return CarrierNFF, nil
	case CarrierOptionFFLogistics:
		return CarrierFFLogistics, nil
	case CarrierOptionCRR:
		return CarrierCRR, nil
	case CarrierOptionCustom:
		name := strings.TrimSpace(customName)
		if name == "" {
			return Carrier{}, ErrEmptyCarrierName
		}
		return Carrier{option: CarrierOptionCustom, name: strings.ToUpper(name), custom: true}, nil
	default:
		return Carrier{}, fmt.Errorf("%w: %d", ErrUnknownCarrierOption, option)
	}
}

// NewCarrierFromName creates a Carrier from a display name. Names that
// do not match a predefined carrier become custom carriers.
func NewCarrierFromName(name string) (Carrier, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(name))
	if trimmed == "" {
		return Carrier{}, ErrEmptyCarrierName
	}

	switch trimmed {
	case CarrierNameKPS:
		return CarrierKPS, nil
	case CarrierNameParcelPro:
		return CarrierParcelPro, nil
	case CarrierNameFF:
		return CarrierFF, nil
	case CarrierNameNFF:
		return CarrierNFF, nil
	case CarrierNameFFLogistics:
		return CarrierFFLogistics, nil
	case CarrierNameCRR:
		return CarrierCRR, nil
	default:
		return Carrier{option: CarrierOptionCustom, name: trimmed, custom: true}, nil
	}
}

// MustNewCarrier creates a Carrier or panics. Use only with trusted input.
func MustNewCarrier(option int, customName string) Carrier {
	c, err := NewCarrier(option, customName)
	if err != nil {
		panic(err)
	}
	return c
}

// Option returns the menu option the carrier was selected by
func (c Carrier) Option() int {
	return c.option
}

// Name returns the carrier display name
func (c Carrier) Name() string {
	return c.name
}

// IsCustom reports whether the carrier was entered as a custom name
func (c Carrier) IsCustom() bool {
	return c.custom
}

// IsZero reports whether the carrier has not been selected
func (c Carrier) IsZero() bool {
	return c.option == 0
}

// String returns the carrier display name
func (c Carrier) String() string {
	return c.name
}

// Equals checks carrier equality
func (c Carrier) Equals(other Carrier) bool {
	return c.option == other.option && c.name == other.name
}

// RequiresTrackingAndQuote reports whether the carrier requires an
// alphanumeric tracking number and quote number before generation
func (c Carrier) RequiresTrackingAndQuote() bool {
	return c.name == CarrierNameFF || c.name == CarrierNameNFF
}

// RequiresQuotePrice reports whether the carrier requires a numeric
// quote price and shows it on the document
func (c Carrier) RequiresQuotePrice() bool {
	switch c.name {
	case CarrierNameFF, CarrierNameNFF, CarrierNameFFLogistics, CarrierNameCRR:
		return true
	}
	return false
}

// RequiresWeight reports whether the carrier requires a numeric weight
func (c Carrier) RequiresWeight() bool {
	switch c.name {
	case CarrierNameKPS, CarrierNameParcelPro:
		return false
	}
	return true
}

// BypassesDimensionEntry reports whether dimension entry is replaced by
// the placeholder value
func (c Carrier) BypassesDimensionEntry() bool {
	return c.name == CarrierNameKPS
}

// AggregatesToSingleLabel reports whether the shipment ships as loose
// cartons under one label page
func (c Carrier) AggregatesToSingleLabel() bool {
	return c.name == CarrierNameParcelPro
}

// SenderProfile holds the sender identification overlay applied for
// carriers with a dedicated account
type SenderProfile struct {
	SIDNumber     string
	QuoteFallback string
}

// QuoteLine formats the quote reference line for the document
func (p SenderProfile) QuoteLine(quoteNumber string) string {
	if quoteNumber == "" {
		return p.QuoteFallback
	}
	return "Quote #: " + quoteNumber
}

// SenderProfile returns the sender overlay for the carrier, or false if
// the carrier ships under the default sender block
func (c Carrier) SenderProfile() (SenderProfile, bool) {
	switch c.name {
	case CarrierNameFF:
		return SenderProfile{SIDNumber: "402140", QuoteFallback: "Quote #: QN ID"}, true
	case CarrierNameNFF:
		return SenderProfile{SIDNumber: "LOU006", QuoteFallback: "Quote #: "}, true
	}
	return SenderProfile{}, false
}

// ValidateConditionalFields checks the carrier-conditional raw inputs in
// a fixed order and returns the first violation
func (c Carrier) ValidateConditionalFields(tracking, quoteNumber, quotePrice, weight string) error {
	if c.RequiresTrackingAndQuote() {
		if err := ValidateAlphanumeric(tracking, "Tracking Number"); err != nil {
			return err
		}
		if err := ValidateAlphanumeric(quoteNumber, "Quote Number"); err != nil {
			return err
		}
	}

	if c.RequiresQuotePrice() {
		if err := ValidateNumeric(quotePrice, "Quote Price"); err != nil {
			return err
		}
	}

	if c.RequiresWeight() {
		if err := ValidateNumeric(weight, "Weight"); err != nil {
			return err
		}
	}

	return nil
}

// ValidateUnitCount cross-checks the operator-declared skid count
// against the dimension list. KPS bypasses the check and PARCEL PRO
// rejects any dimension entries.
func (c Carrier) ValidateUnitCount(declaredSkids int, dims []SkidDimension) error {
	if c.AggregatesToSingleLabel() {
		if len(dims) > 0 {
			return ErrDimensionsNotAccepted
		}
		return nil
	}

	if c.BypassesDimensionEntry() {
		return nil
	}

	actual := CountUnits(dims).Skids
	if declaredSkids != actual {
		return &CountMismatchError{Declared: declaredSkids, Actual: actual}
	}
	return nil
}

type carrierJSON struct {
	Option int    `json:"option"`
	Name   string `json:"name"`
	Custom bool   `json:"custom,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (c Carrier) MarshalJSON() ([]byte, error) {
	return json.Marshal(carrierJSON{Option: c.option, Name: c.name, Custom: c.custom})
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Carrier) UnmarshalJSON(data []byte) error {
	var aux carrierJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	carrier, err := NewCarrier(aux.Option, aux.Name)
	if err != nil {
		return err
	}

	*c = carrier
	return nil
}
