package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var orderNumberPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// ErrInvalidOrderNumber is returned when an order number fails format validation
var ErrInvalidOrderNumber = errors.New("order number must be digits with an optional two-place decimal")

var orderNumberReplacer = strings.NewReplacer("-", ".", "_", ".")

// OrderNumber is a validated, canonicalized order reference. Raw input
// is trimmed and validated, dashes and underscores collapse to periods,
// and short values are padded with a ".00" suffix.
type OrderNumber struct {
	value string
}

// NewOrderNumber validates and canonicalizes a raw order number
func NewOrderNumber(raw string) (OrderNumber, error) {
	trimmed := strings.TrimSpace(raw)
	if !orderNumberPattern.MatchString(trimmed) {
		return OrderNumber{}, fmt.Errorf("%w: %q", ErrInvalidOrderNumber, raw)
	}

	normalized := orderNumberReplacer.Replace(trimmed)
	if len(normalized) < 8 {
		normalized += ".00"
	}

	return OrderNumber{value: normalized}, nil
}

// MustNewOrderNumber creates an OrderNumber or panics. Use only with
// trusted input such as test fixtures.
func MustNewOrderNumber(raw string) OrderNumber {
	n, err := NewOrderNumber(raw)
	if err != nil {
		panic(err)
	}
	return n
}

// Value returns the canonical order number string
func (n OrderNumber) Value() string {
	return n.value
}

// String implements the Stringer interface
func (n OrderNumber) String() string {
	return n.value
}

// IsZero reports whether the order number is unset
func (n OrderNumber) IsZero() bool {
	return n.value == ""
}

// Equals checks equality with another order number
func (n OrderNumber) Equals(other OrderNumber) bool {
	return n.value == other.value
}

// MarshalText implements encoding.TextMarshaler
func (n OrderNumber) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (n *OrderNumber) UnmarshalText(text []byte) error {
	parsed, err := NewOrderNumber(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
