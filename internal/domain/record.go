package domain

import "strings"

// OrderRecord is the shipment header row fetched for the lead order
// number. Blank fields are tolerated and substituted at use sites.
type OrderRecord struct {
	ShipmentID    string
	ShipToName    string
	ShipToAddress string
	ShipToContact string
	ShipToCity    string
	ShipToPostal  string
}

// ReferenceNumber returns the trimmed shipment identifier printed on
// labels and used in artifact names
func (r OrderRecord) ReferenceNumber() string {
	return strings.TrimSpace(r.ShipmentID)
}

// AddressBlock returns the four-line receiver address as printed on
// label pages
func (r OrderRecord) AddressBlock() string {
	return r.ShipToName + "\n" + r.ShipToAddress + "\n" + r.ShipToCity + "\n" + r.ShipToPostal
}
