package domain

import (
	"fmt"
	"strings"
)

// LabelDescriptor describes one shipping label page. Rendering concerns
// stay out: the descriptor carries text only.
type LabelDescriptor struct {
	UnitIndex       int
	TotalUnits      int
	PrimaryText     string
	SuffixText      string
	CarrierName     string
	ReceiverCity    string
	AddressBlock    string
	TrackingNumber  string
	ReferenceNumber string
}

// ShowTrackingLine reports whether the label prints a separate tracking
// line. A tracking number matching the reference is redundant and the
// date takes the full line instead.
func (d LabelDescriptor) ShowTrackingLine() bool {
	tracking := strings.TrimSpace(d.TrackingNumber)
	return tracking != "" && tracking != strings.TrimSpace(d.ReferenceNumber)
}

// LabelInput carries everything the label sequence derivation consumes
type LabelInput struct {
	Record         OrderRecord
	Carrier        Carrier
	TrackingNumber string
	Dimensions     []SkidDimension
	DeclaredSkids  int
	Cartons        int
}

// BuildLabelSequence derives the ordered label pages for a shipment.
// Skids come first, then carpets, then boxes, numbered N/total with a
// classification suffix on carpet and box pages. Carriers that aggregate
// to a single label produce one page totaling the cartons.
func BuildLabelSequence(in LabelInput) []LabelDescriptor {
	base := LabelDescriptor{
		CarrierName:     in.Carrier.Name(),
		ReceiverCity:    in.Record.ShipToCity,
		AddressBlock:    in.Record.AddressBlock(),
		TrackingNumber:  in.TrackingNumber,
		ReferenceNumber: in.Record.ReferenceNumber(),
	}

	if in.Carrier.AggregatesToSingleLabel() {
		page := base
		page.UnitIndex = 1
		page.TotalUnits = 1
		page.PrimaryText = fmt.Sprintf("%d PCES.", in.Cartons)
		return []LabelDescriptor{page}
	}

	counts := CountUnits(in.Dimensions)
	total := in.DeclaredSkids + counts.Carpets + counts.Boxes

	sequence := make([]LabelDescriptor, 0, total)
	counter := 1

	for i := 0; i < in.DeclaredSkids; i++ {
		page := base
		page.UnitIndex = counter
		page.TotalUnits = total
		page.PrimaryText = fmt.Sprintf("%d/%d", counter, total)
		sequence = append(sequence, page)
		counter++
	}

	for i := 1; i <= counts.Carpets; i++ {
		page := base
		page.UnitIndex = counter
		page.TotalUnits = total
		page.PrimaryText = fmt.Sprintf("%d/%d", counter, total)
		page.SuffixText = fmt.Sprintf("%dC/%dC", i, counts.Carpets)
		sequence = append(sequence, page)
		counter++
	}

	for i := 1; i <= counts.Boxes; i++ {
		page := base
		page.UnitIndex = counter
		page.TotalUnits = total
		page.PrimaryText = fmt.Sprintf("%d/%d", counter, total)
		page.SuffixText = fmt.Sprintf("%dB/%dB", i, counts.Boxes)
		sequence = append(sequence, page)
		counter++
	}

	return sequence
}
