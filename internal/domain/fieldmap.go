package domain

import (
	"strconv"
	"strings"
	"time"
)

// MaxOrderNumbers is the largest number of order references the document
// has room for. Entries beyond it are dropped.
const MaxOrderNumbers = 12

// Fixed sender and document constants
const (
	SenderName         = "LOUISE KOOL & GALT"
	SenderAddress      = "2123 MCCOWAN ROAD"
	SenderCityPostal   = "SCARBOROUGH, ON. M1S 3Y6"
	DefaultDescription = "CHILDCARE MATERIALS/FURNITURE"
)

// FieldMap holds the values keyed by template field name. Keys absent
// from the map leave the template field at its default.
type FieldMap map[string]string

// BuildInput carries everything the field map derivation consumes
type BuildInput struct {
	Record         OrderRecord
	Carrier        Carrier
	OrderNumbers   []OrderNumber
	Dimensions     []SkidDimension
	DeclaredSkids  int
	Cartons        int
	TrackingNumber string
	QuoteNumber    string
	QuotePrice     string
	Weight         string
	AddInfo7       string
	AddInfo8       string
	Date           time.Time
}

// BuildFieldMap derives the complete document field map. The derivation
// is pure: the same input always produces the same map.
func BuildFieldMap(in BuildInput) FieldMap {
	counts := CountUnits(in.Dimensions)

	fields := FieldMap{
		"BOLnum":    in.Record.ShipmentID,
		"ToName":    orDefault(in.Record.ShipToName, "Unknown"),
		"ToAddress": orDefault(in.Record.ShipToAddress, "Unknown Address"),
		"ToCityStateZip": strings.TrimSpace(orDefault(in.Record.ShipToCity, "Unknown City")) + ". " +
			strings.TrimSpace(orDefault(in.Record.ShipToPostal, "Unknown Postal Code")),
		"CarrierName": in.Carrier.Name(),
		"Date":        in.Date.Format("2006-01-02"),
		"HU_QTY_1":    countField(in.DeclaredSkids),
		"HU_QTY_2":    countField(counts.Carpets),
		"HU_QTY_3":    countField(counts.Boxes),
		"Pkg_QTY_1":   strconv.Itoa(in.Cartons - counts.Carpets - counts.Boxes),
		"PRO":         in.TrackingNumber,
		"AddInfo7":    in.AddInfo7,
		"AddInfo8":    in.AddInfo8,
	}

	attention, _ := NormalizeAttentionLine(in.Record.ShipToContact)
	fields["BillInstructions"] = attention

	if in.Weight != "" {
		fields["WT_1"] = in.Weight + " LBS."
	} else {
		fields["WT_1"] = ""
	}

	populateOrderNumbers(fields, in.OrderNumbers)

	if profile, ok := in.Carrier.SenderProfile(); ok {
		fields["FromSIDNum"] = profile.SIDNumber
		fields["OrderNum7"] = profile.QuoteLine(in.QuoteNumber)
	}

	if in.Carrier.RequiresQuotePrice() {
		if in.QuotePrice != "" {
			fields["OrderNum8"] = "$" + in.QuotePrice
		} else {
			fields["OrderNum8"] = "$"
		}
	}

	fields["FromName"] = SenderName
	fields["FromAddr"] = SenderAddress
	fields["FromCityStateZip"] = SenderCityPostal
	fields["Prepaid"] = "     X"
	fields["Page_ttl"] = "     1"
	fields["Desc_1"] = DefaultDescription
	fields["Pkg_Type_1"] = "PCES."

	populateDimensionDescriptions(fields, in.Dimensions)

	if in.DeclaredSkids > 0 {
		fields["HU_Type_1"] = "SKIDS"
	} else {
		fields["HU_Type_1"] = ""
	}
	if counts.Carpets > 0 {
		fields["HU_Type_2"] = "CRPTS."
	}
	if counts.Boxes > 0 {
		fields["HU_Type_3"] = "BOXES"
	}

	return fields
}

// populateOrderNumbers lays the canonical order numbers across the
// reference fields. The first field pairs the lead number with the
// second; the rest take pairs in sequence, and a trailing odd number
// stands alone. Numbers beyond the document's capacity are dropped.
func populateOrderNumbers(fields FieldMap, numbers []OrderNumber) {
	if len(numbers) == 0 {
		return
	}

	fields["OrderNum1"] = numbers[0].Value()
	if len(numbers) > 1 {
		fields["OrderNum1"] += ", " + numbers[1].Value()
	}

	pairFields := []string{"OrderNum2", "OrderNum3", "OrderNum4", "OrderNum5", "OrderNum6"}
	for i, field := range pairFields {
		first := i*2 + 2
		second := first + 1

		if len(numbers) <= first {
			break
		}
		if len(numbers) > second {
			fields[field] = numbers[first].Value() + ", " + numbers[second].Value()
		} else {
			fields[field] = numbers[first].Value()
		}
	}
}

// populateDimensionDescriptions chunks the display-form dimension list
// three to a line across the description fields. Placeholder entries
// consume a slot in their chunk but never print; a line whose chunk is
// all placeholders stays absent.
func populateDimensionDescriptions(fields FieldMap, dims []SkidDimension) {
	descFields := []string{"Desc_2", "Desc_3", "Desc_4", "Desc_5", "Desc_6", "Desc_7", "Desc_8"}

	for i := 0; i < len(dims) && i/3 < len(descFields); i += 3 {
		end := i + 3
		if end > len(dims) {
			end = len(dims)
		}

		var printable []string
		for _, d := range dims[i:end] {
			if d.IsPlaceholder() {
				continue
			}
			printable = append(printable, d.Display())
		}

		if len(printable) > 0 {
			fields[descFields[i/3]] = strings.Join(printable, ", ")
		}
	}
}

func countField(count int) string {
	if count > 0 {
		return strconv.Itoa(count)
	}
	return ""
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
