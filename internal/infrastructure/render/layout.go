package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldBox places one document value on the form page. Coordinates are
// points from the top-left corner, Y at the text baseline.
type FieldBox struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Size float64 `yaml:"size"`
	Bold bool    `yaml:"bold,omitempty"`
}

// Caption is a fixed piece of form furniture drawn on every document
type Caption struct {
	Text string  `yaml:"text"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Size float64 `yaml:"size"`
	Bold bool    `yaml:"bold,omitempty"`
}

// Rule is a horizontal separator line on the form page
type Rule struct {
	X1    float64 `yaml:"x1"`
	Y     float64 `yaml:"y"`
	X2    float64 `yaml:"x2"`
	Width float64 `yaml:"width"`
}

// TemplateLayout describes where the bill of lading form places its
// values, captions and rules. A partial layout file overrides the
// default box per field and leaves the rest in place.
type TemplateLayout struct {
	Title    string              `yaml:"title"`
	Fields   map[string]FieldBox `yaml:"fields"`
	Captions []Caption           `yaml:"captions,omitempty"`
	Rules    []Rule              `yaml:"rules,omitempty"`
}

// LoadTemplateLayout reads a layout file and overlays it on the default
// layout. Fields named in the file replace the default placement;
// captions and rules replace wholesale when present.
func LoadTemplateLayout(path string) (TemplateLayout, error) {
	layout := DefaultTemplateLayout()

	data, err := os.ReadFile(path)
	if err != nil {
		return TemplateLayout{}, fmt.Errorf("failed to read layout file: %w", err)
	}

	var override TemplateLayout
	if err := yaml.Unmarshal(data, &override); err != nil {
		return TemplateLayout{}, fmt.Errorf("failed to parse layout file: %w", err)
	}

	if override.Title != "" {
		layout.Title = override.Title
	}
	for name, fieldBox := range override.Fields {
		layout.Fields[name] = fieldBox
	}
	if len(override.Captions) > 0 {
		layout.Captions = override.Captions
	}
	if len(override.Rules) > 0 {
		layout.Rules = override.Rules
	}

	return layout, nil
}

// DefaultTemplateLayout returns the built-in straight bill of lading
// form layout
func DefaultTemplateLayout() TemplateLayout {
	fields := map[string]FieldBox{
		"CarrierName": {X: 118, Y: 86, Size: 12, Bold: true},
		"BOLnum":      {X: 492, Y: 80, Size: 10, Bold: true},
		"Date":        {X: 492, Y: 96, Size: 10},
		"PRO":         {X: 492, Y: 112, Size: 10},
		"Page_ttl":    {X: 492, Y: 128, Size: 10},

		"FromName":         {X: 40, Y: 172, Size: 10},
		"FromAddr":         {X: 40, Y: 186, Size: 10},
		"FromCityStateZip": {X: 40, Y: 200, Size: 10},
		"FromSIDNum":       {X: 76, Y: 214, Size: 10},

		"ToName":           {X: 320, Y: 172, Size: 10},
		"ToAddress":        {X: 320, Y: 186, Size: 10},
		"ToCityStateZip":   {X: 320, Y: 200, Size: 10},
		"BillInstructions": {X: 320, Y: 214, Size: 10},

		"OrderNum1": {X: 40, Y: 262, Size: 10},
		"OrderNum2": {X: 40, Y: 276, Size: 10},
		"OrderNum3": {X: 40, Y: 290, Size: 10},
		"OrderNum4": {X: 40, Y: 304, Size: 10},
		"OrderNum5": {X: 40, Y: 318, Size: 10},
		"OrderNum6": {X: 40, Y: 332, Size: 10},
		"OrderNum7": {X: 40, Y: 350, Size: 10, Bold: true},
		"OrderNum8": {X: 40, Y: 364, Size: 10, Bold: true},

		"HU_QTY_1":   {X: 320, Y: 262, Size: 10},
		"HU_Type_1":  {X: 356, Y: 262, Size: 10},
		"HU_QTY_2":   {X: 320, Y: 276, Size: 10},
		"HU_Type_2":  {X: 356, Y: 276, Size: 10},
		"HU_QTY_3":   {X: 320, Y: 290, Size: 10},
		"HU_Type_3":  {X: 356, Y: 290, Size: 10},
		"Pkg_QTY_1":  {X: 432, Y: 262, Size: 10},
		"Pkg_Type_1": {X: 468, Y: 262, Size: 10},
		"WT_1":       {X: 432, Y: 290, Size: 10},

		"Desc_1": {X: 40, Y: 416, Size: 10, Bold: true},
		"Desc_2": {X: 40, Y: 432, Size: 10},
		"Desc_3": {X: 40, Y: 446, Size: 10},
		"Desc_4": {X: 40, Y: 460, Size: 10},
		"Desc_5": {X: 40, Y: 474, Size: 10},
		"Desc_6": {X: 40, Y: 488, Size: 10},
		"Desc_7": {X: 40, Y: 502, Size: 10},
		"Desc_8": {X: 40, Y: 516, Size: 10},

		"Prepaid":  {X: 118, Y: 700, Size: 10, Bold: true},
		"AddInfo7": {X: 40, Y: 728, Size: 10},
		"AddInfo8": {X: 40, Y: 742, Size: 10},
	}

	captions := []Caption{
		{Text: "CARRIER", X: 40, Y: 86, Size: 9, Bold: true},
		{Text: "BOL #", X: 432, Y: 80, Size: 9, Bold: true},
		{Text: "DATE", X: 432, Y: 96, Size: 9, Bold: true},
		{Text: "PRO #", X: 432, Y: 112, Size: 9, Bold: true},
		{Text: "PAGE", X: 432, Y: 128, Size: 9, Bold: true},
		{Text: "SHIP FROM", X: 40, Y: 156, Size: 9, Bold: true},
		{Text: "SID #", X: 40, Y: 214, Size: 9, Bold: true},
		{Text: "SHIP TO", X: 320, Y: 156, Size: 9, Bold: true},
		{Text: "ORDER REFERENCES", X: 40, Y: 246, Size: 9, Bold: true},
		{Text: "HANDLING UNITS", X: 320, Y: 246, Size: 9, Bold: true},
		{Text: "PKGS", X: 432, Y: 246, Size: 9, Bold: true},
		{Text: "WEIGHT", X: 432, Y: 278, Size: 9, Bold: true},
		{Text: "DESCRIPTION OF ARTICLES", X: 40, Y: 400, Size: 9, Bold: true},
		{Text: "FREIGHT CHARGE TERMS", X: 40, Y: 700, Size: 9, Bold: true},
		{Text: "ADDITIONAL INFORMATION", X: 40, Y: 714, Size: 9, Bold: true},
	}

	rules := []Rule{
		{X1: 36, Y: 60, X2: 576, Width: 1.5},
		{X1: 36, Y: 140, X2: 576, Width: 0.75},
		{X1: 36, Y: 230, X2: 576, Width: 0.75},
		{X1: 36, Y: 384, X2: 576, Width: 0.75},
		{X1: 36, Y: 684, X2: 576, Width: 0.75},
	}

	return TemplateLayout{
		Title:    "STRAIGHT BILL OF LADING",
		Fields:   fields,
		Captions: captions,
		Rules:    rules,
	}
}
