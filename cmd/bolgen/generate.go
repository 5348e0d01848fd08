package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jblick1327/shipping/internal/application"
)

var generateFlags struct {
	carrierOption int
	carrierName   string
	orderNumbers  []string
	dimensions    []string
	declaredSkids int
	cartons       int
	tracking      string
	quoteNumber   string
	quotePrice    string
	weight        string
	delivery      []string
	shipDate      string
	asJSON        bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the BOL and labels for one shipment",
	Long: `Generate runs the full pipeline once: validate the inputs under the
selected carrier's rules, fetch the order header, render the Bill of
Lading and label PDFs, and write the shipping data back per order.

Carrier options: 1=KPS 2=PARCEL PRO 3=FF 4=NFF 5=FF LOGISTICS 6=CRR
7=custom (requires --carrier-name).

Dimensions are LxWxH or a bare 6-digit string, optionally suffixed
with the unit kind, e.g. --dim 482440 --dim "30x20x10:carpet".`,
	RunE: runGenerate,
}

func init() {
	flags := generateCmd.Flags()
	flags.IntVar(&generateFlags.carrierOption, "carrier", 0, "carrier menu option (1-7)")
	flags.StringVar(&generateFlags.carrierName, "carrier-name", "", "carrier name for option 7")
	flags.StringArrayVar(&generateFlags.orderNumbers, "order", nil, "order number (repeatable)")
	flags.StringArrayVar(&generateFlags.dimensions, "dim", nil, "dimension entry, optionally :carpet or :box (repeatable)")
	flags.IntVar(&generateFlags.declaredSkids, "skids", -1, "declared skid count")
	flags.IntVar(&generateFlags.cartons, "cartons", 0, "total carton count")
	flags.StringVar(&generateFlags.tracking, "tracking", "", "tracking / PRO number")
	flags.StringVar(&generateFlags.quoteNumber, "quote-number", "", "carrier quote number")
	flags.StringVar(&generateFlags.quotePrice, "quote-price", "", "carrier quote price")
	flags.StringVar(&generateFlags.weight, "weight", "", "shipment weight in pounds")
	flags.StringArrayVar(&generateFlags.delivery, "delivery", nil, "delivery service (Inside, Tailgate, Appointment, 2-Man, White Glove)")
	flags.StringVar(&generateFlags.shipDate, "ship-date", "", "ship date as YYYY-MM-DD (default today)")
	flags.BoolVar(&generateFlags.asJSON, "json", false, "print the run report as JSON")

	_ = generateCmd.MarkFlagRequired("carrier")
	_ = generateCmd.MarkFlagRequired("order")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	command, err := buildGenerateCommand()
	if err != nil {
		return err
	}

	report, err := rt.service.Generate(cmd.Context(), command)
	if err != nil {
		return err
	}

	if generateFlags.asJSON {
		return printJSON(report)
	}

	printReport(report)
	return nil
}

func buildGenerateCommand() (application.GenerateBOLCommand, error) {
	command := application.GenerateBOLCommand{
		CarrierOption:        generateFlags.carrierOption,
		CustomCarrierName:    generateFlags.carrierName,
		OrderNumbers:         generateFlags.orderNumbers,
		Cartons:              generateFlags.cartons,
		TrackingNumber:       generateFlags.tracking,
		QuoteNumber:          generateFlags.quoteNumber,
		QuotePrice:           generateFlags.quotePrice,
		Weight:               generateFlags.weight,
		DeliveryInstructions: generateFlags.delivery,
	}

	for _, raw := range generateFlags.dimensions {
		command.Dimensions = append(command.Dimensions, parseDimensionFlag(raw))
	}

	if generateFlags.declaredSkids >= 0 {
		declared := generateFlags.declaredSkids
		command.DeclaredSkids = &declared
	}

	if generateFlags.shipDate != "" {
		parsed, err := time.Parse("2006-01-02", generateFlags.shipDate)
		if err != nil {
			return application.GenerateBOLCommand{}, fmt.Errorf("invalid ship date %q: use YYYY-MM-DD", generateFlags.shipDate)
		}
		command.ShipDate = &parsed
	}

	return command, nil
}

// parseDimensionFlag splits an optional trailing unit-kind marker off a
// dimension flag value. Only a recognized kind is treated as a marker,
// so raw text containing colons still passes through.
func parseDimensionFlag(raw string) application.DimensionEntry {
	if idx := strings.LastIndex(raw, ":"); idx >= 0 {
		switch kind := raw[idx+1:]; kind {
		case "skid", "carpet", "box":
			return application.DimensionEntry{Value: raw[:idx], Kind: kind}
		}
	}
	return application.DimensionEntry{Value: raw}
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func printReport(report *application.RunReportDTO) {
	fmt.Printf("Run %s: %s\n", report.RunID, report.Status)
	fmt.Printf("  Shipment:  %s (%s)\n", report.ShipmentID, report.CarrierName)
	fmt.Printf("  BOL:       %s\n", report.BOLPath)
	fmt.Printf("  Labels:    %s (%d pages)\n", report.LabelPath, report.LabelPages)
	fmt.Printf("  Orders:    %s\n", strings.Join(report.OrderNumbers, ", "))
	if len(report.FailedOrders) > 0 {
		fmt.Printf("  WARNING: shipment update failed for: %s\n", strings.Join(report.FailedOrders, ", "))
	}
}
