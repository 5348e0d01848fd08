package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jblick1327/shipping/internal/application"
)

var ordersJSON bool

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Inspect the order database",
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <order-number>",
	Short: "Look up the shipment header for an order number",
	Long: `Get fetches the ship-to header the BOL would use for the given
order number, with the city and attention line normalized for
display. Useful to verify the address before generating.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrdersGet,
}

func init() {
	ordersGetCmd.Flags().BoolVar(&ordersJSON, "json", false, "print the record as JSON")
	ordersCmd.AddCommand(ordersGetCmd)
}

func runOrdersGet(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	record, err := rt.service.GetOrder(cmd.Context(), application.GetOrderQuery{OrderNumber: args[0]})
	if err != nil {
		return err
	}

	if ordersJSON {
		return printJSON(record)
	}

	fmt.Printf("Shipment:  %s\n", record.ShipmentID)
	fmt.Printf("Ship to:   %s\n", record.ShipToName)
	fmt.Printf("           %s\n", record.ShipToAddress)
	fmt.Printf("           %s %s\n", record.CityProvince, record.PostalCode)
	fmt.Printf("Attention: %s\n", record.AttentionLine)
	return nil
}
