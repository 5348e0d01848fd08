// bolgen produces Bill of Lading and shipping-label PDFs for freight
// shipments and writes the shipping data back to the order database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "bolgen",
	Short: "Bill of Lading and shipping label generator",
	Long: `bolgen generates the Bill of Lading PDF and matching per-unit
shipping labels for one freight shipment, then records the shipping
data against each order number.

Run one shipment from the command line with 'generate', start the
HTTP API for the shipping form with 'serve', or inspect the order
database and recent runs with 'orders' and 'history'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML config file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
