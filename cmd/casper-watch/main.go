package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"casper-stock-watcher/internal/config"
	"casper-stock-watcher/internal/logging"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "casper-watch",
	Short: "Track Hyundai Casper showroom stock across delivery regions",
	Long: `casper-watch polls the Casper online showroom for in-stock vehicles
across the full delivery-region hierarchy, reports what it finds, and in
watch mode announces changes between polls.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.LoadConfig()
		logging.Setup(cfg.LogLevel)
	},
}

func main() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(fetchRegionsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
