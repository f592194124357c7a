package main

import (
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simondyates/SpiderRock/src/config"
	"github.com/simondyates/SpiderRock/src/models"
	"github.com/simondyates/SpiderRock/src/services"
)

var rootCmd = &cobra.Command{
	Use:   "export_timeline",
	Short: "Export an order's fill timeline for charting",
	Long:  `This program exports the raw, delta-adjusted and vol fill series of one parent order to CSV for external chart rendering.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		dateStr, err := cmd.Flags().GetString("date")
		if err != nil {
			log.Fatalf("error getting date: %v", err)
		}

		if _, err := time.Parse("20060102", dateStr); err != nil {
			log.Fatalf("error parsing date: %v", err)
		}

		parent, err := cmd.Flags().GetInt64("parent")
		if err != nil {
			log.Fatalf("error getting parent: %v", err)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("error loading config: %v", err)
		}

		loader, err := services.NewTradeLoader(cfg.Timezones.Venue, cfg.Timezones.Local)
		if err != nil {
			log.Fatalf("error creating trade loader: %v", err)
		}

		tradeFile := filepath.Join(cfg.FillDataDir, fmt.Sprintf("Trades%s.csv", dateStr))
		fills, err := loader.LoadTrades(tradeFile)
		if err != nil {
			log.Fatalf("error loading trades: %v", err)
		}

		var parentFills []models.Fill
		for _, f := range fills {
			if f.BaseParentNumber == parent {
				parentFills = append(parentFills, f)
			}
		}

		timeline, err := services.BuildTimeline(parentFills)
		if err != nil {
			log.Fatalf("error building timeline: %v", err)
		}

		written, err := services.ExportTimeline(cfg.TCADir, timeline)
		if err != nil {
			log.Fatalf("error exporting timeline: %v", err)
		}

		for _, path := range written {
			log.Infof("wrote %s", path)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringP("date", "d", "", "Trade date of the snapshot to read, formatted YYYYMMDD. This flag is required.")
	rootCmd.PersistentFlags().Int64P("parent", "p", 0, "Base parent number of the order to export. This flag is required.")
	rootCmd.PersistentFlags().StringP("config", "c", "config.yaml", "Path to the yaml config file.")

	rootCmd.MarkPersistentFlagRequired("date")
	rootCmd.MarkPersistentFlagRequired("parent")

	cobra.CheckErr(rootCmd.Execute())
}
