package main

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simondyates/SpiderRock/src/config"
	"github.com/simondyates/SpiderRock/src/services"
)

var rootCmd = &cobra.Command{
	Use:   "process_tca",
	Short: "Compute TCA reports for a trade date",
	Long:  `This program computes transaction cost analysis reports for every parent order in a day's fill snapshot and writes one CSV per order.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		dateStr, err := cmd.Flags().GetString("date")
		if err != nil {
			log.Fatalf("error getting date: %v", err)
		}

		dt, err := time.Parse("20060102", dateStr)
		if err != nil {
			log.Fatalf("error parsing date: %v", err)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("error loading config: %v", err)
		}

		loader, err := services.NewTradeLoader(cfg.Timezones.Venue, cfg.Timezones.Local)
		if err != nil {
			log.Fatalf("error creating trade loader: %v", err)
		}

		processor := services.NewProcessor(loader, cfg.FillDataDir, cfg.TCADir, cfg.BrokerLookaheadDays)

		written, err := processor.ProcessDay(dt)
		if err != nil {
			log.Fatalf("error processing day: %v", err)
		}

		log.Infof("wrote %d TCA reports for %s", written, dateStr)
	},
}

func main() {
	rootCmd.PersistentFlags().StringP("date", "d", "", "Trade date to process, formatted YYYYMMDD. This flag is required.")
	rootCmd.PersistentFlags().StringP("config", "c", "config.yaml", "Path to the yaml config file.")

	rootCmd.MarkPersistentFlagRequired("date")

	cobra.CheckErr(rootCmd.Execute())
}
