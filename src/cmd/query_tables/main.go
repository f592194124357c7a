package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simondyates/SpiderRock/src/config"
	"github.com/simondyates/SpiderRock/src/services"
	"github.com/simondyates/SpiderRock/src/utils"
)

var rootCmd = &cobra.Command{
	Use:   "query_tables",
	Short: "Snapshot the venue's trade tables to CSV",
	Long:  `This program dumps the parent execution, broker state and broker detail tables for the configured account into dated CSV snapshots.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		if err := utils.InitEnvironmentVariables(); err != nil {
			log.Fatalf("error initializing environment: %v", err)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("error loading config: %v", err)
		}

		password := os.Getenv("SR_DB_PASSWORD")
		if password == "" {
			fmt.Print("Enter password: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				log.Fatalf("error reading password: %v", err)
			}
			password = string(raw)
		}

		db, err := sqlx.Connect("mysql", cfg.Database.DSN(password))
		if err != nil {
			log.Fatalf("error connecting to database: %v", err)
		}
		defer db.Close()

		written, err := services.DumpTables(context.Background(), db, cfg.Database.Account, cfg.FillDataDir)
		if err != nil {
			log.Fatalf("error dumping tables: %v", err)
		}

		log.Infof("wrote %d snapshot files", len(written))
	},
}

func main() {
	rootCmd.PersistentFlags().StringP("config", "c", "config.yaml", "Path to the yaml config file.")

	cobra.CheckErr(rootCmd.Execute())
}
