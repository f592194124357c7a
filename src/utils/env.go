package utils

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const envFilename = ".env"

// InitEnvironmentVariables loads the local .env file when present. Database
// credentials live there rather than in config.yaml.
func InitEnvironmentVariables() error {
	if _, err := os.Stat(envFilename); os.IsNotExist(err) {
		log.Debugf("no %s file found, using process environment", envFilename)
		return nil
	}

	if err := godotenv.Load(envFilename); err != nil {
		return fmt.Errorf("failed to load %s file: %v", envFilename, err)
	}

	return nil
}
