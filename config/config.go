package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// DefaultServerURL is the production endpoint of the Sycon cloud.
const DefaultServerURL = "https://cloud.sycon.io"

// Config holds the client configuration.
type Config struct {
	ServerURL string
	Username  string
	Password  string

	// Optional InfluxDB export target; export stays disabled when unset.
	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string
}

// ExportEnabled reports whether an InfluxDB export target is configured.
func (c Config) ExportEnabled() bool {
	return c.InfluxDBURL != "" && c.InfluxDBToken != "" && c.InfluxDBOrg != "" && c.InfluxDBBucket != ""
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (Config, error) {
	//load env variables
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on system environment variables")
	}

	cfg := Config{
		ServerURL:      os.Getenv("SYCON_SERVER_URL"),
		Username:       os.Getenv("SYCON_USERNAME"),
		Password:       os.Getenv("SYCON_PASSWORD"),
		InfluxDBURL:    os.Getenv("INFLUXDB_URL"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: os.Getenv("INFLUXDB_BUCKET"),
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.Username == "" || cfg.Password == "" {
		return Config{}, fmt.Errorf("Sycon configuration is incomplete. Please set SYCON_USERNAME and SYCON_PASSWORD environment variables")
	}
	return cfg, nil
}
