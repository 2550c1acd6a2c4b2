package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"SyconApi/auth"
	"SyconApi/config"
	"SyconApi/models"
	"SyconApi/repository"
	"SyconApi/request"
	"SyconApi/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Initialize executor, session, and service
	exec := request.NewExecutor(cfg.ServerURL)
	session := auth.NewSession(exec, cfg.Username, cfg.Password)
	service := services.NewDataService(session, exec)

	if err := session.Authenticate(); err != nil {
		log.Fatalf("Login failed: %v", err)
	}

	if expiresAt, err := session.TokenExpiresAt(); err == nil {
		fmt.Printf("Token expires at %s\n", expiresAt.Format(time.RFC3339))
	}

	valid, err := session.Check()
	if err != nil {
		log.Fatalf("Token check failed: %v", err)
	}
	fmt.Printf("auth/check: valid=%v\n", valid)

	devices, err := service.GetDevices()
	if err != nil {
		log.Fatalf("Listing devices failed: %v", err)
	}
	fmt.Printf("Devices: %d\n", len(devices))

	// Time window (last 24h)
	end := time.Now().UTC().Truncate(time.Second)
	start := end.Add(-24 * time.Hour)

	results, err := service.GetDataFromAllDevices(
		models.FieldTemperatureCelsius,
		start.Format("2006-01-02T15:04:05Z"),
		end.Format("2006-01-02T15:04:05Z"),
		0, 1000, "",
	)
	if err != nil {
		log.Fatalf("Fetching data failed: %v", err)
	}

	var repo repository.Repository
	if cfg.ExportEnabled() {
		influxRepo := repository.NewInfluxRepository(cfg.InfluxDBURL, cfg.InfluxDBToken, cfg.InfluxDBOrg, cfg.InfluxDBBucket)
		defer influxRepo.Close()
		repo = influxRepo
	}

	for deviceID, result := range results {
		if result.Err != nil {
			fmt.Printf("Device %s: error: %v\n", deviceID, result.Err)
			continue
		}
		fmt.Printf("Device %s: %d points between %s and %s\n",
			deviceID, result.Data.Count, result.Data.FirstTimestamp, result.Data.LastTimestamp)

		if repo != nil {
			if err := repo.WriteRawData(context.Background(), result.Data); err != nil {
				log.Printf("Export to InfluxDB failed for device %s: %v", deviceID, err)
			}
		}
	}

	// Optional: renew the bearer before it expires
	if err := session.Renew(); err != nil {
		log.Printf("Renew failed: %v", err)
	}
}
