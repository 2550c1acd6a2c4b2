package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"SyconApi/models"
)

// Repository exports fetched readings to a time-series store.
type Repository interface {
	WriteRawData(ctx context.Context, result *models.RawDataResult) error
	Close()
}

// InfluxRepository writes raw-data payloads retrieved from the cloud API
// into an InfluxDB bucket, one point per data point.
type InfluxRepository struct {
	client influxdb2.Client
	org    string
	bucket string
}

// NewInfluxRepository creates a new InfluxRepository.
func NewInfluxRepository(url, token, org, bucket string) *InfluxRepository {
	client := influxdb2.NewClient(url, token)
	return &InfluxRepository{
		client: client,
		org:    org,
		bucket: bucket,
	}
}

// Close releases the underlying InfluxDB client.
func (r *InfluxRepository) Close() {
	r.client.Close()
}

// WriteRawData writes every data point of the result to InfluxDB. The field
// name becomes the measurement, the device (and external sensor, when set)
// become tags, and the point keeps the timestamp reported by the cloud.
func (r *InfluxRepository) WriteRawData(ctx context.Context, result *models.RawDataResult) error {
	writeAPI := r.client.WriteAPIBlocking(r.org, r.bucket)

	points := RawDataPoints(result)
	for _, p := range points {
		if err := writeAPI.WritePoint(ctx, p); err != nil {
			return fmt.Errorf("error writing to InfluxDB: %w", err)
		}
	}

	log.Printf("Wrote %d points to InfluxDB, bucket: %s, device: %s, field: %s\n",
		len(points), r.bucket, result.DeviceID, result.Field)
	return nil
}

// RawDataPoints converts a raw-data payload into InfluxDB points. Points
// whose timestamp does not parse are dropped with a log line; numeric
// readings map to a "value" field and textual ones to a "text" field.
func RawDataPoints(result *models.RawDataResult) []*write.Point {
	tags := map[string]string{"device_id": result.DeviceID}
	if result.ExternalSensorID != "" {
		tags["external_sensor_id"] = result.ExternalSensorID
	}

	points := make([]*write.Point, 0, len(result.DataPoints))
	for _, dp := range result.DataPoints {
		ts, err := time.Parse(time.RFC3339, dp.Time)
		if err != nil {
			log.Printf("Error parsing timestamp '%s', skipping point: %v\n", dp.Time, err)
			continue
		}

		fields := make(map[string]interface{})
		if dp.Value != nil {
			fields["value"] = *dp.Value
		} else if dp.TextValue != "" {
			fields["text"] = dp.TextValue
		} else {
			continue
		}

		points = append(points, influxdb2.NewPoint(result.Field, tags, fields, ts))
	}
	return points
}
