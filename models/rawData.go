package models

// DataPoint is a single reading inside a RawDataResult. Numeric readings use
// Value, discrete/state readings use TextValue. Value is a pointer so a JSON
// null survives the round trip.
type DataPoint struct {
	Time      string   `json:"time"`
	Value     *float64 `json:"value,omitempty"`
	TextValue string   `json:"textValue,omitempty"`
}

// RawDataResult is the server payload of the per-device raw-data endpoint.
// The client treats it as pass-through: no local mutation or resampling.
type RawDataResult struct {
	DeviceID         string      `json:"deviceId"`
	Field            string      `json:"field"`
	ExternalSensorID string      `json:"externalSensorId,omitempty"`
	FirstTimestamp   string      `json:"firstTimestamp"`
	LastTimestamp    string      `json:"lastTimestamp"`
	Count            int         `json:"count"`
	DataPoints       []DataPoint `json:"dataPoints"`
}

// DeviceResult is the per-device outcome of a multi-device fetch: either the
// parsed payload or the error that device produced.
type DeviceResult struct {
	Data *RawDataResult
	Err  error
}

// MultiDeviceResult maps each requested device identifier to its outcome.
// One device failing does not remove the sibling entries.
type MultiDeviceResult map[string]DeviceResult
