package models

// Device is an entry of the account's device listing as returned by
// GET /api/devices. The payload is passed through as-is; identifiers are
// opaque and validated server-side.
type Device struct {
	ID                string   `json:"id"`
	CustomerID        string   `json:"customerId"`
	Fields            []string `json:"fields"`
	ExternalSensorIDs []string `json:"externalSensorIds"`
}
