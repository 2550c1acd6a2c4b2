package validation

import (
	"fmt"
	"regexp"

	"SyconApi/models"
)

// MaxBatchLimit is the largest number of points the raw-data endpoint
// returns in one request.
const MaxBatchLimit = 10000

// Dates must be UTC ISO-8601 instants, e.g. 2024-05-01T12:30:00Z or
// 2024-05-01T12:30:00.250Z. Offset forms (+02:00) are rejected; the API
// only accepts the Z suffix.
var isoInstantRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z$`)

// ValidateDate checks that value is a well-formed UTC ISO-8601 instant.
// Validation is purely textual; start/end ordering is left to the server.
func ValidateDate(value string) error {
	if !isoInstantRe.MatchString(value) {
		return models.NewAPIError(models.ErrorCodeInvalidParameters,
			fmt.Sprintf("date %q is not well formatted, use ISO-8601 instant format: YYYY-MM-DDTHH:MM:SS[.MS]Z", value), 0)
	}
	return nil
}

// ValidateLimits checks the head/tail truncation selectors. Zero means
// absent: exactly one of the two must be set, and it must be in
// [1, MaxBatchLimit].
func ValidateLimits(headLimit, tailLimit int) error {
	if headLimit == 0 && tailLimit == 0 {
		return models.NewAPIError(models.ErrorCodeMissingParameters,
			"either headLimit or tailLimit is required", 0)
	}
	if headLimit != 0 && tailLimit != 0 {
		return models.NewAPIError(models.ErrorCodeInvalidParameters,
			"either headLimit or tailLimit is required, not both", 0)
	}
	limit := headLimit
	if tailLimit != 0 {
		limit = tailLimit
	}
	if limit < 1 || limit > MaxBatchLimit {
		return models.NewAPIError(models.ErrorCodeInvalidParameters,
			fmt.Sprintf("limit %d is out of range [1, %d]", limit, MaxBatchLimit), 0)
	}
	return nil
}

// ValidateField checks membership in the DataField enumeration.
func ValidateField(field models.DataField) error {
	if !field.IsValid() {
		return models.NewAPIError(models.ErrorCodeInvalidParameters,
			fmt.Sprintf("unknown data field %q", field), 0)
	}
	return nil
}

// ValidateDeviceID rejects empty identifiers. Anything else is opaque to the
// client; the server answers 404 for unknown devices.
func ValidateDeviceID(deviceID string) error {
	if deviceID == "" {
		return models.NewAPIError(models.ErrorCodeInvalidParameters,
			"deviceId cannot be empty", 0)
	}
	return nil
}
