package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SyconApi/models"
)

func TestValidateDate(t *testing.T) {
	valid := []string{
		"2024-05-01T12:30:00Z",
		"2024-05-01T12:30:00.5Z",
		"2024-05-01T12:30:00.250Z",
		"1999-12-31T23:59:59Z",
	}
	for _, date := range valid {
		assert.NoError(t, ValidateDate(date), date)
	}

	invalid := []string{
		"",
		"2024-05-01",                     // missing time
		"2024-05-01T12:30:00",            // missing Z
		"2024-05-01T12:30:00+02:00",      // offset form
		"2024-05-01 12:30:00Z",           // space separator
		"24-05-01T12:30:00Z",             // short year
		"2024-05-01T12:30Z",              // missing seconds
		"garbage",
	}
	for _, date := range invalid {
		err := ValidateDate(date)
		require.Error(t, err, date)
		assert.True(t, models.IsCode(err, models.ErrorCodeInvalidParameters), date)
	}
}

func TestValidateLimits(t *testing.T) {
	tests := []struct {
		name      string
		headLimit int
		tailLimit int
		wantCode  models.ErrorCode
	}{
		{"head only", 1, 0, ""},
		{"tail only", 0, 10000, ""},
		{"both absent", 0, 0, models.ErrorCodeMissingParameters},
		{"both present", 10, 10, models.ErrorCodeInvalidParameters},
		{"head too large", 10001, 0, models.ErrorCodeInvalidParameters},
		{"tail too large", 0, 10001, models.ErrorCodeInvalidParameters},
		{"negative head", -1, 0, models.ErrorCodeInvalidParameters},
		{"negative tail", 0, -5, models.ErrorCodeInvalidParameters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLimits(tt.headLimit, tt.tailLimit)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, models.IsCode(err, tt.wantCode))
		})
	}
}

func TestValidateField(t *testing.T) {
	assert.NoError(t, ValidateField(models.FieldTemperatureCelsius))
	assert.NoError(t, ValidateField(models.FieldExtVoltageVolt))

	err := ValidateField(models.DataField("WIND_SPEED_MS"))
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrorCodeInvalidParameters))
}

func TestValidateDeviceID(t *testing.T) {
	assert.NoError(t, ValidateDeviceID("12345"))

	err := ValidateDeviceID("")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.ErrorCodeInvalidParameters))
}
