package models

// DataField is a sensor measurement kind recognized by the cloud API. The
// value doubles as the path segment of the raw-data endpoint and as a
// cache-key component, so it must stay a plain comparable string.
type DataField string

const (
	FieldAccelerationXMS2        DataField = "ACCELERATION_X_MS2"
	FieldAccelerationYMS2        DataField = "ACCELERATION_Y_MS2"
	FieldAccelerationZMS2        DataField = "ACCELERATION_Z_MS2"
	FieldAccelerationMagMaxMS2   DataField = "ACCELERATION_MAG_MAX_MS2"
	FieldAccelerationMagMeanMS2  DataField = "ACCELERATION_MAG_MEAN_MS2"
	FieldAccelerationMagVarMS2   DataField = "ACCELERATION_MAG_VARIANCE_MS2"
	FieldAirQualityIndex         DataField = "AIR_QUALITY_INDEX"
	FieldCO2PPM                  DataField = "CO2_PPM"
	FieldHumidityPercent         DataField = "HUMIDITY_PERCENT"
	FieldPressureHPA             DataField = "PRESSURE_HPA"
	FieldTemperatureCelsius      DataField = "TEMPERATURE_CELSIUS"
	FieldVolatileOrganicCompound DataField = "VOLATILE_ORGANIC_COMPOUND_PPM"
	FieldExtCurrentAmp           DataField = "EXT_CURRENT_AMP"
	FieldExtElectricalPowerWatt  DataField = "EXT_ELECTRICAL_POWER_WATT"
	FieldExtTemperatureCelsius   DataField = "EXT_TEMPERATURE_CELSIUS"
	FieldExtVoltageVolt          DataField = "EXT_VOLTAGE_VOLT"
	FieldExtHumidityPercent      DataField = "EXT_HUMIDITY_PERCENT"
)

var knownFields = map[DataField]struct{}{
	FieldAccelerationXMS2:        {},
	FieldAccelerationYMS2:        {},
	FieldAccelerationZMS2:        {},
	FieldAccelerationMagMaxMS2:   {},
	FieldAccelerationMagMeanMS2:  {},
	FieldAccelerationMagVarMS2:   {},
	FieldAirQualityIndex:         {},
	FieldCO2PPM:                  {},
	FieldHumidityPercent:         {},
	FieldPressureHPA:             {},
	FieldTemperatureCelsius:      {},
	FieldVolatileOrganicCompound: {},
	FieldExtCurrentAmp:           {},
	FieldExtElectricalPowerWatt:  {},
	FieldExtTemperatureCelsius:   {},
	FieldExtVoltageVolt:          {},
	FieldExtHumidityPercent:      {},
}

// IsValid reports whether the field is a member of the closed enumeration.
func (f DataField) IsValid() bool {
	_, ok := knownFields[f]
	return ok
}

func (f DataField) String() string {
	return string(f)
}
