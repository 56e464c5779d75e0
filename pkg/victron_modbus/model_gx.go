package victron_modbus

// GXPowerFlow holds the site power flow as reported by the GX system service.
// Phase values are already summed.
type GXPowerFlow struct {
	// AC-coupled PV on the input side
	PVPowerWatt int32
	// AC loads
	ConsumptionPowerWatt int32
	// Positive = import. Negative = export
	GridPowerWatt int32
	// Positive = discharge. Negative = charge
	BatteryPowerWatt int32
	// Battery state of charge (%)
	BatterySoC uint16
}

type GXModbusReader interface {
	Open() error
	Close() error
	GetPowerFlow() (*GXPowerFlow, error)
}
