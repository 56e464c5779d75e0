package victron_modbus

// EVCSState is the raw charging station state. Enumerated values are left
// as register codes; interpretation belongs to the caller.
type EVCSState struct {
	TotalPowerWatt uint16
	ChargeStart    uint16
	ChargerStatus  uint16
	ChargeMode     uint16
}

type EVCSModbusClient interface {
	Open() error
	Close() error
	GetState() (*EVCSState, error)
	SetChargeStart(start uint16) error
	SetChargeMode(mode uint16) error
}
