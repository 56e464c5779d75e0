package victron_modbus

func CreateTestGXModbusReader() (GXModbusReader, error) {
	return &TestGXModbusReader{}, nil
}

func CreateTestEVCSModbusClient() (EVCSModbusClient, error) {
	return &TestEVCSModbusClient{}, nil
}

// GX

// TestGXModbusReader serves PowerFlow when set, a fixed sample otherwise.
type TestGXModbusReader struct {
	PowerFlow *GXPowerFlow
	Err       error
}

func (reader *TestGXModbusReader) Open() error {
	return nil
}

func (reader *TestGXModbusReader) Close() error {
	return nil
}

func (reader *TestGXModbusReader) GetPowerFlow() (*GXPowerFlow, error) {
	if reader.Err != nil {
		return nil, reader.Err
	}
	if reader.PowerFlow != nil {
		pf := *reader.PowerFlow
		return &pf, nil
	}
	return &GXPowerFlow{
		PVPowerWatt:          3120,
		ConsumptionPowerWatt: 840,
		GridPowerWatt:        -150,
		BatteryPowerWatt:     -2100,
		BatterySoC:           76,
	}, nil
}

// EVCS

// TestEVCSModbusClient keeps register state in memory so writes are
// visible on the next GetState.
type TestEVCSModbusClient struct {
	State    EVCSState
	Err      error
	WriteErr error

	StartWrites []uint16
	ModeWrites  []uint16
}

func (evcs *TestEVCSModbusClient) Open() error {
	return nil
}

func (evcs *TestEVCSModbusClient) Close() error {
	return nil
}

func (evcs *TestEVCSModbusClient) GetState() (*EVCSState, error) {
	if evcs.Err != nil {
		return nil, evcs.Err
	}
	st := evcs.State
	return &st, nil
}

func (evcs *TestEVCSModbusClient) SetChargeStart(start uint16) error {
	evcs.StartWrites = append(evcs.StartWrites, start)
	if evcs.WriteErr != nil {
		return evcs.WriteErr
	}
	evcs.State.ChargeStart = start
	return nil
}

func (evcs *TestEVCSModbusClient) SetChargeMode(mode uint16) error {
	evcs.ModeWrites = append(evcs.ModeWrites, mode)
	if evcs.WriteErr != nil {
		return evcs.WriteErr
	}
	evcs.State.ChargeMode = mode
	return nil
}
