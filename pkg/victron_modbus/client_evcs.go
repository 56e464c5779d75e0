package victron_modbus

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

type EVCSModbusTCPClient struct {
	*ModbusClient
}

func CreateEVCSModbusClient(ip string, port uint, unitId uint8, timeout time.Duration,
	logger *zap.Logger, instrumentation *ModbusInstrument) (EVCSModbusClient, error) {
	client, err := newModbusClient(ip, port, unitId, timeout,
		logger.With(zap.String("target", "evcs"), zap.Uint8("unit", unitId)), instrumentation)
	if err != nil {
		return nil, err
	}
	return &EVCSModbusTCPClient{
		ModbusClient: client,
	}, nil
}

func (evcs *EVCSModbusTCPClient) GetState() (*EVCSState, error) {
	power, err := evcs.readRegister(EVCS_REGISTER_TOTAL_POWER)
	if err != nil {
		return nil, fmt.Errorf("could not read EVCS total power: %w", err)
	}
	start, err := evcs.readRegister(EVCS_REGISTER_CHARGE_START)
	if err != nil {
		return nil, fmt.Errorf("could not read EVCS charge start: %w", err)
	}
	status, err := evcs.readRegister(EVCS_REGISTER_CHARGER_STATUS)
	if err != nil {
		return nil, fmt.Errorf("could not read EVCS charger status: %w", err)
	}
	mode, err := evcs.readRegister(EVCS_REGISTER_CHARGE_MODE)
	if err != nil {
		return nil, fmt.Errorf("could not read EVCS charge mode: %w", err)
	}

	return &EVCSState{
		TotalPowerWatt: power,
		ChargeStart:    start,
		ChargerStatus:  status,
		ChargeMode:     mode,
	}, nil
}

func (evcs *EVCSModbusTCPClient) SetChargeStart(start uint16) error {
	if err := evcs.writeRegister(EVCS_REGISTER_CHARGE_START, start); err != nil {
		return fmt.Errorf("could not set EVCS charge start value to %d: %w", start, err)
	}
	return nil
}

func (evcs *EVCSModbusTCPClient) SetChargeMode(mode uint16) error {
	if err := evcs.writeRegister(EVCS_REGISTER_CHARGE_MODE, mode); err != nil {
		return fmt.Errorf("could not set EVCS charge mode to %d: %w", mode, err)
	}
	return nil
}

// ensure interface compliance
var _ EVCSModbusClient = (*EVCSModbusTCPClient)(nil)
