package victron_modbus

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

type GXSystemModbusReader struct {
	*ModbusClient
}

func CreateGXSystemModbusReader(ip string, port uint, unitId uint8, timeout time.Duration,
	logger *zap.Logger, instrumentation *ModbusInstrument) (GXModbusReader, error) {
	client, err := newModbusClient(ip, port, unitId, timeout,
		logger.With(zap.String("target", "gx"), zap.Uint8("unit", unitId)), instrumentation)
	if err != nil {
		return nil, err
	}
	return &GXSystemModbusReader{
		ModbusClient: client,
	}, nil
}

func (reader *GXSystemModbusReader) GetPowerFlow() (*GXPowerFlow, error) {
	pv, err := reader.readRegisters(GX_REGISTER_PV_AC_IN_L1, GX_PHASES)
	if err != nil {
		return nil, fmt.Errorf("could not read GX pv power: %w", err)
	}
	consumption, err := reader.readRegisters(GX_REGISTER_AC_CONSUMPTION_L1, GX_PHASES)
	if err != nil {
		return nil, fmt.Errorf("could not read GX consumption: %w", err)
	}
	grid, err := reader.readRegisters(GX_REGISTER_GRID_L1, GX_PHASES)
	if err != nil {
		return nil, fmt.Errorf("could not read GX grid power: %w", err)
	}
	battery, err := reader.readRegister(GX_REGISTER_BATTERY_POWER)
	if err != nil {
		return nil, fmt.Errorf("could not read GX battery power: %w", err)
	}
	soc, err := reader.readRegister(GX_REGISTER_BATTERY_SOC)
	if err != nil {
		return nil, fmt.Errorf("could not read GX battery soc: %w", err)
	}

	return &GXPowerFlow{
		PVPowerWatt:          sumUint16(pv),
		ConsumptionPowerWatt: sumInt16(consumption),
		GridPowerWatt:        sumInt16(grid),
		BatteryPowerWatt:     int32(int16(battery)),
		BatterySoC:           soc,
	}, nil
}

// ensure interface compliance
var _ GXModbusReader = (*GXSystemModbusReader)(nil)
