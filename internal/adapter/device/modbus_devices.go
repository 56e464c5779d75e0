package device

import (
	"context"
	"errors"

	"sparkshift/internal/core/domain"
	"sparkshift/internal/core/port"
	"sparkshift/internal/util"
	"sparkshift/pkg/victron_modbus"

	"go.uber.org/zap"
)

// ModbusDevices reads the site telemetry from the GX gateway and the charging
// station, and forwards commands to the station.
type ModbusDevices struct {
	gx     victron_modbus.GXModbusReader
	evcs   victron_modbus.EVCSModbusClient
	logger *zap.Logger
}

func NewModbusDevices(gx victron_modbus.GXModbusReader, evcs victron_modbus.EVCSModbusClient, logger *zap.Logger) *ModbusDevices {
	return &ModbusDevices{
		gx:     gx,
		evcs:   evcs,
		logger: util.ComponentLogger("devices", logger),
	}
}

// Open connects both devices. The gateway is closed again if the station
// cannot be reached.
func (d *ModbusDevices) Open() error {
	if err := d.gx.Open(); err != nil {
		return err
	}
	if err := d.evcs.Open(); err != nil {
		d.gx.Close()
		return err
	}
	d.logger.Info("devices: connected")
	return nil
}

func (d *ModbusDevices) Close() error {
	return errors.Join(d.evcs.Close(), d.gx.Close())
}

// UpdateStatus refreshes status in place. On any read error status is left untouched.
func (d *ModbusDevices) UpdateStatus(ctx context.Context, status *domain.SystemStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pf, err := d.gx.GetPowerFlow()
	if err != nil {
		return err
	}
	st, err := d.evcs.GetState()
	if err != nil {
		return err
	}

	*status = domain.SystemStatus{
		PowerGrid:        pf.GridPowerWatt,
		PowerPV:          pf.PVPowerWatt,
		PowerConsumption: pf.ConsumptionPowerWatt,
		PowerBattery:     pf.BatteryPowerWatt,
		PowerEVCS:        int32(st.TotalPowerWatt),
		SoCBattery:       pf.BatterySoC,
		SoCEV:            domain.SoCUnknown,
		ChargeStart:      domain.ChargeStart(st.ChargeStart),
		ChargerStatus:    domain.ChargerStatus(st.ChargerStatus),
		ChargingMode:     domain.ChargeMode(st.ChargeMode),
	}
	status.UpdateExcess()
	return nil
}

func (d *ModbusDevices) SetChargeStart(ctx context.Context, start domain.ChargeStart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.evcs.SetChargeStart(uint16(start))
}

func (d *ModbusDevices) SetChargeMode(ctx context.Context, mode domain.ChargeMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.evcs.SetChargeMode(uint16(mode))
}

// ensure interface compliance
var (
	_ port.TelemetrySource = (*ModbusDevices)(nil)
	_ port.CommandSink     = (*ModbusDevices)(nil)
)
