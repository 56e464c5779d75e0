package victron_modbus

import (
	"errors"
	"fmt"
	"time"

	"github.com/simonvetter/modbus"
	"go.uber.org/zap"
)

// ModbusClient wraps a Modbus TCP client bound to a single unit id.
// After a transport failure the connection is dropped and reopened
// before the next request.
type ModbusClient struct {
	client     *modbus.ModbusClient
	url        string
	unitId     uint8
	instrument []ModbusInstrument
	broken     bool
}

type ModbusInstrument struct {
	RecordTime func(fnName string, readTime time.Duration)
}

func newModbusClient(ip string, port uint, unitId uint8, timeout time.Duration,
	logger *zap.Logger, instrumentation *ModbusInstrument) (*ModbusClient, error) {
	url := fmt.Sprintf("tcp://%s:%d", ip, port)
	client, err := modbus.NewClient(&modbus.ClientConfiguration{
		URL:     url,
		Timeout: timeout,
	})
	if err != nil {
		return nil, err
	}
	if err = client.SetUnitId(unitId); err != nil {
		return nil, err
	}

	var inst []ModbusInstrument
	if logInst := traceLoggerInstrumentation(logger); logInst != nil {
		inst = append(inst, *logInst)
	}
	if instrumentation != nil {
		inst = append(inst, *instrumentation)
	}

	return &ModbusClient{
		client:     client,
		url:        url,
		unitId:     unitId,
		instrument: inst,
	}, nil
}

func (c *ModbusClient) Open() error {
	if err := c.client.Open(); err != nil {
		return fmt.Errorf("connection failed to %s: %w", c.url, err)
	}
	c.broken = false
	return nil
}

func (c *ModbusClient) Close() error {
	return c.client.Close()
}

// recover reopens the link if the previous request failed at transport level.
func (c *ModbusClient) recover() error {
	if !c.broken {
		return nil
	}
	_ = c.client.Close()
	return c.Open()
}

// track flags the link for reconnection unless err is a Modbus exception
// reported by a device that is otherwise reachable.
func (c *ModbusClient) track(err error) error {
	if err != nil && !isModbusException(err) {
		c.broken = true
	}
	return err
}

func (c *ModbusClient) readRegisters(addr uint16, quantity uint16) ([]uint16, error) {
	defer RecordTimer("ReadRegisters", c.instrument)()
	if err := c.recover(); err != nil {
		return nil, err
	}
	regs, err := c.client.ReadRegisters(addr, quantity, modbus.HOLDING_REGISTER)
	return regs, c.track(err)
}

func (c *ModbusClient) readRegister(addr uint16) (uint16, error) {
	defer RecordTimer("ReadRegister", c.instrument)()
	if err := c.recover(); err != nil {
		return 0, err
	}
	reg, err := c.client.ReadRegister(addr, modbus.HOLDING_REGISTER)
	return reg, c.track(err)
}

func (c *ModbusClient) writeRegister(addr uint16, value uint16) error {
	defer RecordTimer("WriteRegister", c.instrument)()
	if err := c.recover(); err != nil {
		return err
	}
	return c.track(c.client.WriteRegister(addr, value))
}

// sumUint16 adds per-phase unsigned readings.
func sumUint16(regs []uint16) int32 {
	var total int32
	for _, r := range regs {
		total += int32(r)
	}
	return total
}

// sumInt16 adds per-phase readings encoded as two's complement.
func sumInt16(regs []uint16) int32 {
	var total int32
	for _, r := range regs {
		total += int32(int16(r))
	}
	return total
}

func isModbusException(err error) bool {
	for _, exc := range []error{
		modbus.ErrIllegalFunction,
		modbus.ErrIllegalDataAddress,
		modbus.ErrIllegalDataValue,
		modbus.ErrServerDeviceFailure,
		modbus.ErrServerDeviceBusy,
		modbus.ErrGWPathUnavailable,
		modbus.ErrGWTargetFailedToRespond,
	} {
		if errors.Is(err, exc) {
			return true
		}
	}
	return false
}

func traceLoggerInstrumentation(logger *zap.Logger) *ModbusInstrument {
	if logger == nil {
		return nil
	}
	return &ModbusInstrument{
		RecordTime: func(fnName string, readTime time.Duration) {
			logger.Debug("modbus call", zap.String("fn", fnName), zap.Int64("millis", readTime.Milliseconds()))
		},
	}
}

func RecordTimer(name string, instrument []ModbusInstrument) func() {
	if instrument == nil {
		return func() {}
	}

	start := time.Now()
	return func() {
		duration := time.Since(start)
		for i := range instrument {
			instrument[i].RecordTime(name, duration)
		}
	}
}
