package service

import (
	"testing"
	"time"

	"sparkshift/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newLogic(threshold int32) *DefaultChargeDecisionLogic {
	return &DefaultChargeDecisionLogic{
		PowerExcessMin:  threshold,
		AveragingWindow: 60 * time.Second,
		PollInterval:    10 * time.Second,
		Logger:          zap.NewNop(),
	}
}

func TestThresholdIsExclusive(t *testing.T) {

	logic := newLogic(1000)
	assert.Equal(t, domain.ChargingStop, logic.Decide(1000).ChargeStart, "equal mean does not start")
	assert.Equal(t, domain.ChargingStart, logic.Decide(1001).ChargeStart)
	assert.Equal(t, domain.ChargingStop, logic.Decide(999).ChargeStart)

	d := logic.Decide(1500)
	assert.EqualValues(t, 1500, d.Mean)
	assert.EqualValues(t, 1000, d.Threshold)
}

func TestNegativeThreshold(t *testing.T) {

	logic := newLogic(-200)
	assert.Equal(t, domain.ChargingStart, logic.Decide(-199).ChargeStart)
	assert.Equal(t, domain.ChargingStop, logic.Decide(-200).ChargeStart)
}

func TestDecisionEpoch(t *testing.T) {

	logic := newLogic(1000)
	assert.False(t, logic.IsDecisionEpoch(5))
	assert.True(t, logic.IsDecisionEpoch(6))
	assert.True(t, logic.IsDecisionEpoch(7))

	// window not a multiple of the poll interval
	logic.AveragingWindow = 25 * time.Second
	assert.False(t, logic.IsDecisionEpoch(2))
	assert.True(t, logic.IsDecisionEpoch(3))
}

func TestChargeStartCorrection(t *testing.T) {

	logic := newLogic(1000)

	st := &domain.SystemStatus{ChargingMode: domain.ChargeModeAuto, ChargeStart: domain.ChargingStop}
	v, ok := logic.ChargeStartCorrection(st, domain.ChargingStart)
	assert.True(t, ok)
	assert.Equal(t, domain.ChargingStart, v)

	_, ok = logic.ChargeStartCorrection(st, domain.ChargingStop)
	assert.False(t, ok, "already matching")

	for _, mode := range []domain.ChargeMode{domain.ChargeModeManual, domain.ChargeModeScheduled} {
		st.ChargingMode = mode
		_, ok = logic.ChargeStartCorrection(st, domain.ChargingStart)
		assert.False(t, ok, "only auto mode is driven, got %s", mode)
	}
}

func TestModeCorrection(t *testing.T) {

	logic := newLogic(1000)

	st := &domain.SystemStatus{ChargingMode: domain.ChargeModeManual, ChargerStatus: domain.ChargerStatusDisconnected}
	mode, ok := logic.ModeCorrection(st)
	assert.True(t, ok)
	assert.Equal(t, domain.ChargeModeAuto, mode)

	st.ChargerStatus = domain.ChargerStatusConnected
	_, ok = logic.ModeCorrection(st)
	assert.False(t, ok)

	st.ChargingMode = domain.ChargeModeAuto
	st.ChargerStatus = domain.ChargerStatusDisconnected
	_, ok = logic.ModeCorrection(st)
	assert.False(t, ok, "auto mode needs no correction")
}
