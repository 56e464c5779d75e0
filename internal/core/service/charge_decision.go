package service

import (
	"time"

	"sparkshift/internal/core/domain"
	"sparkshift/internal/core/port"

	"go.uber.org/zap"
)

type DefaultChargeDecisionLogic struct {
	PowerExcessMin  int32
	AveragingWindow time.Duration
	PollInterval    time.Duration
	Logger          *zap.Logger
}

func (cfg *DefaultChargeDecisionLogic) IsDecisionEpoch(rounds int64) bool {
	return time.Duration(rounds)*cfg.PollInterval >= cfg.AveragingWindow
}

func (cfg *DefaultChargeDecisionLogic) Decide(mean int64) domain.Decision {
	d := domain.Decision{
		Mean:        mean,
		Threshold:   cfg.PowerExcessMin,
		ChargeStart: domain.ChargingStop,
	}
	// threshold is exclusive: a mean equal to it does not start charging
	if mean > int64(cfg.PowerExcessMin) {
		d.ChargeStart = domain.ChargingStart
	}
	cfg.Logger.Debug(d.Reason(), zap.Int64("mean", mean), zap.Int32("threshold", cfg.PowerExcessMin))
	return d
}

func (cfg *DefaultChargeDecisionLogic) ChargeStartCorrection(status *domain.SystemStatus, desired domain.ChargeStart) (domain.ChargeStart, bool) {
	if status.ChargingMode == domain.ChargeModeAuto && status.ChargeStart != desired {
		return desired, true
	}
	return status.ChargeStart, false
}

func (cfg *DefaultChargeDecisionLogic) ModeCorrection(status *domain.SystemStatus) (domain.ChargeMode, bool) {
	// a vehicle unplugged while in manual mode hands control back to auto
	if status.ChargingMode == domain.ChargeModeManual && status.ChargerStatus == domain.ChargerStatusDisconnected {
		return domain.ChargeModeAuto, true
	}
	return status.ChargingMode, false
}

// ensure interface compliance
var _ port.ChargeDecisionLogic = (*DefaultChargeDecisionLogic)(nil)
