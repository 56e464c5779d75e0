package port

import "sparkshift/internal/core/domain"

type ChargeDecisionLogic interface {
	// IsDecisionEpoch reports whether rounds samples span the averaging window.
	IsDecisionEpoch(rounds int64) bool
	Decide(mean int64) domain.Decision
	// ChargeStartCorrection returns the flag to write when the station runs in auto
	// mode and disagrees with the desired flag.
	ChargeStartCorrection(status *domain.SystemStatus, desired domain.ChargeStart) (domain.ChargeStart, bool)
	// ModeCorrection returns the mode to write to take back control of the station.
	ModeCorrection(status *domain.SystemStatus) (domain.ChargeMode, bool)
}
