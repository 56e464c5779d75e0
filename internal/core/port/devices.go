package port

import (
	"context"

	"sparkshift/internal/core/domain"
)

// TelemetrySource refreshes a status snapshot from the gateway and the charging station.
// On error the snapshot must be left untouched.
type TelemetrySource interface {
	UpdateStatus(ctx context.Context, status *domain.SystemStatus) error
}

type CommandSink interface {
	SetChargeStart(ctx context.Context, start domain.ChargeStart) error
	SetChargeMode(ctx context.Context, mode domain.ChargeMode) error
}

// CycleObserver is notified after every successful control cycle.
type CycleObserver interface {
	ObserveCycle(ctx context.Context, report domain.CycleReport) error
}
