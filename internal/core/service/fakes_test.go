package service

import (
	"context"
	"errors"
	"time"

	"sparkshift/internal/core/domain"
	"sparkshift/internal/core/port"
)

var errLinkDown = errors.New("link down")

// fakeSite serves one excess sample per read and records commands
type fakeSite struct {
	excess []int32
	fail   map[int]bool
	reads  int

	mode          domain.ChargeMode
	chargerStatus domain.ChargerStatus
	chargeStart   domain.ChargeStart

	// station acknowledges commands but keeps its state
	ignoreWrites bool
	startErr     error
	modeErr      error

	startWrites []domain.ChargeStart
	modeWrites  []domain.ChargeMode
}

func (s *fakeSite) UpdateStatus(_ context.Context, status *domain.SystemStatus) error {
	s.reads++
	if s.fail[s.reads] {
		return errLinkDown
	}
	var excess int32
	if len(s.excess) > 0 {
		excess = s.excess[(s.reads-1)%len(s.excess)]
	}
	*status = domain.SystemStatus{
		PowerBattery:  excess,
		SoCBattery:    50,
		SoCEV:         domain.SoCUnknown,
		ChargeStart:   s.chargeStart,
		ChargerStatus: s.chargerStatus,
		ChargingMode:  s.mode,
	}
	status.UpdateExcess()
	return nil
}

func (s *fakeSite) SetChargeStart(_ context.Context, start domain.ChargeStart) error {
	s.startWrites = append(s.startWrites, start)
	if s.startErr != nil {
		return s.startErr
	}
	if !s.ignoreWrites {
		s.chargeStart = start
	}
	return nil
}

func (s *fakeSite) SetChargeMode(_ context.Context, mode domain.ChargeMode) error {
	s.modeWrites = append(s.modeWrites, mode)
	if s.modeErr != nil {
		return s.modeErr
	}
	if !s.ignoreWrites {
		s.mode = mode
	}
	return nil
}

type recordingObserver struct {
	reports []domain.CycleReport
	err     error
}

func (o *recordingObserver) ObserveCycle(_ context.Context, report domain.CycleReport) error {
	o.reports = append(o.reports, report)
	return o.err
}

var (
	_ port.TelemetrySource = (*fakeSite)(nil)
	_ port.CommandSink     = (*fakeSite)(nil)
	_ port.CycleObserver   = (*recordingObserver)(nil)
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}
