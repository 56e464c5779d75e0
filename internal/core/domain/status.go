package domain

import (
	"fmt"
	"time"
)

// SoCUnknown is reported for the vehicle when the station does not expose it
const SoCUnknown uint16 = 999

// SystemStatus is the latest telemetry snapshot of the site and the charging station.
// All powers are in watts.
type SystemStatus struct {
	PowerGrid        int32
	PowerPV          int32
	PowerConsumption int32
	// Positive = discharge
	PowerBattery int32
	PowerEVCS    int32
	PowerExcess  int32

	SoCBattery uint16
	SoCEV      uint16

	ChargeStart   ChargeStart
	ChargerStatus ChargerStatus
	ChargingMode  ChargeMode
}

// UpdateExcess derives the excess power from the current readings.
func (s *SystemStatus) UpdateExcess() {
	s.PowerExcess = ExcessPower(s.PowerBattery, s.PowerGrid, s.PowerEVCS)
}

// ExcessPower is battery - grid + evcs.
func ExcessPower(battery, grid, evcs int32) int32 {
	return battery - grid + evcs
}

// Decision is the outcome of a decision epoch.
type Decision struct {
	Mean        int64
	Threshold   int32
	ChargeStart ChargeStart
}

func (d Decision) Reason() string {
	if d.ChargeStart == ChargingStart {
		return "High excess power - want charging"
	}
	return "Low excess power - refuse charging"
}

// CycleReport summarizes one successful control cycle.
type CycleReport struct {
	Time         time.Time
	Status       SystemStatus
	Rounds       int64
	Mean         int64
	DesiredStart ChargeStart
	DryRun       bool
	// Set only when the cycle closed an averaging window
	Decision *Decision
}

// StatusLine renders the fixed-width per-cycle status line.
func (r CycleReport) StatusLine() string {
	s := r.Status
	return fmt.Sprintf("M/%c S/%c C/%d D/%d R/%4d A/%7d X/%7d G/%7d B/%7d P/%7d C/%7d E/%7d BS/%3d ES/%3d",
		s.ChargingMode.Char(),
		s.ChargerStatus.Char(),
		s.ChargeStart,
		r.DesiredStart,
		r.Rounds,
		r.Mean,
		s.PowerExcess, s.PowerGrid, s.PowerBattery,
		s.PowerPV, s.PowerConsumption, s.PowerEVCS,
		s.SoCBattery, s.SoCEV)
}
