package domain

import "time"

// StateDocument is the JSON rendering of a cycle report.
type StateDocument struct {
	Time              time.Time         `json:"time"`
	PowerGrid         int32             `json:"power_grid"`
	PowerPV           int32             `json:"power_pv"`
	PowerConsumption  int32             `json:"power_consumption"`
	PowerBattery      int32             `json:"power_battery"`
	PowerEVCS         int32             `json:"power_evcs"`
	PowerExcess       int32             `json:"power_excess"`
	PowerExcessMean   int64             `json:"power_excess_mean"`
	Rounds            int64             `json:"rounds"`
	SoCBattery        uint16            `json:"soc_battery"`
	SoCEV             uint16            `json:"soc_ev"`
	ChargeMode        string            `json:"charge_mode"`
	ChargeModeName    string            `json:"charge_mode_name"`
	ChargerStatus     string            `json:"charger_status"`
	ChargerStatusName string            `json:"charger_status_name"`
	ChargeStart       ChargeStart       `json:"charge_start"`
	DesiredStart      ChargeStart       `json:"desired_start"`
	DryRun            bool              `json:"dry_run"`
	Decision          *DecisionDocument `json:"decision,omitempty"`
}

type DecisionDocument struct {
	Mean        int64       `json:"mean"`
	Threshold   int32       `json:"threshold"`
	ChargeStart ChargeStart `json:"charge_start"`
	Reason      string      `json:"reason"`
}

func (r CycleReport) Document() StateDocument {
	s := r.Status
	doc := StateDocument{
		Time:              r.Time,
		PowerGrid:         s.PowerGrid,
		PowerPV:           s.PowerPV,
		PowerConsumption:  s.PowerConsumption,
		PowerBattery:      s.PowerBattery,
		PowerEVCS:         s.PowerEVCS,
		PowerExcess:       s.PowerExcess,
		PowerExcessMean:   r.Mean,
		Rounds:            r.Rounds,
		SoCBattery:        s.SoCBattery,
		SoCEV:             s.SoCEV,
		ChargeMode:        string(s.ChargingMode.Char()),
		ChargeModeName:    s.ChargingMode.String(),
		ChargerStatus:     string(s.ChargerStatus.Char()),
		ChargerStatusName: s.ChargerStatus.String(),
		ChargeStart:       s.ChargeStart,
		DesiredStart:      r.DesiredStart,
		DryRun:            r.DryRun,
	}
	if r.Decision != nil {
		doc.Decision = &DecisionDocument{
			Mean:        r.Decision.Mean,
			Threshold:   r.Decision.Threshold,
			ChargeStart: r.Decision.ChargeStart,
			Reason:      r.Decision.Reason(),
		}
	}
	return doc
}
