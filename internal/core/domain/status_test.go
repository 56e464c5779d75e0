package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusLine(t *testing.T) {

	st := SystemStatus{
		PowerGrid:        -1200,
		PowerPV:          4100,
		PowerConsumption: 900,
		PowerBattery:     -1500,
		PowerEVCS:        0,
		SoCBattery:       82,
		SoCEV:            SoCUnknown,
		ChargeStart:      ChargingStop,
		ChargerStatus:    ChargerStatusConnected,
		ChargingMode:     ChargeModeAuto,
	}
	st.UpdateExcess()
	assert.EqualValues(t, -300, st.PowerExcess, "battery - grid + evcs")

	r := CycleReport{
		Status:       st,
		Rounds:       3,
		Mean:         -250,
		DesiredStart: ChargingStart,
	}

	assert.Equal(t,
		"M/A S/D C/0 D/1 R/   3 A/   -250 X/   -300 G/  -1200 B/  -1500 P/   4100 C/    900 E/      0 BS/ 82 ES/999",
		r.StatusLine())
}

func TestChargerStatusChars(t *testing.T) {

	expected := map[ChargerStatus]byte{
		0: 'X', 1: 'D', 2: 'C', 3: 'F', 4: 'W', 5: 'E', 6: 'W', 7: 'W',
		8: 'E', 9: 'E', 10: 'E', 11: 'E', 12: 'E', 13: 'E', 14: 'E',
		15: 'E', 16: 'E', 17: 'E', 18: 'E', 19: 'E',
		20: 'L', 21: 'C', 22: '3', 23: '1', 24: 'C',
		25: '?', 999: '?',
	}
	for status, c := range expected {
		assert.Equal(t, string(c), string(status.Char()), "status %d", status)
	}
}

func TestChargerStatusNames(t *testing.T) {

	assert.Equal(t, "Disconnected", ChargerStatusDisconnected.String())
	assert.Equal(t, "Reserved", ChargerStatus(17).String())
	assert.Equal(t, "Stop charging", ChargerStatusStopCharging.String())
	assert.Equal(t, "Unknown state", ChargerStatus(42).String())
}

func TestChargeModes(t *testing.T) {

	assert.Equal(t, "M", string(ChargeModeManual.Char()))
	assert.Equal(t, "A", string(ChargeModeAuto.Char()))
	assert.Equal(t, "S", string(ChargeModeScheduled.Char()))
	assert.Equal(t, "?", string(ChargeMode(7).Char()))
	assert.Equal(t, "Unknown mode", ChargeMode(7).String())
	assert.Equal(t, "Scheduled", ChargeModeScheduled.String())
}

func TestDecisionReason(t *testing.T) {

	assert.Equal(t, "High excess power - want charging", Decision{ChargeStart: ChargingStart}.Reason())
	assert.Equal(t, "Low excess power - refuse charging", Decision{ChargeStart: ChargingStop}.Reason())
}

func TestDocument(t *testing.T) {

	r := CycleReport{
		Status: SystemStatus{
			PowerExcess:   1800,
			SoCEV:         SoCUnknown,
			ChargeStart:   ChargingStop,
			ChargerStatus: ChargerStatusWaitingForSun,
			ChargingMode:  ChargeModeAuto,
		},
		Rounds:       6,
		Mean:         1650,
		DesiredStart: ChargingStart,
		Decision:     &Decision{Mean: 1650, Threshold: 1400, ChargeStart: ChargingStart},
	}

	doc := r.Document()
	assert.Equal(t, "A", doc.ChargeMode)
	assert.Equal(t, "Auto", doc.ChargeModeName)
	assert.Equal(t, "W", doc.ChargerStatus)
	assert.Equal(t, "Waiting for sun", doc.ChargerStatusName)
	assert.EqualValues(t, 1650, doc.PowerExcessMean)
	assert.Equal(t, "High excess power - want charging", doc.Decision.Reason)

	r.Decision = nil
	assert.Nil(t, r.Document().Decision)
}
