package domain

// ChargeMode is the EVCS operating mode register value.
type ChargeMode uint16

const (
	ChargeModeManual    ChargeMode = 0
	ChargeModeAuto      ChargeMode = 1
	ChargeModeScheduled ChargeMode = 2
)

func (m ChargeMode) Char() byte {
	switch m {
	case ChargeModeManual:
		return 'M'
	case ChargeModeAuto:
		return 'A'
	case ChargeModeScheduled:
		return 'S'
	default:
		return '?'
	}
}

func (m ChargeMode) String() string {
	switch m {
	case ChargeModeManual:
		return "Manual"
	case ChargeModeAuto:
		return "Auto"
	case ChargeModeScheduled:
		return "Scheduled"
	default:
		return "Unknown mode"
	}
}

// ChargeStart is the EVCS start/stop flag.
type ChargeStart uint16

const (
	ChargingStop  ChargeStart = 0
	ChargingStart ChargeStart = 1
)

func (s ChargeStart) String() string {
	if s == ChargingStart {
		return "start"
	}
	return "stop"
}

// ChargerStatus is the EVCS connection/charging state register value.
type ChargerStatus uint16

const (
	ChargerStatusDisconnected            ChargerStatus = 0
	ChargerStatusConnected               ChargerStatus = 1
	ChargerStatusCharging                ChargerStatus = 2
	ChargerStatusCharged                 ChargerStatus = 3
	ChargerStatusWaitingForSun           ChargerStatus = 4
	ChargerStatusWaitingForRFID          ChargerStatus = 5
	ChargerStatusWaitingForStart         ChargerStatus = 6
	ChargerStatusLowSoC                  ChargerStatus = 7
	ChargerStatusGroundTestError         ChargerStatus = 8
	ChargerStatusWeldedContactsError     ChargerStatus = 9
	ChargerStatusCPInputErrorShorted     ChargerStatus = 10
	ChargerStatusResidualCurrentDetected ChargerStatus = 11
	ChargerStatusUndervoltageDetected    ChargerStatus = 12
	ChargerStatusOvervoltageDetected     ChargerStatus = 13
	ChargerStatusOverheatingDetected     ChargerStatus = 14
	ChargerStatusReserved15              ChargerStatus = 15
	ChargerStatusReserved19              ChargerStatus = 19
	ChargerStatusChargingLimit           ChargerStatus = 20
	ChargerStatusStartCharging           ChargerStatus = 21
	ChargerStatusSwitchingTo3Phase       ChargerStatus = 22
	ChargerStatusSwitchingTo1Phase       ChargerStatus = 23
	ChargerStatusStopCharging            ChargerStatus = 24
)

func (s ChargerStatus) isReserved() bool {
	return s >= ChargerStatusReserved15 && s <= ChargerStatusReserved19
}

func (s ChargerStatus) Char() byte {
	switch {
	case s == ChargerStatusDisconnected:
		return 'X'
	case s == ChargerStatusConnected:
		return 'D'
	case s == ChargerStatusCharging, s == ChargerStatusStartCharging, s == ChargerStatusStopCharging:
		return 'C'
	case s == ChargerStatusCharged:
		return 'F'
	case s == ChargerStatusWaitingForSun, s == ChargerStatusWaitingForStart, s == ChargerStatusLowSoC:
		return 'W'
	case s == ChargerStatusWaitingForRFID,
		s >= ChargerStatusGroundTestError && s <= ChargerStatusOverheatingDetected,
		s.isReserved():
		return 'E'
	case s == ChargerStatusChargingLimit:
		return 'L'
	case s == ChargerStatusSwitchingTo3Phase:
		return '3'
	case s == ChargerStatusSwitchingTo1Phase:
		return '1'
	default:
		return '?'
	}
}

func (s ChargerStatus) String() string {
	if s.isReserved() {
		return "Reserved"
	}
	switch s {
	case ChargerStatusDisconnected:
		return "Disconnected"
	case ChargerStatusConnected:
		return "Connected"
	case ChargerStatusCharging:
		return "Charging"
	case ChargerStatusCharged:
		return "Charged"
	case ChargerStatusWaitingForSun:
		return "Waiting for sun"
	case ChargerStatusWaitingForRFID:
		return "Waiting for RFID"
	case ChargerStatusWaitingForStart:
		return "Waiting for start"
	case ChargerStatusLowSoC:
		return "Low SOC"
	case ChargerStatusGroundTestError:
		return "Ground test error"
	case ChargerStatusWeldedContactsError:
		return "Welded contacts test error"
	case ChargerStatusCPInputErrorShorted:
		return "CP input test error (shorted)"
	case ChargerStatusResidualCurrentDetected:
		return "Residual current detected"
	case ChargerStatusUndervoltageDetected:
		return "Undervoltage detected"
	case ChargerStatusOvervoltageDetected:
		return "Overvoltage detected"
	case ChargerStatusOverheatingDetected:
		return "Overheating detected"
	case ChargerStatusChargingLimit:
		return "Charging limit"
	case ChargerStatusStartCharging:
		return "Start charging"
	case ChargerStatusSwitchingTo3Phase:
		return "Switching to 3 phase"
	case ChargerStatusSwitchingTo1Phase:
		return "Switching to 1 phase"
	case ChargerStatusStopCharging:
		return "Stop charging"
	default:
		return "Unknown state"
	}
}
