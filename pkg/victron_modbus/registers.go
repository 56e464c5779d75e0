package victron_modbus

// GX Modbus TCP register list 3.50 (com.victronenergy.system)
const (
	GX_UNIT_ID_SYSTEM = 100

	GX_REGISTER_PV_AC_IN_L1       = 811 // uint16
	GX_REGISTER_AC_CONSUMPTION_L1 = 817 // int16
	GX_REGISTER_GRID_L1           = 820 // int16
	GX_REGISTER_BATTERY_POWER     = 842 // int16
	GX_REGISTER_BATTERY_SOC       = 843 // uint16
)

// per-phase registers are laid out L1, L2, L3
const GX_PHASES uint16 = 3

// EVCS Modbus TCP register list 3.5
const (
	EVCS_UNIT_ID_DEFAULT = 255

	EVCS_REGISTER_CHARGE_MODE    = 5009 // uint16
	EVCS_REGISTER_CHARGE_START   = 5010 // uint16
	EVCS_REGISTER_TOTAL_POWER    = 5014 // uint16
	EVCS_REGISTER_CHARGER_STATUS = 5015 // uint16
)
