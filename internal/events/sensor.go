package events

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/carlmjohnson/versioninfo"
)

const (
	SENSOR_ID_BRIDGE_STATE        = "bridge"
	SENSOR_ID_POWER_GRID          = "power_grid"
	SENSOR_ID_POWER_PV            = "power_pv"
	SENSOR_ID_POWER_CONSUMPTION   = "power_consumption"
	SENSOR_ID_POWER_BATTERY       = "power_battery"
	SENSOR_ID_POWER_EVCS          = "power_evcs"
	SENSOR_ID_POWER_EXCESS        = "power_excess"
	SENSOR_ID_POWER_EXCESS_MEAN   = "power_excess_mean"
	SENSOR_ID_AVERAGING_ROUNDS    = "averaging_rounds"
	SENSOR_ID_BATTERY_SOC         = "battery_soc"
	SENSOR_ID_CHARGER_STATUS      = "charger_status"
	SENSOR_ID_CHARGE_MODE         = "charge_mode"
	SENSOR_ID_CHARGING            = "charging"
	SENSOR_ID_CHARGE_WANTED       = "charge_wanted"
	SENSOR_ID_DRY_RUN             = "dry_run"
	STATE_CLASS_MEASUREMENT       = "measurement"
	DEVICE_CLASS_BATTERY          = "battery"
	DEVICE_CLASS_POWER            = "power"
	DEVICE_CLASS_CONNECTIVITY     = "connectivity"
	DEVICE_CLASS_BATTERY_CHARGING = "battery_charging"
	ENTITY_CLASS_DIAGNOSTIC       = "diagnostic"
	SENSOR_TYPE_SENSOR            = "sensor"
	SENSOR_TYPE_BINARY            = "binary_sensor"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("sparkshift_%s", md5HashShort(baseTopic)),
		Manufacturer: "Sparkshift",
		Model:        "EV solar excess charging",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Sparkshift %s", md5HashShort(baseTopic)),
	}
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {
	return []GenericSensor{{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Bridge state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	}}
}

func powerSensor(device Device, id, name, field string) GenericSensor {
	return GenericSensor{
		Device:            device,
		Id:                id,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              name,
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_POWER,
		UnitOfMeasurement: "W",
		UniqueId:          uniqueId(device.Id, id),
		ValueTemplate:     fmt.Sprintf("{{ value_json.%s }}", field),
	}
}

// SiteSensors describes the fields of the JSON state document.
func SiteSensors(device Device) []GenericSensor {

	sensors := []GenericSensor{
		powerSensor(device, SENSOR_ID_POWER_GRID, "Grid power", "power_grid"),
		powerSensor(device, SENSOR_ID_POWER_PV, "PV power", "power_pv"),
		powerSensor(device, SENSOR_ID_POWER_CONSUMPTION, "Consumption power", "power_consumption"),
		powerSensor(device, SENSOR_ID_POWER_BATTERY, "Battery power", "power_battery"),
		powerSensor(device, SENSOR_ID_POWER_EVCS, "EV charger power", "power_evcs"),
		powerSensor(device, SENSOR_ID_POWER_EXCESS, "Excess power", "power_excess"),
		powerSensor(device, SENSOR_ID_POWER_EXCESS_MEAN, "Excess power average", "power_excess_mean"),
	}

	sensors = append(sensors, GenericSensor{
		Device:         device,
		Id:             SENSOR_ID_AVERAGING_ROUNDS,
		SensorType:     SENSOR_TYPE_SENSOR,
		Name:           "Averaging rounds",
		StateClass:     STATE_CLASS_MEASUREMENT,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(device.Id, SENSOR_ID_AVERAGING_ROUNDS),
		ValueTemplate:  "{{ value_json.rounds }}",
	})

	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_BATTERY_SOC,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Battery SoC",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_BATTERY,
		UnitOfMeasurement: "%",
		UniqueId:          uniqueId(device.Id, SENSOR_ID_BATTERY_SOC),
		ValueTemplate:     "{{ value_json.soc_battery }}",
	})

	sensors = append(sensors, GenericSensor{
		Device:        device,
		Id:            SENSOR_ID_CHARGER_STATUS,
		SensorType:    SENSOR_TYPE_SENSOR,
		Name:          "Charger status",
		Icon:          "mdi:ev-station",
		UniqueId:      uniqueId(device.Id, SENSOR_ID_CHARGER_STATUS),
		ValueTemplate: "{{ value_json.charger_status_name }}",
	})

	sensors = append(sensors, GenericSensor{
		Device:        device,
		Id:            SENSOR_ID_CHARGE_MODE,
		SensorType:    SENSOR_TYPE_SENSOR,
		Name:          "Charge mode",
		Icon:          "mdi:car-cog",
		UniqueId:      uniqueId(device.Id, SENSOR_ID_CHARGE_MODE),
		ValueTemplate: "{{ value_json.charge_mode_name }}",
	})

	sensors = append(sensors, GenericSensor{
		Device:        device,
		Id:            SENSOR_ID_CHARGING,
		SensorType:    SENSOR_TYPE_BINARY,
		Name:          "Charging",
		DeviceClass:   DEVICE_CLASS_BATTERY_CHARGING,
		UniqueId:      uniqueId(device.Id, SENSOR_ID_CHARGING),
		ValueTemplate: "{{ 'on' if value_json.charge_start == 1 else 'off' }}",
	})

	sensors = append(sensors, GenericSensor{
		Device:        device,
		Id:            SENSOR_ID_CHARGE_WANTED,
		SensorType:    SENSOR_TYPE_BINARY,
		Name:          "Charging wanted",
		Icon:          "mdi:solar-power",
		UniqueId:      uniqueId(device.Id, SENSOR_ID_CHARGE_WANTED),
		ValueTemplate: "{{ 'on' if value_json.desired_start == 1 else 'off' }}",
	})

	sensors = append(sensors, GenericSensor{
		Device:           device,
		Id:               SENSOR_ID_DRY_RUN,
		SensorType:       SENSOR_TYPE_BINARY,
		Name:             "Dry run",
		EntityCategory:   ENTITY_CLASS_DIAGNOSTIC,
		EnabledByDefault: optionalBool(false),
		UniqueId:         uniqueId(device.Id, SENSOR_ID_DRY_RUN),
		ValueTemplate:    "{{ 'on' if value_json.dry_run else 'off' }}",
	})

	return sensors
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}

func optionalBool(value bool) *bool {
	return &value
}
