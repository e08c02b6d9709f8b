package main

import "errors"

const (
	minRangeMeters = 50
	maxRangeMeters = 72704
)

var errInvalidRange = errors.New("range out of bounds")
var errUnmappedControl = errors.New("control is not a radar command")

// controlPayload is what goes on the wire after scaling. value is in the
// unit the radar wants (decimeters, tenths of a degree, millimeters, or a
// plain level), auto is the 0/1 auto flag for the filter commands.
type controlPayload struct {
	value int
	auto  byte
}

// scaleLevel maps a 0-100 UI level onto the radar's 0-255 range.
func scaleLevel(value int) int {
	v := (value + 1) * 255 / 100
	if v > 255 {
		v = 255
	}
	return v
}

func mapControlValue(ct controlType, value, autoValue int) (controlPayload, error) {
	switch ct {
	case ctRange:
		if value < minRangeMeters || value > maxRangeMeters {
			return controlPayload{}, errInvalidRange
		}
		return controlPayload{value: value * 10}, nil

	case ctBearingAlignment:
		// The radar counts bearing alignment the other way round from the
		// signed offset shown to the user.
		if value < 0 {
			value += 360
		}
		return controlPayload{value: value * 10}, nil

	case ctGain, ctSea:
		return controlPayload{value: scaleLevel(value), auto: byte(autoValue)}, nil

	case ctRain: // No auto mode for rain.
		return controlPayload{value: scaleLevel(value)}, nil

	case ctSideLobeSuppression:
		v := value * 256 / 100
		if v > 255 {
			v = 255
		}
		return controlPayload{value: v, auto: byte(autoValue)}, nil

	case ctInterferenceRejection, ctTargetExpansion, ctTargetBoost, ctScanSpeed,
		ctNoiseRejection, ctTargetSeparation:
		return controlPayload{value: int(byte(value))}, nil

	case ctLocalInterferenceRejection:
		if value < 0 {
			value = 0
		}
		if value > 3 {
			value = 3
		}
		return controlPayload{value: value}, nil

	case ctAntennaHeight:
		return controlPayload{value: value * 1000}, nil // mm

	case ctTimedIdle, ctTimedRun, ctTransparency, ctRefreshRate, ctTargetTrails,
		ctTrailsMotion, ctMainBangSize, ctAntennaForward, ctAntennaStarboard, ctMax:
		return controlPayload{}, errUnmappedControl
	}
	return controlPayload{}, errUnmappedControl
}
