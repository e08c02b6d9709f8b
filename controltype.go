package main

import (
	"fmt"
	"strings"
)

type controlType int

// Order matters only for display; the wire never sees these values.
const (
	ctRange controlType = iota
	ctBearingAlignment
	ctGain
	ctSea
	ctRain
	ctSideLobeSuppression
	ctInterferenceRejection
	ctTargetExpansion
	ctTargetBoost
	ctLocalInterferenceRejection
	ctScanSpeed
	ctNoiseRejection
	ctTargetSeparation
	ctAntennaHeight

	// Settings below are kept locally and never sent to the radar.
	ctTimedIdle
	ctTimedRun
	ctTransparency
	ctRefreshRate
	ctTargetTrails
	ctTrailsMotion
	ctMainBangSize
	ctAntennaForward
	ctAntennaStarboard

	ctMax
)

var controlTypeNames = [ctMax]string{
	ctRange:                      "range",
	ctBearingAlignment:           "bearing_alignment",
	ctGain:                       "gain",
	ctSea:                        "sea",
	ctRain:                       "rain",
	ctSideLobeSuppression:        "side_lobe_suppression",
	ctInterferenceRejection:      "interference_rejection",
	ctTargetExpansion:            "target_expansion",
	ctTargetBoost:                "target_boost",
	ctLocalInterferenceRejection: "local_interference_rejection",
	ctScanSpeed:                  "scan_speed",
	ctNoiseRejection:             "noise_rejection",
	ctTargetSeparation:           "target_separation",
	ctAntennaHeight:              "antenna_height",
	ctTimedIdle:                  "timed_idle",
	ctTimedRun:                   "timed_run",
	ctTransparency:               "transparency",
	ctRefreshRate:                "refresh_rate",
	ctTargetTrails:               "target_trails",
	ctTrailsMotion:               "trails_motion",
	ctMainBangSize:               "main_bang_size",
	ctAntennaForward:             "antenna_forward",
	ctAntennaStarboard:           "antenna_starboard",
}

func (c controlType) String() string {
	if c < 0 || c >= ctMax || controlTypeNames[c] == "" {
		return fmt.Sprintf("controlType(%d)", int(c))
	}
	return controlTypeNames[c]
}

// transmittable reports whether the radar has a command for this control.
func (c controlType) transmittable() bool {
	switch c {
	case ctRange, ctBearingAlignment, ctGain, ctSea, ctRain, ctSideLobeSuppression,
		ctInterferenceRejection, ctTargetExpansion, ctTargetBoost, ctLocalInterferenceRejection,
		ctScanSpeed, ctNoiseRejection, ctTargetSeparation, ctAntennaHeight:
		return true
	case ctTimedIdle, ctTimedRun, ctTransparency, ctRefreshRate, ctTargetTrails,
		ctTrailsMotion, ctMainBangSize, ctAntennaForward, ctAntennaStarboard, ctMax:
		return false
	}
	return false
}

// parseControlType accepts the names used in the config file, case
// insensitive, with either '_' or '-' as separator.
func parseControlType(name string) (controlType, error) {
	n := strings.ToLower(strings.Replace(strings.TrimSpace(name), "-", "_", -1))
	for i := range controlTypeNames {
		if controlTypeNames[i] == n {
			return controlType(i), nil
		}
	}
	return ctMax, fmt.Errorf("unknown control %q", name)
}
