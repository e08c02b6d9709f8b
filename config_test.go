package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBuildConfigDefaults(t *testing.T) {
	c, err := buildConfig(newViper())
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}
	if c.name != defaultRadarName {
		t.Errorf("name = %q, want %q", c.name, defaultRadarName)
	}
	if got := c.destination.String(); got != defaultRadarAddress {
		t.Errorf("destination = %v, want %v", got, defaultRadarAddress)
	}
	if got := c.local.String(); got != "0.0.0.0:0" {
		t.Errorf("local = %v, want 0.0.0.0:0", got)
	}
	if c.stayAlive != defaultStayAliveInterval || c.sendTimeout != defaultSendTimeout {
		t.Errorf("intervals = %v/%v", c.stayAlive, c.sendTimeout)
	}
	if c.units != rangeUnitsNautical || c.emulator || c.txOnStart || !c.txOffOnExit {
		t.Errorf("settings = %+v", c)
	}
	if len(c.controls) != 0 {
		t.Errorf("controls = %v, want none", c.controls)
	}
}

const testConfig = `
[radar]
name = "Radar A"
address = "236.6.7.14:6658"
interface = "127.0.0.1"
stay_alive = "2s"
send_timeout = "100ms"

[settings]
range_units = "metric"
emulator = true

[controls]
range = 1500
scan_speed = 1
gain = { value = 50, auto = true }
sea = { value = 30, auto = 0 }
timed_idle = 5
`

func TestLoadConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "radar.toml")
	if err := os.WriteFile(file, []byte(testConfig), 0600); err != nil {
		t.Fatal(err)
	}

	c, err := loadConfig(file)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if c.name != "Radar A" || c.destination.String() != "236.6.7.14:6658" || c.local.String() != "127.0.0.1:0" {
		t.Errorf("radar = %q %v %v", c.name, c.destination, c.local)
	}
	if c.stayAlive != 2*time.Second || c.sendTimeout != 100*time.Millisecond {
		t.Errorf("intervals = %v/%v", c.stayAlive, c.sendTimeout)
	}
	if c.units != rangeUnitsMetric || !c.emulator {
		t.Errorf("settings units %v emulator %v", c.units, c.emulator)
	}

	want := map[controlType]controlSetting{
		ctRange:     {value: 1500, set: true},
		ctScanSpeed: {value: 1, set: true},
		ctGain:      {value: 50, auto: 1, set: true},
		ctSea:       {value: 30, set: true},
		ctTimedIdle: {value: 5, set: true},
	}
	if len(c.controls) != len(want) {
		t.Fatalf("controls = %v, want %v", c.controls, want)
	}
	for ct, w := range want {
		if got := c.controls[ct]; got != w {
			t.Errorf("control %v = %+v, want %+v", ct, got, w)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("loadConfig() on a missing explicit file succeeded")
	}
}

func TestParseControlsErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
	}{
		{"unknown control", map[string]interface{}{"volume": 3}},
		{"bad value", map[string]interface{}{"gain": "loud"}},
		{"bad table value", map[string]interface{}{"gain": map[string]interface{}{"value": "x"}}},
		{"bad auto", map[string]interface{}{"sea": map[string]interface{}{"value": 1, "auto": "maybe"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseControls(tt.raw); err == nil {
				t.Errorf("parseControls(%v) succeeded", tt.raw)
			}
		})
	}
}

func TestApplyArgsOverride(t *testing.T) {
	defer func() {
		radarName, radarAddress, stayAliveInterval, rangeUnitsArg, emulatorArg = "", "", 0, "", false
		keepTxOnExitArg = false
	}()
	radarName = "Radar B"
	radarAddress = "127.0.0.1:6680"
	stayAliveInterval = 500 * time.Millisecond
	rangeUnitsArg = "metric"
	emulatorArg = true
	keepTxOnExitArg = true

	v := newViper()
	applyArgs(v)
	c, err := buildConfig(v)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}
	if c.name != "Radar B" || c.destination.String() != "127.0.0.1:6680" {
		t.Errorf("radar = %q %v", c.name, c.destination)
	}
	if c.stayAlive != 500*time.Millisecond || c.units != rangeUnitsMetric || !c.emulator {
		t.Errorf("config = %+v", c)
	}
	if c.txOffOnExit {
		t.Error("keep-tx-on-exit did not switch tx_off_on_exit off")
	}
}
