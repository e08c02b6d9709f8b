package main

// All the viper code lives here.
import (
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	defaultRadarName    = "Navico radar"
	defaultRadarAddress = "236.6.7.10:6680"
)

type radarConfig struct {
	name        string
	destination *net.UDPAddr
	local       *net.UDPAddr
	stayAlive   time.Duration
	sendTimeout time.Duration
	units       rangeUnits
	emulator    bool
	txOnStart   bool
	txOffOnExit bool
	controls    map[controlType]controlSetting
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("radar.name", defaultRadarName)
	v.SetDefault("radar.address", defaultRadarAddress)
	v.SetDefault("radar.interface", "0.0.0.0")
	v.SetDefault("radar.stay_alive", defaultStayAliveInterval)
	v.SetDefault("radar.send_timeout", defaultSendTimeout)
	v.SetDefault("settings.range_units", "nautical")
	v.SetDefault("settings.emulator", false)
	v.SetDefault("settings.tx_on_start", false)
	v.SetDefault("settings.tx_off_on_exit", true)
	return v
}

// readConfigFile reads the TOML config. With no explicit file it looks for
// deeprey-radar.toml in /etc/deeprey-radar and then the working directory;
// not finding one there is fine, the defaults are used.
func readConfigFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		return v.ReadInConfig()
	}
	v.SetConfigName("deeprey-radar")
	v.AddConfigPath("/etc/deeprey-radar")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}

// resolveLocal accepts an address with or without a port.
func resolveLocal(addr string) (*net.UDPAddr, error) {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "0")
	}
	return net.ResolveUDPAddr("udp4", addr)
}

// parseControls reads the [controls] table. Entries are either a plain
// number or a table with value and auto, e.g.
//
//	gain = { value = 50, auto = 1 }
//	scan_speed = 1
func parseControls(raw map[string]interface{}) (map[controlType]controlSetting, error) {
	controls := make(map[controlType]controlSetting)

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ct, err := parseControlType(name)
		if err != nil {
			return nil, err
		}

		var c controlSetting
		switch val := raw[name].(type) {
		case map[string]interface{}:
			if c.value, err = cast.ToIntE(val["value"]); err != nil {
				return nil, fmt.Errorf("control %s: value: %w", name, err)
			}
			if val["auto"] != nil {
				if c.auto, err = autoFlag(val["auto"]); err != nil {
					return nil, fmt.Errorf("control %s: auto: %w", name, err)
				}
			}
		default:
			if c.value, err = cast.ToIntE(val); err != nil {
				return nil, fmt.Errorf("control %s: %w", name, err)
			}
		}
		c.set = true
		controls[ct] = c
	}
	return controls, nil
}

// autoFlag takes true/false as well as 0/1.
func autoFlag(v interface{}) (int, error) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, err
	}
	if n != 0 {
		n = 1
	}
	return n, nil
}

func buildConfig(v *viper.Viper) (*radarConfig, error) {
	c := &radarConfig{
		name:        v.GetString("radar.name"),
		stayAlive:   v.GetDuration("radar.stay_alive"),
		sendTimeout: v.GetDuration("radar.send_timeout"),
		emulator:    v.GetBool("settings.emulator"),
		txOnStart:   v.GetBool("settings.tx_on_start"),
		txOffOnExit: v.GetBool("settings.tx_off_on_exit"),
	}

	var err error
	if c.destination, err = net.ResolveUDPAddr("udp4", v.GetString("radar.address")); err != nil {
		return nil, fmt.Errorf("radar address: %w", err)
	}
	if c.local, err = resolveLocal(v.GetString("radar.interface")); err != nil {
		return nil, fmt.Errorf("interface address: %w", err)
	}
	if c.units, err = parseRangeUnits(strings.ToLower(v.GetString("settings.range_units"))); err != nil {
		return nil, err
	}
	if c.controls, err = parseControls(v.GetStringMap("controls")); err != nil {
		return nil, err
	}
	return c, nil
}

// applyArgs lets command line flags override what the file says.
func applyArgs(v *viper.Viper) {
	if radarName != "" {
		v.Set("radar.name", radarName)
	}
	if radarAddress != "" {
		v.Set("radar.address", radarAddress)
	}
	if interfaceAddress != "" {
		v.Set("radar.interface", interfaceAddress)
	}
	if stayAliveInterval > 0 {
		v.Set("radar.stay_alive", stayAliveInterval)
	}
	if sendTimeout > 0 {
		v.Set("radar.send_timeout", sendTimeout)
	}
	if rangeUnitsArg != "" {
		v.Set("settings.range_units", rangeUnitsArg)
	}
	if emulatorArg {
		v.Set("settings.emulator", true)
	}
	if txOnStartArg {
		v.Set("settings.tx_on_start", true)
	}
	if keepTxOnExitArg {
		v.Set("settings.tx_off_on_exit", false)
	}
}

func loadConfig(file string) (*radarConfig, error) {
	v := newViper()
	if err := readConfigFile(v, file); err != nil {
		return nil, fmt.Errorf("can't read config: %w", err)
	}
	applyArgs(v)
	return buildConfig(v)
}
