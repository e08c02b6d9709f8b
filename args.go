package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pborman/getopt"
)

var (
	verboseLog        bool
	quietLog          bool
	debugLog          bool
	transmitLog       bool
	configFile        string
	radarName         string
	radarAddress      string
	interfaceAddress  string
	stayAliveInterval time.Duration
	sendTimeout       time.Duration
	statusLogInterval time.Duration
	rangeUnitsArg     string
	emulatorArg       bool
	txOnStartArg      bool
	keepTxOnExitArg   bool
)

func parseArgs() {
	h := getopt.BoolLong("help", 'h', "display help")
	v := getopt.BoolLong("verbose", 'v', "Log every radar command")
	d := getopt.BoolLong("debug", 'd', "Enable debug logging")
	q := getopt.BoolLong("quiet", 'q', "Disable logging")
	x := getopt.BoolLong("transmit-log", 'x', "Log a hex dump of every packet sent")
	c := getopt.StringLong("config", 'c', "", "Config file (default deeprey-radar.toml in /etc/deeprey-radar or .)")
	n := getopt.StringLong("name", 'n', "", "Radar name used in logs")
	a := getopt.StringLong("address", 'a', "", "Radar command address, host:port")
	i := getopt.StringLong("interface", 'i', "", "Local interface address to send from")
	k := getopt.Uint16Long("stay-alive", 'k', 0, "Stay alive interval in milliseconds")
	t := getopt.Uint16Long("send-timeout", 'w', 0, "Send timeout in milliseconds")
	l := getopt.Uint16Long("log-interval", 'l', 1000, "Status bar/log interval in milliseconds")
	u := getopt.StringLong("range-units", 'u', "", "Range units: metric or nautical")
	e := getopt.BoolLong("emulator", 'e', "Don't send anything, just log what would be sent")
	on := getopt.BoolLong("tx", 't', "Start transmitting once connected")
	keep := getopt.BoolLong("keep-tx-on-exit", 'o', "Leave the radar transmitting on exit")

	getopt.Parse()

	if *h || (*q && (*v || *d)) {
		fmt.Println(getAboutStr())
		getopt.Usage()
		os.Exit(1)
	}

	verboseLog = *v
	debugLog = *d
	quietLog = *q
	transmitLog = *x
	configFile = *c
	radarName = *n
	radarAddress = *a
	interfaceAddress = *i
	stayAliveInterval = time.Duration(*k) * time.Millisecond
	sendTimeout = time.Duration(*t) * time.Millisecond
	statusLogInterval = time.Duration(*l) * time.Millisecond
	rangeUnitsArg = *u
	emulatorArg = *e
	txOnStartArg = *on
	keepTxOnExitArg = *keep
}
