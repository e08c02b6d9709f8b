package main

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/crypto/ssh/terminal"
)

type statusLogData struct {
	line1 string
	line2 string

	name        string
	destination string
	transmit    bool
	rangeStr    string
	gain        string
	sea         string
	rain        string
	sendErrors  int
	stayAliveAt time.Time

	startTime time.Time
}

type statusLogStruct struct {
	ticker           *time.Ticker
	stopChan         chan bool
	stopFinishedChan chan bool
	mutex            sync.Mutex

	interval time.Duration
	history  *txHistory

	preGenerated struct {
		standbyColor *color.Color
		errorColor   *color.Color
		staleColor   *color.Color

		stateStr struct {
			tx      string
			standby string
		}
	}

	data *statusLogData
}

type termAspects struct {
	cols       int
	rows       int
	cursorUp   string
	cursorDown string
	eraseLine  string
}

var statusLog statusLogStruct
var termDetail = termAspects{
	cursorUp:   fmt.Sprintf("%c[1A", 0x1b),
	cursorDown: fmt.Sprintf("%c[1B", 0x1b),
	eraseLine:  fmt.Sprintf("%c[2K", 0x1b),
}

func (s *statusLogStruct) reportTransmit(on bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.data == nil {
		return
	}
	s.data.transmit = on
}

func (s *statusLogStruct) reportRange(r string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.data == nil {
		return
	}
	s.data.rangeStr = r
}

func levelString(value, auto int) string {
	if auto != 0 {
		return "auto"
	}
	return fmt.Sprint(value, "%")
}

// only the levels shown on the status bar are kept, the rest are ignored
func (s *statusLogStruct) reportControl(ct controlType, value, auto int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.data == nil {
		return
	}
	switch ct {
	case ctGain:
		s.data.gain = levelString(value, auto)
	case ctSea:
		s.data.sea = levelString(value, auto)
	case ctRain:
		s.data.rain = levelString(value, 0)
	}
}

func (s *statusLogStruct) reportStayAlive(t time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.data == nil {
		return
	}
	s.data.stayAliveAt = t
}

func (s *statusLogStruct) reportSendErrors(n int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.data == nil {
		return
	}
	s.data.sendErrors = n
}

// clears the entire line the cursor is located on
func (s *statusLogStruct) clearStatusLine() {
	fmt.Print(termDetail.eraseLine)
}

// in a terminal the two status lines are redrawn in place, otherwise the
// second line goes to the log
func (s *statusLogStruct) print() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.data == nil {
		return
	}
	if s.isRealtimeInternal() {
		s.clearStatusLine()
		fmt.Println(s.data.line1)
		s.clearStatusLine()
		fmt.Printf(s.data.line2+"%v", termDetail.cursorUp)
	} else {
		log.PrintStatusLog(s.data.line2)
	}
}

func (s *statusLogStruct) padLeft(str string, length int) string {
	if !s.isRealtimeInternal() {
		return str
	}
	if length-len(str) > 0 {
		str = strings.Repeat(" ", length-len(str)) + str
	}
	return str
}

func (s *statusLogStruct) padRight(str string, length int) string {
	if !s.isRealtimeInternal() {
		return str
	}
	if length-len(str) > 0 {
		str += strings.Repeat(" ", length-len(str))
	}
	return str
}

func (s *statusLogStruct) update() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.data == nil {
		return
	}

	stateStr := s.preGenerated.stateStr.standby
	if s.data.transmit {
		stateStr = s.preGenerated.stateStr.tx
	}

	rangeStr := s.data.rangeStr
	if rangeStr == "" {
		rangeStr = "?"
	}
	s.data.line1 = fmt.Sprint(stateStr, " ", s.data.name, " range ", s.padRight(rangeStr, 8),
		" gain ", s.padRight(s.data.gain, 4), " sea ", s.padRight(s.data.sea, 4),
		" rain ", s.padRight(s.data.rain, 4))

	aliveStr := "never"
	if !s.data.stayAliveAt.IsZero() {
		age := time.Since(s.data.stayAliveAt).Round(100 * time.Millisecond)
		aliveStr = fmt.Sprint(age, " ago")
		if age > 3*time.Second {
			aliveStr = s.preGenerated.staleColor.Sprint(" ", aliveStr, " ")
		}
	}
	errStr := "0"
	if s.data.sendErrors > 0 {
		errStr = s.preGenerated.errorColor.Sprint(" ", s.data.sendErrors, " ")
	}
	var pkts int
	if s.history != nil {
		pkts = s.history.count()
	}

	s.data.line2 = fmt.Sprint(
		" [", s.data.destination, "] ",
		" stay alive ", s.padLeft(aliveStr, 10),
		"  tx ", s.padLeft(fmt.Sprint(pkts), 3), "/", txHistoryLength,
		"  errors ", errStr,
		"  - uptime: ", s.padLeft(fmt.Sprint(time.Since(s.data.startTime).Round(time.Second)), 6),
		"\r")

	if s.isRealtimeInternal() {
		t := time.Now().Format("2006-01-02T15:04:05 Z0700")
		s.data.line1 = fmt.Sprint(t, " ", s.data.line1)
		s.data.line2 = fmt.Sprint(t, " ", s.data.line2)
	}
}

func (s *statusLogStruct) loop(tick <-chan time.Time) {
	for {
		select {
		case <-tick:
			s.update()
			s.print()
		case <-s.stopChan:
			s.stopFinishedChan <- true
			return
		}
	}
}

// true when the keyboard owns the terminal, so the status lines can be
// redrawn in place
func (s *statusLogStruct) isRealtimeInternal() bool {
	return keyboard.initialized
}

func (s *statusLogStruct) isRealtime() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.ticker != nil && s.isRealtimeInternal()
}

func (s *statusLogStruct) isActive() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.ticker != nil
}

func (s *statusLogStruct) startPeriodicPrint(name, destination string, history *txHistory, interval time.Duration, quiet bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.interval = interval
	s.history = history
	s.initIfNeeded(quiet)
	if s.interval <= 0 {
		s.interval = time.Second
	}

	s.data = &statusLogData{
		name:        name,
		destination: destination,
		startTime:   time.Now(),
	}

	s.stopChan = make(chan bool)
	s.stopFinishedChan = make(chan bool)
	s.ticker = time.NewTicker(s.interval)
	go s.loop(s.ticker.C)
}

func (s *statusLogStruct) stopPeriodicPrint() {
	if !s.isActive() {
		return
	}
	s.stopChan <- true
	<-s.stopFinishedChan

	s.mutex.Lock()
	s.ticker.Stop()
	s.ticker = nil
	s.mutex.Unlock()

	if s.isRealtimeInternal() {
		for i := 0; i < 2; i++ {
			s.clearStatusLine()
			fmt.Println()
		}
	}
}

func (s *statusLogStruct) initIfNeeded(quiet bool) {
	if s.data != nil {
		return
	}

	if quiet || (!isatty.IsTerminal(os.Stdout.Fd()) && s.interval < time.Second) {
		s.interval = time.Second
	} else {
		keyboard.init()
	}

	cols, rows, err := terminal.GetSize(int(os.Stdout.Fd()))
	if err == nil {
		termDetail.cols = cols
		termDetail.rows = rows
	} else {
		termDetail.cols = 120
		termDetail.rows = 20
	}

	c := color.New(color.FgHiWhite, color.BlinkSlow)
	c.Add(color.BgRed)
	s.preGenerated.stateStr.tx = c.Sprint("  TX   ")

	s.preGenerated.standbyColor = color.New(color.FgHiWhite)
	s.preGenerated.standbyColor.Add(color.BgGreen)
	s.preGenerated.stateStr.standby = s.preGenerated.standbyColor.Sprint(" STBY  ")

	s.preGenerated.staleColor = color.New(color.FgHiWhite)
	s.preGenerated.staleColor.Add(color.BgYellow)
	s.preGenerated.errorColor = color.New(color.FgHiWhite)
	s.preGenerated.errorColor.Add(color.BgRed)
}
