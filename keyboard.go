package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/google/goterm/term"
)

const levelStep = 5

type keyboardStruct struct {
	initialized  bool
	oldTermAttrs term.Termios

	state *radarStateStruct
	quit  chan bool
}

var keyboard keyboardStruct

func (s *keyboardStruct) handleKey(k byte) {
	if s.state == nil {
		return
	}

	var err error
	switch k {
	case 't', 'T':
		err = s.state.toggleTransmit()
	case '+', '=':
		err = s.state.stepRange(1)
	case '-', '_':
		err = s.state.stepRange(-1)
	case 'g':
		err = s.state.stepLevel(ctGain, -levelStep)
	case 'G':
		err = s.state.stepLevel(ctGain, levelStep)
	case 'a', 'A':
		err = s.state.toggleAuto(ctGain)
	case 's':
		err = s.state.stepLevel(ctSea, -levelStep)
	case 'S':
		err = s.state.stepLevel(ctSea, levelStep)
	case 'r':
		err = s.state.stepLevel(ctRain, -levelStep)
	case 'R':
		err = s.state.stepLevel(ctRain, levelStep)
	case 'h', 'H':
		s.printHistory()
	case 'q', 'Q', 0x03: // ctrl-c arrives as a byte in raw mode
		if s.quit != nil {
			select {
			case s.quit <- true:
			default:
			}
		}
	}
	if err != nil {
		log.Error(err)
	}
}

func (s *keyboardStruct) printHistory() {
	if s.state == nil || s.state.ctrl.history == nil {
		return
	}
	for _, e := range s.state.ctrl.history.last(20) {
		log.Print(fmt.Sprintf("%s %-12s % X", e.sentAt.Format("15:04:05.000"), e.what, e.data))
	}
}

func (s *keyboardStruct) loop() {
	var b [1]byte
	for {
		n, err := os.Stdin.Read(b[:])
		if err != nil {
			if err != syscall.EINTR {
				return
			}
			continue
		}
		if n > 0 {
			s.handleKey(b[0])
		}
	}
}

func (s *keyboardStruct) init() {
	var err error
	s.oldTermAttrs, err = term.Attr(os.Stdin)
	if err != nil {
		log.Debug("can't get terminal attributes, keyboard disabled: ", err)
		return
	}

	newTermAttrs := s.oldTermAttrs
	newTermAttrs.Raw()
	if err := newTermAttrs.Set(os.Stdin); err != nil {
		log.Debug("can't set terminal attributes, keyboard disabled: ", err)
		return
	}
	s.initialized = true

	go s.loop()
}

// attach hands the keyboard the radar to drive and the channel to signal
// quit on. Keys pressed before attach are ignored.
func (s *keyboardStruct) attach(state *radarStateStruct, quit chan bool) {
	s.state = state
	s.quit = quit
}

func (s *keyboardStruct) deinit() {
	if !s.initialized {
		return
	}
	_ = s.oldTermAttrs.Set(os.Stdin)
	s.initialized = false
}
