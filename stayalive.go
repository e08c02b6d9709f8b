package main

import "time"

const defaultStayAliveInterval = time.Second

// stayAliveStruct keeps the radar session from timing out by sending the
// stay alive burst on a ticker until deinit.
type stayAliveStruct struct {
	state    *radarStateStruct
	interval time.Duration

	deinitNeeded   chan bool
	deinitFinished chan bool
	sendNow        chan bool
}

func (s *stayAliveStruct) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.deinitNeeded:
			s.deinitFinished <- true
			return
		case <-ticker.C:
		case <-s.sendNow:
		}
		if err := s.state.stayAlive(); err != nil {
			// transmitCmd already logged it, the next tick is the retry
			log.Debug("stay alive failed: ", err)
		}
	}
}

func (s *stayAliveStruct) init(state *radarStateStruct, interval time.Duration) {
	if interval <= 0 {
		interval = defaultStayAliveInterval
	}
	s.state = state
	s.interval = interval
	s.deinitNeeded = make(chan bool)
	s.deinitFinished = make(chan bool)
	s.sendNow = make(chan bool, 1)
	go s.loop()
}

// trigger asks for a burst right away, without waiting for the ticker.
func (s *stayAliveStruct) trigger() {
	select {
	case s.sendNow <- true:
	default:
	}
}

func (s *stayAliveStruct) deinit() {
	if s.deinitNeeded == nil {
		return
	}

	s.deinitNeeded <- true
	<-s.deinitFinished
	s.deinitNeeded = nil
}
