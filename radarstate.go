package main

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/multierr"
)

type rangeUnits int

const (
	rangeUnitsMetric rangeUnits = iota
	rangeUnitsNautical
)

const meterPerNauticalMile = 1852

var metricRanges = []int{
	50, 75, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 4000, 6000, 8000,
	12000, 16000, 24000, 36000, 48000, 64000, 72000,
}

// 1/32 nm up to 36 nm, in meters
var nauticalRanges = []int{
	58, 116, 232, 463, 926, 1389, 1852, 2778, 3704, 5556, 7408, 11112,
	14816, 22224, 29632, 44448, 66672,
}

func parseRangeUnits(s string) (rangeUnits, error) {
	switch s {
	case "", "nautical", "nm":
		return rangeUnitsNautical, nil
	case "metric", "km":
		return rangeUnitsMetric, nil
	}
	return rangeUnitsNautical, fmt.Errorf("invalid range units %q", s)
}

func (u rangeUnits) ranges() []int {
	if u == rangeUnitsMetric {
		return metricRanges
	}
	return nauticalRanges
}

func (u rangeUnits) format(meters int) string {
	if u == rangeUnitsMetric {
		if meters < 1000 {
			return fmt.Sprint(meters, "m")
		}
		return fmt.Sprintf("%gkm", float64(meters)/1000)
	}
	nm := float64(meters) / meterPerNauticalMile
	if nm < 1 {
		return fmt.Sprintf("1/%.0fnm", 1/nm)
	}
	return fmt.Sprintf("%.3gnm", nm)
}

type controlSetting struct {
	value int
	auto  int
	set   bool
}

// radarStateStruct is the front door to the radar session for the keyboard
// and the stay alive loop. The mutex serialises every call into ctrl.
type radarStateStruct struct {
	mutex sync.Mutex

	ctrl         *navicoControl
	units        rangeUnits
	transmitting bool
	rangeIdx     int
	controls     [ctMax]controlSetting

	lastStayAliveAt  time.Time
	lastStayAliveErr error
	sendErrors       int
}

func newRadarState(ctrl *navicoControl, units rangeUnits) *radarStateStruct {
	return &radarStateStruct{
		ctrl:  ctrl,
		units: units,
	}
}

// closestRangeIdx returns the index of the table range nearest to meters.
func closestRangeIdx(ranges []int, meters int) int {
	best := 0
	for i := range ranges {
		if abs(ranges[i]-meters) < abs(ranges[best]-meters) {
			best = i
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (s *radarStateStruct) noteResult(err error) {
	if err != nil && !errors.Is(err, errUnmappedControl) && !errors.Is(err, errInvalidRange) {
		s.sendErrors++
		statusLog.reportSendErrors(s.sendErrors)
	}
}

func (s *radarStateStruct) setControlLocked(ct controlType, value, auto int) error {
	err := s.ctrl.SetControlValue(ct, value, auto)
	s.noteResult(err)
	if err == nil || (errors.Is(err, errUnmappedControl) && !ct.transmittable()) {
		if ct >= 0 && ct < ctMax {
			s.controls[ct] = controlSetting{value: value, auto: auto, set: true}
		}
		if ct == ctRange {
			s.rangeIdx = closestRangeIdx(s.units.ranges(), value)
			statusLog.reportRange(s.units.format(value))
		} else {
			statusLog.reportControl(ct, value, auto)
		}
	}
	if errors.Is(err, errUnmappedControl) && !ct.transmittable() {
		return nil
	}
	return err
}

func (s *radarStateStruct) setControl(ct controlType, value, auto int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.setControlLocked(ct, value, auto)
}

// applyControls sends a full set of configured controls in controlType order
// so startup is deterministic. Range goes last, after the filters settle.
func (s *radarStateStruct) applyControls(settings map[controlType]controlSetting) error {
	kinds := make([]controlType, 0, len(settings))
	for ct := range settings {
		kinds = append(kinds, ct)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if kinds[i] == ctRange || kinds[j] == ctRange {
			return kinds[j] == ctRange && kinds[i] != ctRange
		}
		return kinds[i] < kinds[j]
	})

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var err error
	for _, ct := range kinds {
		if e := s.setControlLocked(ct, settings[ct].value, settings[ct].auto); e != nil {
			err = multierr.Append(err, fmt.Errorf("%v: %w", ct, e))
		}
	}
	return err
}

func (s *radarStateStruct) stepRange(dir int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ranges := s.units.ranges()
	idx := s.rangeIdx + dir
	if idx < 0 || idx >= len(ranges) {
		return nil
	}
	return s.setControlLocked(ctRange, ranges[idx], 0)
}

func (s *radarStateStruct) stepLevel(ct controlType, delta int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	c := s.controls[ct]
	v := c.value + delta
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	// Touching the level switches auto off, like on the display unit.
	return s.setControlLocked(ct, v, 0)
}

func (s *radarStateStruct) toggleAuto(ct controlType) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	c := s.controls[ct]
	auto := 1
	if c.auto != 0 {
		auto = 0
	}
	return s.setControlLocked(ct, c.value, auto)
}

func (s *radarStateStruct) setTransmit(on bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.setTransmitLocked(on)
}

func (s *radarStateStruct) setTransmitLocked(on bool) (err error) {
	if on {
		err = s.ctrl.TxOn()
	} else {
		err = s.ctrl.TxOff()
	}
	s.noteResult(err)
	if err == nil {
		s.transmitting = on
		statusLog.reportTransmit(on)
	}
	return err
}

func (s *radarStateStruct) toggleTransmit() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.setTransmitLocked(!s.transmitting)
}

func (s *radarStateStruct) stayAlive() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	err := s.ctrl.StayAlive()
	s.noteResult(err)
	s.lastStayAliveErr = err
	if err == nil {
		s.lastStayAliveAt = time.Now()
		statusLog.reportStayAlive(s.lastStayAliveAt)
	}
	return err
}

func (s *radarStateStruct) control(ct controlType) controlSetting {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.controls[ct]
}

func (s *radarStateStruct) isTransmitting() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.transmitting
}
