package main

import (
	"encoding/binary"
	"fmt"
)

const cmdMarker = 0xc1

// Fixed session packets. TX off part 1 is the same as TX on part 1, the
// radar tells them apart by part 2.
var (
	cmdTxOnA = [3]byte{0x00, cmdMarker, 0x01}
	cmdTxOnB = [3]byte{0x01, cmdMarker, 0x01}

	cmdTxOffA = [3]byte{0x00, cmdMarker, 0x01}
	cmdTxOffB = [3]byte{0x01, cmdMarker, 0x00}

	cmdStayAliveA = [2]byte{0xa0, 0xc1}
	cmdStayAliveB = [2]byte{0x03, 0xc2}
	cmdStayAliveC = [2]byte{0x04, 0xc2}
	cmdStayAliveD = [2]byte{0x05, 0xc2}
)

type navicoCmdSet struct {
	// command id, marker and sub command (if any)
	cmdSeq []byte
	// full packet length, checked on every encode
	size int
}

// Commands reference: reverse engineered, there are holes in the id space
// (0x07, 0x0b-0x0d, 0x10-0x20, 0x23-0x2f) that nobody has mapped yet.
var navicoCmds = map[controlType]navicoCmdSet{
	// 0x03 range, decimeters LE32
	ctRange: {cmdSeq: []byte{0x03, cmdMarker}, size: 6},
	// 0x05 bearing alignment, tenths of a degree LE16
	ctBearingAlignment: {cmdSeq: []byte{0x05, cmdMarker}, size: 4},
	// 0x06 filter levels, sub command selects the filter
	ctGain:                {cmdSeq: []byte{0x06, cmdMarker, 0x00}, size: 11},
	ctSea:                 {cmdSeq: []byte{0x06, cmdMarker, 0x02}, size: 11},
	ctRain:                {cmdSeq: []byte{0x06, cmdMarker, 0x04}, size: 11},
	ctSideLobeSuppression: {cmdSeq: []byte{0x06, cmdMarker, 0x05}, size: 11},
	// single byte settings
	ctInterferenceRejection:      {cmdSeq: []byte{0x08, cmdMarker}, size: 3},
	ctTargetExpansion:            {cmdSeq: []byte{0x09, cmdMarker}, size: 3},
	ctTargetBoost:                {cmdSeq: []byte{0x0a, cmdMarker}, size: 3},
	ctLocalInterferenceRejection: {cmdSeq: []byte{0x0e, cmdMarker}, size: 3},
	ctScanSpeed:                  {cmdSeq: []byte{0x0f, cmdMarker}, size: 3},
	ctNoiseRejection:             {cmdSeq: []byte{0x21, cmdMarker}, size: 3},
	ctTargetSeparation:           {cmdSeq: []byte{0x22, cmdMarker}, size: 3},
	// 0x30 antenna height in millimeters
	ctAntennaHeight: {cmdSeq: []byte{0x30, cmdMarker, 0x01}, size: 10},
}

func prepPacket(ct controlType, data []byte) ([]byte, error) {
	set, ok := navicoCmds[ct]
	if !ok {
		return nil, errUnmappedControl
	}
	pkt := make([]byte, 0, set.size)
	pkt = append(pkt, set.cmdSeq...)
	pkt = append(pkt, data...)
	if len(pkt) != set.size {
		return nil, fmt.Errorf("%v packet is %d bytes, want %d", ct, len(pkt), set.size)
	}
	return pkt, nil
}

// encodeControl builds the packet for an already mapped payload.
func encodeControl(ct controlType, p controlPayload) ([]byte, error) {
	switch ct {
	case ctRange:
		var d [4]byte
		binary.LittleEndian.PutUint32(d[:], uint32(p.value))
		return prepPacket(ct, d[:])

	case ctBearingAlignment:
		return prepPacket(ct, []byte{byte(p.value & 255), byte(p.value / 256)})

	case ctGain, ctSea, ctSideLobeSuppression:
		d := [8]byte{0, 0, 0, p.auto, 0, 0, 0, byte(p.value)}
		return prepPacket(ct, d[:])

	case ctRain:
		d := [8]byte{0, 0, 0, 0, 0, 0, 0, byte(p.value)}
		return prepPacket(ct, d[:])

	case ctInterferenceRejection, ctTargetExpansion, ctTargetBoost, ctLocalInterferenceRejection,
		ctScanSpeed, ctNoiseRejection, ctTargetSeparation:
		return prepPacket(ct, []byte{byte(p.value)})

	case ctAntennaHeight:
		d := [7]byte{0, 0, 0, byte(p.value & 255), byte(p.value / 256), 0, 0}
		return prepPacket(ct, d[:])

	case ctTimedIdle, ctTimedRun, ctTransparency, ctRefreshRate, ctTargetTrails,
		ctTrailsMotion, ctMainBangSize, ctAntennaForward, ctAntennaStarboard, ctMax:
		return nil, errUnmappedControl
	}
	return nil, errUnmappedControl
}
