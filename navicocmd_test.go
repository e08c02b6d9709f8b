package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func encode(t *testing.T, ct controlType, value, auto int) []byte {
	t.Helper()
	p, err := mapControlValue(ct, value, auto)
	if err != nil {
		t.Fatalf("mapControlValue(%v, %d, %d) error = %v", ct, value, auto, err)
	}
	pkt, err := encodeControl(ct, p)
	if err != nil {
		t.Fatalf("encodeControl(%v) error = %v", ct, err)
	}
	return pkt
}

func TestEncodeControl(t *testing.T) {
	tests := []struct {
		name  string
		ct    controlType
		value int
		auto  int
		want  []byte
	}{
		{"range", ctRange, 1852, 0, []byte{0x03, 0xc1, 0x58, 0x48, 0x00, 0x00}},
		{"bearing negative", ctBearingAlignment, -10, 0, []byte{0x05, 0xc1, 172, 13}},
		{"gain", ctGain, 50, 1, []byte{0x06, 0xc1, 0, 0, 0, 0, 1, 0, 0, 0, 129}},
		{"sea", ctSea, 50, 1, []byte{0x06, 0xc1, 0x02, 0, 0, 0, 1, 0, 0, 0, 129}},
		{"rain", ctRain, 50, 1, []byte{0x06, 0xc1, 0x04, 0, 0, 0, 0, 0, 0, 0, 129}},
		{"side lobe", ctSideLobeSuppression, 50, 0, []byte{0x06, 0xc1, 0x05, 0, 0, 0, 0, 0, 0, 0, 128}},
		{"interference", ctInterferenceRejection, 2, 0, []byte{0x08, 0xc1, 2}},
		{"target expansion", ctTargetExpansion, 1, 0, []byte{0x09, 0xc1, 1}},
		{"target boost", ctTargetBoost, 2, 0, []byte{0x0a, 0xc1, 2}},
		{"local interference low", ctLocalInterferenceRejection, -5, 0, []byte{0x0e, 0xc1, 0}},
		{"local interference high", ctLocalInterferenceRejection, 10, 0, []byte{0x0e, 0xc1, 3}},
		{"scan speed", ctScanSpeed, 1, 0, []byte{0x0f, 0xc1, 1}},
		{"noise rejection", ctNoiseRejection, 2, 0, []byte{0x21, 0xc1, 2}},
		{"target separation", ctTargetSeparation, 3, 0, []byte{0x22, 0xc1, 3}},
		{"antenna height", ctAntennaHeight, 3, 0, []byte{0x30, 0xc1, 0x01, 0, 0, 0, 184, 11, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encode(t, tt.ct, tt.value, tt.auto)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("encode(%v, %d, %d) = [% x], want [% x]", tt.ct, tt.value, tt.auto, got, tt.want)
			}
		})
	}
}

func TestEncodeRangeIsLittleEndianDecimeters(t *testing.T) {
	for _, meters := range []int{50, 51, 999, 1852, 65535, 72703, 72704} {
		pkt := encode(t, ctRange, meters, 0)
		if got := binary.LittleEndian.Uint32(pkt[2:6]); got != uint32(meters*10) {
			t.Errorf("range %d encodes %d decimeters, want %d", meters, got, meters*10)
		}
	}
}

func TestEveryCommandHasDeclaredLayout(t *testing.T) {
	for ct := controlType(0); ct < ctMax; ct++ {
		set, ok := navicoCmds[ct]
		if ok != ct.transmittable() {
			t.Errorf("%v: in command table = %v, transmittable = %v", ct, ok, ct.transmittable())
			continue
		}
		if !ok {
			if _, err := encodeControl(ct, controlPayload{}); !errors.Is(err, errUnmappedControl) {
				t.Errorf("encodeControl(%v) error = %v, want errUnmappedControl", ct, err)
			}
			continue
		}
		pkt := encode(t, ct, 100, 1)
		if len(pkt) != set.size {
			t.Errorf("%v: packet is %d bytes, want %d", ct, len(pkt), set.size)
		}
		if len(pkt) < 2 || len(pkt) > 11 {
			t.Errorf("%v: packet length %d outside 2..11", ct, len(pkt))
		}
		if pkt[1] != cmdMarker {
			t.Errorf("%v: marker byte = %#x, want %#x", ct, pkt[1], cmdMarker)
		}
	}
}

// dispatchKey is what the radar firmware switches on: the command id, plus
// the sub command for the shared filter command.
func dispatchKey(pkt []byte) uint16 {
	if len(pkt) > 2 && pkt[0] == 0x06 {
		return uint16(pkt[0])<<8 | uint16(pkt[2])
	}
	return uint16(pkt[0]) << 8
}

func TestDispatchKeysAreUnique(t *testing.T) {
	seen := make(map[uint16]controlType)
	for ct := controlType(0); ct < ctMax; ct++ {
		if !ct.transmittable() {
			continue
		}
		key := dispatchKey(encode(t, ct, 100, 0))
		if other, ok := seen[key]; ok {
			t.Errorf("%v and %v share dispatch key %#04x", ct, other, key)
		}
		seen[key] = ct
	}
}

func TestPrepPacketChecksSize(t *testing.T) {
	if _, err := prepPacket(ctGain, []byte{1, 2}); err == nil {
		t.Error("prepPacket(ctGain) with a short payload succeeded, want a size error")
	}
	if _, err := prepPacket(ctTimedRun, nil); !errors.Is(err, errUnmappedControl) {
		t.Errorf("prepPacket(ctTimedRun) error = %v, want errUnmappedControl", err)
	}
}
