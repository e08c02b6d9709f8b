package main

import (
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	log = *newLogger(zap.NewNop().Sugar(), 0)
	os.Exit(m.Run())
}

func newTestLogger(levels logLevel) (*logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return newLogger(zap.New(core).Sugar(), levels), logs
}

// recordingSender keeps every packet instead of sending it. failOn makes the
// n-th call (counting from 0) fail with the given error.
type recordingSender struct {
	sent   [][]byte
	calls  int
	failOn map[int]error
	closed bool
}

func (s *recordingSender) send(pkt []byte) error {
	call := s.calls
	s.calls++
	if s.closed {
		return errSessionClosed
	}
	if err, ok := s.failOn[call]; ok {
		return err
	}
	d := make([]byte, len(pkt))
	copy(d, pkt)
	s.sent = append(s.sent, d)
	return nil
}

func (s *recordingSender) close() error {
	s.closed = true
	return nil
}

func (s *recordingSender) destination() string {
	return "236.6.7.10:6680"
}

func newTestControl(levels logLevel) (*navicoControl, *recordingSender, *observer.ObservedLogs) {
	l, logs := newTestLogger(levels)
	sender := &recordingSender{}
	return newNavicoControl("test radar", sender, l, newTxHistory()), sender, logs
}
