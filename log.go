package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type logLevel uint

const (
	logLevelVerbose logLevel = 1 << iota
	logLevelTransmit
)

// diagLogger is what the radar session needs from a log sink. Logging never
// fails the caller.
type diagLogger interface {
	Error(a ...interface{})
	Verbose(a ...interface{})
	Transmit(a ...interface{})
	enabled(l logLevel) bool
}

type logger struct {
	logger *zap.SugaredLogger
	levels logLevel
}

var log logger

func newLogger(z *zap.SugaredLogger, levels logLevel) *logger {
	return &logger{logger: z, levels: levels}
}

func (l *logger) enabled(level logLevel) bool {
	return l.levels&level != 0
}

func (l *logger) withStatusCleared(f func()) {
	if statusLog.isRealtime() {
		statusLog.mutex.Lock()
		statusLog.clearStatusLine()
		f()
		statusLog.mutex.Unlock()
		statusLog.print()
		return
	}
	f()
}

func (l *logger) Print(a ...interface{}) {
	l.withStatusCleared(func() { l.logger.Info(a...) })
}

func (l *logger) Debug(a ...interface{}) {
	l.withStatusCleared(func() { l.logger.Debug(a...) })
}

func (l *logger) Error(a ...interface{}) {
	l.withStatusCleared(func() { l.logger.Error(a...) })
}

// PrintStatusLog is called by the status bar with its own lock held.
func (l *logger) PrintStatusLog(a ...interface{}) {
	l.logger.Info(a...)
}

// Verbose logs only when verbose radar logging is on.
func (l *logger) Verbose(a ...interface{}) {
	if l.enabled(logLevelVerbose) {
		l.Print(a...)
	}
}

// Transmit logs only when transmit logging is on.
func (l *logger) Transmit(a ...interface{}) {
	if l.enabled(logLevelTransmit) {
		l.Print(a...)
	}
}

func (l *logger) Fatal(a ...interface{}) {
	statusLog.stopPeriodicPrint()
	keyboard.deinit()
	l.logger.Fatal(a...)
}

func (l *logger) init(debug, quiet bool, levels logLevel) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	if quiet {
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	z, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "can't initialize logger:", err)
		os.Exit(1)
	}
	l.logger = z.Sugar()
	l.levels = levels
}

func (l *logger) sync() {
	if l.logger != nil {
		_ = l.logger.Sync()
	}
}
