package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/multierr"
)

// navicoControl is one command session with a radar scanner. All fields are
// set by the constructor; callers must not use one session from two
// goroutines at the same time.
type navicoControl struct {
	name    string
	sender  packetSender
	log     diagLogger
	history *txHistory
}

func newNavicoControl(name string, sender packetSender, l diagLogger, h *txHistory) *navicoControl {
	return &navicoControl{
		name:    name,
		sender:  sender,
		log:     l,
		history: h,
	}
}

// openNavicoControl opens the transmit socket for radar name. On error the
// session does not exist and nothing is left open.
func openNavicoControl(ctx context.Context, name string, local, dest *net.UDPAddr,
	timeout time.Duration, l diagLogger, h *txHistory) (*navicoControl, error) {
	sender, err := openUDPSender(ctx, local, dest, timeout)
	if err != nil {
		l.Error(name, " ", err)
		return nil, err
	}
	l.Transmit(name, " transmit socket open")
	return newNavicoControl(name, sender, l, h), nil
}

func (c *navicoControl) close() error {
	err := c.sender.close()
	c.log.Transmit(c.name, " transmit socket closed")
	return err
}

func (c *navicoControl) logBinaryData(what string, data []byte) {
	c.log.Transmit(fmt.Sprintf("%s %s %d bytes: % X", c.name, what, len(data), data))
}

// transmitCmd sends one packet, no retries.
func (c *navicoControl) transmitCmd(what string, pkt []byte) error {
	if err := c.sender.send(pkt); err != nil {
		c.log.Error(fmt.Sprintf("unable to transmit command to %s (%s): %v", c.name, c.sender.destination(), err))
		return err
	}
	if c.log.enabled(logLevelTransmit) {
		c.logBinaryData("transmit", pkt)
	}
	if c.history != nil {
		c.history.add(what, pkt)
	}
	return nil
}

func (c *navicoControl) TxOff() error {
	c.log.Verbose(c.name, " transmit: turn off")
	return multierr.Combine(
		c.transmitCmd("tx off", cmdTxOffA[:]),
		c.transmitCmd("tx off", cmdTxOffB[:]),
	)
}

func (c *navicoControl) TxOn() error {
	c.log.Verbose(c.name, " transmit: turn on")
	return multierr.Combine(
		c.transmitCmd("tx on", cmdTxOnA[:]),
		c.transmitCmd("tx on", cmdTxOnB[:]),
	)
}

// StayAlive sends the keep alive burst. Only the outcome of the last packet
// is returned, earlier failures are logged by transmitCmd.
func (c *navicoControl) StayAlive() error {
	c.log.Transmit(c.name, " transmit: stay alive")

	_ = c.transmitCmd("stay alive", cmdStayAliveA[:])
	_ = c.transmitCmd("stay alive", cmdStayAliveB[:])
	_ = c.transmitCmd("stay alive", cmdStayAliveC[:])
	return c.transmitCmd("stay alive", cmdStayAliveD[:])
}

func (c *navicoControl) SetRange(meters int) error {
	p, err := mapControlValue(ctRange, meters, 0)
	if err != nil {
		return err
	}
	pkt, err := encodeControl(ctRange, p)
	if err != nil {
		return err
	}
	c.log.Verbose(fmt.Sprintf("%s transmit: range %d meters", c.name, meters))
	return c.transmitCmd(ctRange.String(), pkt)
}

// SetControlValue sends a control to the radar. Controls that only exist
// locally return errUnmappedControl without sending anything.
func (c *navicoControl) SetControlValue(ct controlType, value, autoValue int) error {
	if ct == ctRange {
		return c.SetRange(value)
	}
	p, err := mapControlValue(ct, value, autoValue)
	if err != nil {
		if errors.Is(err, errUnmappedControl) {
			c.log.Verbose(c.name, " ", ct, " is not a radar command")
		}
		return err
	}
	pkt, err := encodeControl(ct, p)
	if err != nil {
		c.log.Error(c.name, " ", err)
		return err
	}
	c.log.Verbose(fmt.Sprintf("%s %v: %d auto %d (sent %d)", c.name, ct, value, p.auto, p.value))
	return c.transmitCmd(ct.String(), pkt)
}
