package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

const defaultSendTimeout = 250 * time.Millisecond

var (
	errSocketCreate  = errors.New("unable to create UDP sending socket")
	errBind          = errors.New("unable to bind UDP sending socket")
	errTransmit      = errors.New("unable to transmit command")
	errSessionClosed = errors.New("transmit socket closed")
)

// packetSender delivers one datagram per call to the radar.
type packetSender interface {
	send(pkt []byte) error
	close() error
	destination() string
}

// udpSender owns the command socket of one radar. Everything is set once in
// openUDPSender, only conn is cleared by close.
type udpSender struct {
	conn    net.PacketConn
	local   net.Addr
	dest    *net.UDPAddr
	timeout time.Duration
}

func reuseAddrControl(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	if sockErr != nil {
		return fmt.Errorf("%w: SO_REUSEADDR: %v", errSocketCreate, sockErr)
	}
	return nil
}

// openUDPSender creates the socket, enables address reuse and binds it to the
// given local interface address. A failure leaves nothing open.
func openUDPSender(ctx context.Context, local, dest *net.UDPAddr, timeout time.Duration) (*udpSender, error) {
	if dest == nil {
		return nil, fmt.Errorf("%w: no radar address", errSocketCreate)
	}
	if local == nil {
		local = &net.UDPAddr{IP: net.IPv4zero}
	}
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	lc := net.ListenConfig{Control: reuseAddrControl}
	conn, err := lc.ListenPacket(ctx, "udp4", local.String())
	if err != nil {
		if errors.Is(err, errSocketCreate) {
			return nil, err
		}
		return nil, fmt.Errorf("%w %v: %v", errBind, local, err)
	}

	return &udpSender{
		conn:    conn,
		local:   conn.LocalAddr(),
		dest:    dest,
		timeout: timeout,
	}, nil
}

func (s *udpSender) send(pkt []byte) error {
	if s.conn == nil {
		return errSessionClosed
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
		return fmt.Errorf("%w: %v", errTransmit, err)
	}
	n, err := s.conn.WriteTo(pkt, s.dest)
	if err != nil {
		return fmt.Errorf("%w: %v", errTransmit, err)
	}
	if n < len(pkt) {
		return fmt.Errorf("%w: short write %d of %d bytes", errTransmit, n, len(pkt))
	}
	return nil
}

func (s *udpSender) close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *udpSender) destination() string {
	return s.dest.String()
}

// emulatorSender stands in for the radar when no scanner is attached. It
// logs every packet and sends nothing.
type emulatorSender struct {
	dest   string
	log    *logger
	closed bool
}

func (s *emulatorSender) send(pkt []byte) error {
	if s.closed {
		return errSessionClosed
	}
	if s.log != nil {
		s.log.Print(fmt.Sprintf("emulator %s %d bytes: % X", s.dest, len(pkt), pkt))
	}
	return nil
}

func (s *emulatorSender) close() error {
	s.closed = true
	return nil
}

func (s *emulatorSender) destination() string {
	return s.dest + " (emulator)"
}
