package f1

import (
	"fmt"
	"net"
	"time"
)

// datagramBufSize bounds a single receive. The largest registered packet is
// the 1464-byte motion packet; anything beyond the schema size in a datagram
// is ignored by the codec.
const datagramBufSize = 2048

// ListenerConfig holds the UDP socket settings for a Listener.
type ListenerConfig struct {
	// Host is the interface to bind, empty for all interfaces.
	Host string
	// Port is the UDP port to bind, 0 for an ephemeral port.
	Port int
	// RcvBuf is the kernel receive buffer size in bytes, 0 to keep the
	// system default.
	RcvBuf int
}

// Listener owns one bound UDP socket and turns datagrams into decoded
// packets one at a time.
type Listener struct {
	conn *net.UDPConn
	reg  *Registry
	buf  []byte
}

// Listen binds a UDP socket and returns a listener over it. A bind failure
// is unrecoverable and is returned to the caller, it is never retried.
func Listen(cfg ListenerConfig, reg *Registry) (*Listener, error) {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("resolving listen address: %w", err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("binding udp socket: %w", err)
	}
	if cfg.RcvBuf > 0 {
		// A rejected buffer size is not fatal, the socket still works
		// with the system default.
		_ = conn.SetReadBuffer(cfg.RcvBuf)
	}
	return &Listener{conn: conn, reg: reg, buf: make([]byte, datagramBufSize)}, nil
}

// ReceiveOne blocks until one datagram arrives and decodes it. Decode
// failures are per-datagram: the listener stays usable and the caller
// decides whether to skip or abort.
func (l *Listener) ReceiveOne() (Packet, error) {
	n, _, err := l.conn.ReadFromUDP(l.buf)
	if err != nil {
		return nil, err
	}
	return l.reg.Decode(l.buf[:n])
}

// SetReadDeadline bounds the next ReceiveOne call. Callers polling under a
// context use short deadlines to notice cancellation.
func (l *Listener) SetReadDeadline(t time.Time) error {
	return l.conn.SetReadDeadline(t)
}

// LocalAddr returns the bound address, including the resolved port when an
// ephemeral port was requested.
func (l *Listener) LocalAddr() net.Addr {
	return l.conn.LocalAddr()
}

// Close releases the socket. Safe to call on a nil listener.
func (l *Listener) Close() error {
	if l == nil || l.conn == nil {
		return nil
	}
	return l.conn.Close()
}
