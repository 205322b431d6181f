package providers

import (
	"context"
	"log"
	"net"
	"time"
)

// TCPProbe reports the network as online when a TCP connection to Addr can
// be opened within Timeout.
type TCPProbe struct {
	Addr    string
	Timeout time.Duration
}

// Online implements weather.OnlineChecker.
func (p TCPProbe) Online(ctx context.Context) bool {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", p.Addr)
	if err != nil {
		log.Printf("DEBUG: connectivity probe %s failed: %v", p.Addr, err)
		return false
	}
	conn.Close()
	return true
}
