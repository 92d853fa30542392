// Package probe pkg/probe/probe.go performs single TCP reachability checks
// and classifies their outcome.
package probe

import (
	"context"
	"errors"
	"log"
	"net"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/proxy"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

// contextDialer is the dialing surface the prober needs. Both net.Dialer and
// the SOCKS5 dialer from golang.org/x/net/proxy satisfy it.
type contextDialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Prober runs bounded TCP connect attempts. A zero-value Prober is not
// usable; construct with New or NewWithProxy.
type Prober struct {
	dialer   contextDialer
	resolver *net.Resolver

	// proxied disables local DNS resolution: a SOCKS5 upstream resolves
	// hostnames on its side.
	proxied bool
}

// New creates a prober that dials directly.
func New() *Prober {
	return &Prober{
		dialer:   &net.Dialer{},
		resolver: net.DefaultResolver,
	}
}

// NewWithProxy creates a prober that dials through a SOCKS5 proxy at addr.
func NewWithProxy(addr string) (*Prober, error) {
	d, err := proxy.SOCKS5("tcp", addr, nil, &net.Dialer{})
	if err != nil {
		return nil, err
	}

	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, errProxyDialer
	}

	return &Prober{
		dialer:   cd,
		resolver: net.DefaultResolver,
		proxied:  true,
	}, nil
}

// Check attempts one TCP connection to the target within timeout and returns
// a terminal result. It never returns an error: probe failures are result
// values, not exceptions. The connection is released on every path.
func (p *Prober) Check(ctx context.Context, target models.Target, timeout time.Duration) models.ProbeResult {
	start := time.Now()

	result := models.ProbeResult{
		Target:    target,
		CheckedAt: start,
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addr := target.Addr()

	// Resolve up front so DNS failures classify separately from connect
	// failures. IP literals and proxied probes skip this step.
	if !p.proxied && net.ParseIP(target.Host) == nil {
		addrs, err := p.resolver.LookupHost(ctx, target.Host)
		if err != nil || len(addrs) == 0 {
			result.Status = classifyResolveError(err)
			result.Error = errDetail(result.Status, err)

			return result
		}

		addr = models.JoinHostPort(addrs[0], target.Port)
	}

	conn, err := p.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		result.Status = classifyDialError(err)
		result.Error = errDetail(result.Status, err)

		return result
	}

	result.Status = models.StatusOpen
	result.Latency = time.Since(start)

	if err := conn.Close(); err != nil {
		log.Printf("Error closing probe connection to %s: %v", addr, err)
	}

	return result
}

func classifyResolveError(err error) models.Status {
	if err == nil {
		// Resolution succeeded but produced no addresses.
		return models.StatusDNSFail
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTimeout {
		return models.StatusTimeout
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.StatusTimeout
	}

	return models.StatusDNSFail
}

func classifyDialError(err error) models.Status {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return models.StatusTimeout
		}

		return models.StatusDNSFail
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.StatusTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.StatusTimeout
	}

	if isConnectionRefused(err) {
		return models.StatusClosed
	}

	return models.StatusError
}

// errDetail keeps the diagnostic string for ERROR results only; the other
// statuses are self-describing.
func errDetail(status models.Status, err error) string {
	if status != models.StatusError || err == nil {
		return ""
	}

	return err.Error()
}

// isConnectionRefused reports whether the peer actively rejected the
// connection. The string checks cover Windows and proxied dials, where the
// syscall error is not preserved.
func isConnectionRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "actively refused")
}
