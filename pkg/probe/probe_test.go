package probe

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

func testTarget(t *testing.T, addr string) models.Target {
	t.Helper()

	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return models.Target{Name: "test", Host: host, Port: port}
}

func TestProber_Check_Open(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	p := New()
	result := p.Check(context.Background(), testTarget(t, ln.Addr().String()), 2*time.Second)

	assert.Equal(t, models.StatusOpen, result.Status)
	assert.GreaterOrEqual(t, result.Latency, time.Duration(0))
	assert.Empty(t, result.Error)
	assert.False(t, result.CheckedAt.IsZero())
}

func TestProber_Check_Closed(t *testing.T) {
	// Grab a port the kernel considers free, then close the listener so a
	// connect attempt gets refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	target := testTarget(t, ln.Addr().String())
	require.NoError(t, ln.Close())

	p := New()
	result := p.Check(context.Background(), target, 2*time.Second)

	assert.Equal(t, models.StatusClosed, result.Status)
	assert.Zero(t, result.Latency)
}

func TestProber_Check_DNSFail(t *testing.T) {
	p := New()

	target := models.Target{Name: "bad", Host: "host.invalid", Port: 80}
	result := p.Check(context.Background(), target, 2*time.Second)

	assert.Equal(t, models.StatusDNSFail, result.Status)
	assert.Zero(t, result.Latency)
}

func TestProber_Check_Timeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	p := New()

	// A deadline this short cannot complete a handshake.
	result := p.Check(context.Background(), testTarget(t, ln.Addr().String()), time.Nanosecond)

	assert.Equal(t, models.StatusTimeout, result.Status)
}

func TestProber_Check_Cancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New()
	result := p.Check(ctx, testTarget(t, ln.Addr().String()), 2*time.Second)

	// A cancelled probe still yields a terminal, non-OPEN result; the
	// scheduler discards it.
	assert.NotEqual(t, models.StatusOpen, result.Status)
}

func TestClassifyDialError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.Status
	}{
		{
			name: "dns not found",
			err:  &net.DNSError{Err: "no such host", Name: "host.invalid", IsNotFound: true},
			want: models.StatusDNSFail,
		},
		{
			name: "dns timeout",
			err:  &net.DNSError{Err: "i/o timeout", Name: "slow.example.com", IsTimeout: true},
			want: models.StatusTimeout,
		},
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: models.StatusTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyDialError(tt.err))
		})
	}
}
