package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

func TestRegistry_AddAndList(t *testing.T) {
	r := New()

	got, err := r.Add("web", "example.com", 443)
	require.NoError(t, err)
	assert.Equal(t, models.Target{Name: "web", Host: "example.com", Port: 443}, got)

	targets := r.Snapshot()
	require.Len(t, targets, 1)
	assert.Equal(t, got, targets[0])
}

func TestRegistry_AddValidation(t *testing.T) {
	tests := []struct {
		name   string
		target struct {
			name string
			host string
			port int
		}
	}{
		{
			name: "empty name",
			target: struct {
				name string
				host string
				port int
			}{"", "example.com", 80},
		},
		{
			name: "empty host",
			target: struct {
				name string
				host string
				port int
			}{"web", "   ", 80},
		},
		{
			name: "port zero",
			target: struct {
				name string
				host string
				port int
			}{"web", "example.com", 0},
		},
		{
			name: "port too large",
			target: struct {
				name string
				host string
				port int
			}{"web", "example.com", 65536},
		},
		{
			name: "negative port",
			target: struct {
				name string
				host string
				port int
			}{"web", "example.com", -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()

			_, err := r.Add(tt.target.name, tt.target.host, tt.target.port)
			require.ErrorIs(t, err, ErrInvalidTarget)

			// Registry must be unchanged after a failed add.
			assert.Empty(t, r.Snapshot())
		})
	}
}

func TestRegistry_DuplicateNamesGetSuffix(t *testing.T) {
	r := New()

	first, err := r.Add("mc", "play.example.com", 25565)
	require.NoError(t, err)
	assert.Equal(t, "mc", first.Name)

	second, err := r.Add("mc", "backup.example.com", 25565)
	require.NoError(t, err)
	assert.Equal(t, "mc (2)", second.Name)

	third, err := r.Add("mc", "third.example.com", 25565)
	require.NoError(t, err)
	assert.Equal(t, "mc (3)", third.Name)
}

func TestRegistry_Remove(t *testing.T) {
	r := New()

	_, err := r.Add("a", "one.example.com", 80)
	require.NoError(t, err)
	_, err = r.Add("b", "two.example.com", 80)
	require.NoError(t, err)
	_, err = r.Add("c", "three.example.com", 80)
	require.NoError(t, err)

	require.NoError(t, r.Remove("b"))

	targets := r.Snapshot()
	require.Len(t, targets, 2)
	assert.Equal(t, "a", targets[0].Name)
	assert.Equal(t, "c", targets[1].Name)

	err = r.Remove("b")
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestRegistry_SnapshotIsolation(t *testing.T) {
	r := New()

	_, err := r.Add("a", "one.example.com", 80)
	require.NoError(t, err)

	snap := r.Snapshot()

	_, err = r.Add("b", "two.example.com", 80)
	require.NoError(t, err)
	require.NoError(t, r.Remove("a"))

	// Mutations after the snapshot must not affect it.
	require.Len(t, snap, 1)
	assert.Equal(t, "a", snap[0].Name)
}

func TestRegistry_Replace(t *testing.T) {
	r := New()

	_, err := r.Add("old", "old.example.com", 22)
	require.NoError(t, err)

	r.Replace([]models.Target{
		{Name: "web", Host: "example.com", Port: 443},
		{Name: "", Host: "bad.example.com", Port: 80},    // skipped
		{Name: "ssh", Host: "example.com", Port: 70000},  // skipped
		{Name: "web", Host: "mirror.example.com", Port: 443},
	})

	targets := r.Snapshot()
	require.Len(t, targets, 2)
	assert.Equal(t, "web", targets[0].Name)
	assert.Equal(t, "web (2)", targets[1].Name)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			_, _ = r.Add("t", "example.com", 80)
		}()

		go func() {
			defer wg.Done()
			_ = r.Snapshot()
		}()
	}

	wg.Wait()

	assert.Equal(t, 50, r.Len())
}
