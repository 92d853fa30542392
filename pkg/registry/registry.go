// Package registry pkg/registry/registry.go maintains the ordered set of
// targets the engine probes. All mutation and snapshot operations share one
// exclusive lock; none of them touch the network.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

// Registry is a thread-safe, insertion-ordered collection of targets.
// Names are kept unique within a registry; adding a duplicate name appends a
// numeric suffix the way the original target list does ("web", "web (2)").
type Registry struct {
	mu      sync.Mutex
	targets []models.Target
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		targets: make([]models.Target, 0),
	}
}

// Add validates and appends a target, returning the stored copy. The stored
// name may differ from the requested one when a suffix was needed to keep
// names unique.
func (r *Registry) Add(name, host string, port int) (models.Target, error) {
	name = strings.TrimSpace(name)
	host = strings.TrimSpace(host)

	if err := validate(name, host, port); err != nil {
		return models.Target{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t := models.Target{
		Name: r.uniqueName(name),
		Host: host,
		Port: port,
	}

	r.targets = append(r.targets, t)

	return t, nil
}

// Remove deletes the target with the given name. Order of the remaining
// targets is preserved.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.targets {
		if t.Name == name {
			r.targets = append(r.targets[:i], r.targets[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrTargetNotFound, name)
}

// Snapshot returns a copy of the current targets in insertion order. The
// copy is safe to iterate while the registry is mutated concurrently.
func (r *Registry) Snapshot() []models.Target {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Target, len(r.targets))
	copy(out, r.targets)

	return out
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.targets)
}

// Replace swaps the full target list, used when loading persisted state.
// Entries that fail validation are skipped rather than failing the load.
func (r *Registry) Replace(targets []models.Target) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.targets = r.targets[:0]

	for _, t := range targets {
		name := strings.TrimSpace(t.Name)
		host := strings.TrimSpace(t.Host)

		if validate(name, host, t.Port) != nil {
			continue
		}

		r.targets = append(r.targets, models.Target{
			Name: r.uniqueName(name),
			Host: host,
			Port: t.Port,
		})
	}
}

// uniqueName returns name, or name with the lowest free " (n)" suffix when
// the name is already taken. Caller must hold r.mu.
func (r *Registry) uniqueName(name string) string {
	if !r.nameTaken(name) {
		return name
	}

	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !r.nameTaken(candidate) {
			return candidate
		}
	}
}

func (r *Registry) nameTaken(name string) bool {
	for _, t := range r.targets {
		if t.Name == name {
			return true
		}
	}

	return false
}

func validate(name, host string, port int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTarget)
	}

	if host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidTarget)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: port must be between 1 and 65535, got %d", ErrInvalidTarget, port)
	}

	return nil
}
