package alarms

import (
	"sync"

	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
)

// Registry holds the ordered set of user-defined alarms.
type Registry struct {
	// alarms is the ordered alarm sequence.
	alarms []domain.Alarm
	// mu protects concurrent access to alarms.
	mu sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return new(Registry)
}

// Add appends an armed alarm and returns its index.
func (r *Registry) Add(at domain.TimeOfDay) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.alarms = append(r.alarms, domain.New(at))

	return len(r.alarms) - 1
}

// Edit replaces the time of the alarm at index, keeping its armed flag.
func (r *Registry) Edit(index int, at domain.TimeOfDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkIndex(index); err != nil {
		return err
	}

	r.alarms[index].Time = at

	return nil
}

// SetArmed sets the armed flag of the alarm at index.
func (r *Registry) SetArmed(index int, armed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkIndex(index); err != nil {
		return err
	}

	r.alarms[index].Armed = armed

	return nil
}

// Disarm is SetArmed(index, false).
func (r *Registry) Disarm(index int) error {
	return r.SetArmed(index, false)
}

// Toggle flips the armed flag of the alarm at index and returns the new value.
func (r *Registry) Toggle(index int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkIndex(index); err != nil {
		return false, err
	}

	r.alarms[index].Armed = !r.alarms[index].Armed

	return r.alarms[index].Armed, nil
}

// DisarmIfDue disarms the alarm at index only if it is still armed and still
// set to at. It returns the alarm as it was before disarming and whether it
// was disarmed.
func (r *Registry) DisarmIfDue(index int, at domain.TimeOfDay) (domain.Alarm, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.alarms) {
		return domain.Alarm{}, false
	}

	current := r.alarms[index]
	if !current.Due(at) {
		return current, false
	}

	r.alarms[index].Armed = false

	return current, true
}

// Snapshot returns a copy of every alarm with its index, in registry order.
func (r *Registry) Snapshot() []domain.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]domain.Entry, len(r.alarms))
	for i, a := range r.alarms {
		entries[i] = domain.Entry{
			Index: i,
			Alarm: a,
		}
	}

	return entries
}

// Len returns the number of alarms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.alarms)
}

// checkIndex must be called with mu held.
func (r *Registry) checkIndex(index int) error {
	if index < 0 || index >= len(r.alarms) {
		return &domain.IndexError{
			Index: index,
			Len:   len(r.alarms),
		}
	}

	return nil
}
