package daemon

// Selector narrows an iteration to a subset of the cluster's daemons.
// The zero value (or a nil pointer) matches every daemon.
type Selector struct {
	Kind  Kind // empty matches any kind
	ID    int  // matched only when HasID is set
	HasID bool
}

// Matches reports whether d passes the selector.
func (s *Selector) Matches(d Daemon) bool {
	if s == nil {
		return true
	}
	if s.Kind != "" && s.Kind != d.Kind {
		return false
	}
	if s.HasID && s.ID != d.ID {
		return false
	}
	return true
}

// Iter walks daemons in configuration order: all MDS entries first,
// then all OSD entries. It is one-shot; create a new Iter to walk again.
type Iter struct {
	daemons []Daemon
	sel     *Selector
	pos     int
}

// NewIter returns an iterator over daemons that pass sel.
func NewIter(daemons []Daemon, sel *Selector) *Iter {
	return &Iter{daemons: daemons, sel: sel}
}

// Next returns the next matching daemon. The second result is false
// once the sequence is exhausted.
func (it *Iter) Next() (Daemon, bool) {
	for it.pos < len(it.daemons) {
		d := it.daemons[it.pos]
		it.pos++
		if it.sel.Matches(d) {
			return d, true
		}
	}
	return Daemon{}, false
}
