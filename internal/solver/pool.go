package solver

// MapPool keeps cleared value maps for reuse so repeated searches on one
// engine do not reallocate their buckets. A pool belongs to a single engine and
// is not safe for concurrent use.
type MapPool struct {
	free []ValueMap
}

// Get returns an empty map, reusing a returned one when available.
func (p *MapPool) Get() ValueMap {
	if n := len(p.free); n > 0 {
		m := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return m
	}
	return make(ValueMap)
}

// Put clears m and keeps it for a later Get. m must not be read afterwards.
func (p *MapPool) Put(m ValueMap) {
	if m == nil {
		return
	}
	clear(m)
	p.free = append(p.free, m)
}

// Len reports how many maps are waiting for reuse.
func (p *MapPool) Len() int {
	return len(p.free)
}
