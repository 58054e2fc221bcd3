package property

// Map is an ordered string-keyed dictionary of Values. Iteration order is
// insertion order; re-setting an existing key updates its value in place
// without moving it to the end.
type Map struct {
	order []string
	data  map[string]Value
}

// NewMap returns an empty property map.
func NewMap() Map {
	return Map{data: make(map[string]Value)}
}

// Set inserts or updates the value for key.
func (m *Map) Set(key string, v Value) {
	if m.data == nil {
		m.data = make(map[string]Value)
	}
	if _, exists := m.data[key]; !exists {
		m.order = append(m.order, key)
	}
	m.data[key] = v
}

// Get returns the value stored under key and true, or the null value and
// false if key is absent.
func (m Map) Get(key string) (Value, bool) {
	v, ok := m.data[key]
	if !ok {
		return Null(), false
	}
	return v, true
}

// Int64 is a typed accessor: it returns (value, true) only if key is
// present and holds an integer; otherwise (0, false).
func (m Map) Int64(key string) (int64, bool) {
	v, ok := m.data[key]
	if !ok {
		return 0, false
	}
	return v.Int64()
}

// Float64 is a typed accessor for floating-point values.
func (m Map) Float64(key string) (float64, bool) {
	v, ok := m.data[key]
	if !ok {
		return 0, false
	}
	return v.Float64()
}

// String is a typed accessor for string values.
func (m Map) String(key string) (string, bool) {
	v, ok := m.data[key]
	if !ok {
		return "", false
	}
	return v.String()
}

// Has reports whether key is present, regardless of its value's type.
func (m Map) Has(key string) bool {
	_, ok := m.data[key]
	return ok
}

// Delete removes key, if present.
func (m *Map) Delete(key string) {
	if _, ok := m.data[key]; !ok {
		return
	}
	delete(m.data, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m Map) Len() int { return len(m.order) }

// Keys returns the keys in insertion order. The returned slice is owned by
// the caller.
func (m Map) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Clone returns a deep copy of m; the copy shares no mutable state with m.
func (m Map) Clone() Map {
	out := NewMap()
	for _, k := range m.order {
		out.Set(k, m.data[k])
	}
	return out
}

// Equal reports whether m and other contain the same keys mapped to equal
// values (per Value.Equal), independent of insertion order. Two null
// values under the same key are NOT equal, per Value.Equal's rule, so
// two maps that each hold a null under the same key compare unequal.
func (m Map) Equal(other Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, k := range m.order {
		v, ok := other.data[k]
		if !ok {
			return false
		}
		if !m.data[k].Equal(v) {
			return false
		}
	}
	return true
}
