package store

// Hash maps arbitrary string keys to values.
// Keys are reported in first-insertion order; overwriting a key keeps its
// original position. Any string is a valid key, including method names.
type Hash struct {
	values map[string]any
	order  []string
}

// NewHash creates an empty Hash.
func NewHash() *Hash {
	return &Hash{values: make(map[string]any)}
}

// Set stores value under key, replacing any previous value.
func (h *Hash) Set(key string, value any) {
	if h.values == nil {
		h.values = make(map[string]any)
	}
	if _, exists := h.values[key]; !exists {
		h.order = append(h.order, key)
	}
	h.values[key] = value
}

// Get returns the value stored under key.
func (h *Hash) Get(key string) (any, bool) {
	if h == nil {
		return nil, false
	}
	v, ok := h.values[key]
	return v, ok
}

// GetString returns the value stored under key when it is a string.
// Missing keys and non-string values yield "".
func (h *Hash) GetString(key string) string {
	v, _ := h.Get(key)
	s, _ := v.(string)
	return s
}

// Keys returns every key that has been set, in first-insertion order.
func (h *Hash) Keys() []string {
	if h == nil {
		return nil
	}
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Len returns the number of distinct keys.
func (h *Hash) Len() int {
	if h == nil {
		return 0
	}
	return len(h.order)
}

// Reset removes every key.
func (h *Hash) Reset() {
	if h == nil {
		return
	}
	clear(h.values)
	h.order = h.order[:0]
}
