package dataset

import "sync"

// Holder owns the single active table. Load swaps it atomically: on any
// failure the previously active table stays in place.
type Holder struct {
	mu    sync.RWMutex
	table *Table
}

func NewHolder() *Holder {
	return &Holder{}
}

func (h *Holder) Load(path, name string) (*Table, error) {
	t, err := Load(path, name)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.table = t
	h.mu.Unlock()
	return t, nil
}

// Table returns the active table, or nil when nothing is loaded.
func (h *Holder) Table() *Table {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.table
}

func (h *Holder) Summary() (Context, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.table == nil {
		return Context{}, ErrNotLoaded
	}
	return NewContext(h.table), nil
}
