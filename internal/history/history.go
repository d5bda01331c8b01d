package history

import "sync"

// Turn is one role-tagged message of the conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Memory is the append-only conversation log for the single active
// conversation. It only grows, except for an explicit full clear, and
// lives no longer than the process.
type Memory struct {
	mu    sync.RWMutex
	turns []Turn
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) AppendUser(content string) {
	m.append(Turn{Role: "user", Content: content})
}

func (m *Memory) AppendAssistant(content string) {
	m.append(Turn{Role: "assistant", Content: content})
}

func (m *Memory) append(t Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, t)
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
}

// All returns the turns in insertion order. The slice is a copy.
func (m *Memory) All() []Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.turns)
}
