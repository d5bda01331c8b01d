package history

import "testing"

func TestMemoryAppendAllClear(t *testing.T) {
	m := NewMemory()

	m.AppendUser("hello")
	m.AppendAssistant("hi")
	m.AppendUser("follow-up")
	m.AppendAssistant("answer")

	turns := m.All()
	if len(turns) != 4 {
		t.Fatalf("unexpected length: %d", len(turns))
	}
	if turns[0].Role != "user" || turns[0].Content != "hello" {
		t.Fatalf("unexpected turns[0]: %+v", turns[0])
	}
	if turns[1].Role != "assistant" || turns[1].Content != "hi" {
		t.Fatalf("unexpected turns[1]: %+v", turns[1])
	}
	if turns[3].Role != "assistant" || turns[3].Content != "answer" {
		t.Fatalf("unexpected turns[3]: %+v", turns[3])
	}

	// Ensure copy semantics (modifying returned slice does not affect internal state)
	turns[0] = Turn{Role: "user", Content: "mutated"}
	if m.All()[0].Content != "hello" {
		t.Fatalf("internal state mutated via returned slice")
	}

	m.Clear()
	if m.Len() != 0 {
		t.Fatalf("clear did not empty the memory")
	}
	m.AppendUser("fresh start")
	if got := m.All(); len(got) != 1 || got[0].Content != "fresh start" {
		t.Fatalf("append after clear broken: %+v", got)
	}
}
