package view

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contacts/internal/contact"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// execBatch executes a tea.Cmd, handling both single commands and batch
// commands. It returns all resulting messages. Spinner ticks are skipped
// to avoid waiting on the tick timer.
func execBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			if c == nil {
				continue
			}
			result := c()
			if _, isTick := result.(spinner.TickMsg); !isTick {
				msgs = append(msgs, result)
			}
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// stubFetcher implements Fetcher for tests. Successive calls return
// successive results; the last result repeats.
type stubFetcher struct {
	mu      sync.Mutex
	results []stubResult
	calls   int
}

type stubResult struct {
	contacts []contact.Contact
	err      error
}

func (s *stubFetcher) Fetch(context.Context) ([]contact.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	if i < 0 {
		return nil, nil
	}
	return s.results[i].contacts, s.results[i].err
}

func (s *stubFetcher) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func sampleContacts() []contact.Contact {
	return []contact.Contact{
		{
			ID: 2, Name: "Bob", Phone: "555-0102", Email: "bob@example.com", Website: "bob.dev",
			Address: contact.Address{Suite: "Apt. 2", Street: "Oak St", City: "Springfield"},
		},
		{
			ID: 1, Name: "Alice", Phone: "555-0101", Email: "alice@example.com", Website: "alice.dev",
			Address: contact.Address{Suite: "Suite 1", Street: "Elm St", City: "Shelbyville"},
		},
		{
			ID: 3, Name: "Carol", Phone: "555-0103", Email: "carol@example.com", Website: "carol.dev",
			Address: contact.Address{Suite: "Unit 3", Street: "Pine St", City: "Ogdenville"},
		},
	}
}

// loadedModel returns a sized Model that has received sampleContacts.
func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel()
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 60})
	return update(t, m, ContactsLoadedMsg{Contacts: sampleContacts()})
}

// update applies msg and returns the concrete Model.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}
