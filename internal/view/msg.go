// Package view implements the contact list terminal UI: an explicit load
// state, a single-card selection, and pure card rendering.
package view

import (
	"context"
	"errors"

	"github.com/smileynet/contacts/internal/contact"
	"github.com/smileynet/contacts/internal/gateway"
)

// LoadKind tags the variant held by a LoadState.
type LoadKind int

const (
	Loading LoadKind = iota // Fetch in flight; nothing to show yet.
	Loaded                  // Collection available.
	Failed                  // Fetch failed; Reason explains why.
)

func (k LoadKind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadState is the tagged variant {Loading, Loaded(collection), Failed(reason)}.
// Construct it with LoadingState, LoadedState or FailedState.
type LoadState struct {
	kind     LoadKind
	contacts []contact.Contact
	err      error
}

// LoadingState returns the initial state.
func LoadingState() LoadState {
	return LoadState{kind: Loading}
}

// LoadedState returns a Loaded state holding contacts sorted by name.
func LoadedState(contacts []contact.Contact) LoadState {
	return LoadState{kind: Loaded, contacts: contact.SortByName(contacts)}
}

// FailedState returns a Failed state carrying err.
func FailedState(err error) LoadState {
	return LoadState{kind: Failed, err: err}
}

// Kind returns the active variant.
func (s LoadState) Kind() LoadKind { return s.kind }

// Contacts returns the collection; nil unless Loaded.
func (s LoadState) Contacts() []contact.Contact { return s.contacts }

// Err returns the failure; nil unless Failed.
func (s LoadState) Err() error { return s.err }

// Selection is the identifier of the single expanded contact, or none.
type Selection struct {
	id    int
	valid bool
}

// Selected returns a Selection holding id.
func Selected(id int) Selection {
	return Selection{id: id, valid: true}
}

// ID returns the selected identifier and whether one is set.
func (s Selection) ID() (int, bool) { return s.id, s.valid }

// Is reports whether id is the expanded contact.
func (s Selection) Is(id int) bool { return s.valid && s.id == id }

// Toggle collapses id if it is already expanded, otherwise expands it
// (collapsing any other).
func (s Selection) Toggle(id int) Selection {
	if s.Is(id) {
		return Selection{}
	}
	return Selected(id)
}

// FailureReason returns the text shown to the user for a fetch error.
// Rejections show the server's message verbatim.
func FailureReason(err error) string {
	if err == nil {
		return ""
	}
	var re *gateway.RejectedError
	if errors.As(err, &re) {
		return re.Message
	}
	var te *gateway.TransportError
	if errors.As(err, &te) {
		return te.Error()
	}
	return err.Error()
}

// Fetcher loads the contact collection.
type Fetcher interface {
	Fetch(ctx context.Context) ([]contact.Contact, error)
}

// --- tea.Msg types ---

// ContactsLoadedMsg carries the result of a Fetcher.Fetch call.
type ContactsLoadedMsg struct {
	Contacts []contact.Contact
	Err      error
}

// RefreshMsg asks the model to reload the collection.
type RefreshMsg struct{}
