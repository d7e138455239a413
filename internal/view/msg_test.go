package view

import (
	"errors"
	"fmt"
	"testing"

	"github.com/smileynet/contacts/internal/contact"
	"github.com/smileynet/contacts/internal/gateway"
)

func TestLoadState_Variants(t *testing.T) {
	if got := LoadingState().Kind(); got != Loading {
		t.Errorf("LoadingState kind = %v, want loading", got)
	}

	loaded := LoadedState([]contact.Contact{{ID: 2, Name: "Bob"}, {ID: 1, Name: "Alice"}})
	if loaded.Kind() != Loaded {
		t.Errorf("LoadedState kind = %v, want loaded", loaded.Kind())
	}
	if loaded.Err() != nil {
		t.Errorf("loaded Err() = %v, want nil", loaded.Err())
	}
	if cs := loaded.Contacts(); len(cs) != 2 || cs[0].Name != "Alice" {
		t.Errorf("loaded contacts = %+v, want sorted with Alice first", cs)
	}

	boom := errors.New("boom")
	failed := FailedState(boom)
	if failed.Kind() != Failed {
		t.Errorf("FailedState kind = %v, want failed", failed.Kind())
	}
	if !errors.Is(failed.Err(), boom) {
		t.Errorf("failed Err() = %v, want boom", failed.Err())
	}
	if failed.Contacts() != nil {
		t.Errorf("failed contacts = %v, want nil", failed.Contacts())
	}
}

func TestLoadKind_String(t *testing.T) {
	tests := map[LoadKind]string{Loading: "loading", Loaded: "loaded", Failed: "failed", LoadKind(9): "unknown"}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("LoadKind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestSelection_ToggleExpandsOnlyOne(t *testing.T) {
	// Given: contact 1 expanded
	sel := Selection{}.Toggle(1)

	// When: contact 2 is toggled
	sel = sel.Toggle(2)

	// Then: only 2 is expanded
	if sel.Is(1) {
		t.Error("contact 1 should be collapsed")
	}
	if !sel.Is(2) {
		t.Error("contact 2 should be expanded")
	}
}

func TestSelection_ToggleSameCollapses(t *testing.T) {
	sel := Selection{}.Toggle(7).Toggle(7)

	if _, ok := sel.ID(); ok {
		t.Error("toggling the expanded contact should leave nothing expanded")
	}
	if sel.Is(7) {
		t.Error("contact 7 should be collapsed")
	}
}

func TestSelection_ZeroValueIsNone(t *testing.T) {
	var sel Selection
	if sel.Is(0) {
		t.Error("zero Selection must not match id 0")
	}
	if _, ok := sel.ID(); ok {
		t.Error("zero Selection should report no id")
	}
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "rejected shows message verbatim",
			err:  fmt.Errorf("contact: fetching x: %w", &gateway.RejectedError{Status: 400, Message: "bad request"}),
			want: "bad request",
		},
		{
			name: "transport is generic",
			err:  fmt.Errorf("contact: fetching x: %w", &gateway.TransportError{Status: 500}),
			want: "request failed with status 500",
		},
		{name: "other", err: errors.New("dial tcp: refused"), want: "dial tcp: refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FailureReason(tt.err); got != tt.want {
				t.Errorf("FailureReason() = %q, want %q", got, tt.want)
			}
		})
	}
}
