// Package contact defines the contact directory model and fetches it
// through the gateway.
package contact

import (
	"fmt"
	"slices"
	"strings"
)

// Address is the postal part of a contact.
type Address struct {
	Suite  string `json:"suite"`
	Street string `json:"street"`
	City   string `json:"city"`
}

// String formats the address as "<suite> <street>, <city>".
func (a Address) String() string {
	head := strings.TrimSpace(a.Suite + " " + a.Street)
	switch {
	case head == "":
		return a.City
	case a.City == "":
		return head
	}
	return fmt.Sprintf("%s, %s", head, a.City)
}

// Contact is one directory entry. Fields are never mutated after fetch.
type Contact struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Website string  `json:"website"`
	Address Address `json:"address"`
}

// SortByName returns a copy of contacts ordered ascending by Name using
// ordinal comparison. Ties keep their input order.
func SortByName(contacts []Contact) []Contact {
	sorted := slices.Clone(contacts)
	slices.SortStableFunc(sorted, func(a, b Contact) int {
		return strings.Compare(a.Name, b.Name)
	})
	return sorted
}

// IndexOf returns the position of the contact with id, or -1.
func IndexOf(contacts []Contact, id int) int {
	return slices.IndexFunc(contacts, func(c Contact) bool { return c.ID == id })
}
