package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/smileynet/contacts/internal/contact"
)

// Title is the heading shown above the cards.
const Title = "Contact List"

// cardChrome is the horizontal space taken by a card's border and padding.
const cardChrome = 4

// cardSpan is the half-open line range [start, end) a card occupies in the
// rendered body.
type cardSpan struct {
	start, end int
}

// field is one labelled line of a card.
type field struct {
	label string
	value string
}

// cardFields returns the lines of a card. Name and phone are always present;
// email, website and address only when expanded.
func cardFields(c contact.Contact, expanded bool) []field {
	fields := []field{{label: "Phone", value: c.Phone}}
	if expanded {
		fields = append(fields,
			field{label: "Email", value: c.Email},
			field{label: "Website", value: c.Website},
			field{label: "Address", value: c.Address.String()},
		)
	}
	return fields
}

// renderCard renders one bordered card cardWidth columns wide.
func renderCard(c contact.Contact, expanded, focused bool, cardWidth int) string {
	inner := cardWidth - cardChrome
	if inner < 1 {
		inner = 1
	}

	lines := []string{wordwrap.String(nameStyle.Render(c.Name), inner)}
	for _, f := range cardFields(c, expanded) {
		line := labelStyle.Render(f.label+":") + " " + f.value
		lines = append(lines, wordwrap.String(line, inner))
	}

	style := UnfocusedCard()
	if focused {
		style = FocusedCard()
	}
	return style.Width(cardWidth - 2).Render(strings.Join(lines, "\n"))
}

// renderCards renders the collection as a vertical stack of centered cards
// separated by a blank line, returning the content and each card's span.
func renderCards(contacts []contact.Contact, sel Selection, cursor, totalWidth, breakpoint int) (string, []cardSpan) {
	cardWidth := CardWidth(totalWidth, breakpoint)
	spans := make([]cardSpan, len(contacts))

	var b strings.Builder
	line := 0
	for i, c := range contacts {
		if i > 0 {
			b.WriteByte('\n')
			line++
		}
		card := renderCard(c, sel.Is(c.ID), i == cursor, cardWidth)
		card = lipgloss.PlaceHorizontal(totalWidth, lipgloss.Center, card)
		h := lipgloss.Height(card)
		spans[i] = cardSpan{start: line, end: line + h}
		b.WriteString(card)
		b.WriteByte('\n')
		line += h
	}
	return strings.TrimSuffix(b.String(), "\n"), spans
}

// cardAt returns the index of the card covering body line y, or -1.
func cardAt(spans []cardSpan, y int) int {
	for i, s := range spans {
		if y >= s.start && y < s.end {
			return i
		}
	}
	return -1
}

// RenderPlain writes the collection as uncoloured text cards.
func RenderPlain(w io.Writer, contacts []contact.Contact, sel Selection) error {
	var b strings.Builder
	b.WriteString(Title + "\n")
	if len(contacts) == 0 {
		b.WriteString("\nNo contacts\n")
	}
	for _, c := range contacts {
		fmt.Fprintf(&b, "\n%s\n", c.Name)
		for _, f := range cardFields(c, sel.Is(c.ID)) {
			fmt.Fprintf(&b, "  %s: %s\n", f.label, f.value)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
