package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/smileynet/contactbook/internal/contact"
)

// Sanitize makes backend-supplied text safe to print on a terminal:
// escape sequences are stripped and remaining control characters become
// spaces.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return ' '
		}
		return r
	}, s)
}

// Text renders contacts as a bordered table with avatar, name, phone and id
// columns. The id column is what `contactbook delete` takes.
func Text(contacts []contact.Contact) string {
	if len(contacts) == 0 {
		return EmptyText + "\n"
	}

	rows := make([][]string, len(contacts))
	for i, c := range contacts {
		rows[i] = []string{
			Sanitize(contact.Avatar(c.Name)),
			Sanitize(c.Name),
			Sanitize(c.Phone),
			Sanitize(c.ID.String()),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "NAME", "PHONE", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.String() + "\n"
}
