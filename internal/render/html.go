// Package render turns a contact list into display output: an HTML table
// fragment for embedding in a page, and a plain table for terminals and pipes.
package render

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/smileynet/contactbook/internal/contact"
)

// TemplateName is the file name of the table template inside the
// templates filesystem.
const TemplateName = "contacts.html.tmpl"

// EmptyText is shown in place of the table when there are no contacts.
const EmptyText = "No contacts yet"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five HTML-significant characters & < > " ' with
// their entities. Nothing else is touched.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// HTML renders contacts with a text/template whose every interpolation goes
// through Escape.
type HTML struct {
	tmpl *template.Template
}

// NewHTML parses TemplateName from fsys.
func NewHTML(fsys fs.FS) (*HTML, error) {
	tmpl, err := template.New(TemplateName).
		Funcs(template.FuncMap{
			"esc":    func(v any) string { return Escape(fmt.Sprint(v)) },
			"avatar": contact.Avatar,
		}).
		ParseFS(fsys, TemplateName)
	if err != nil {
		return nil, fmt.Errorf("render: parsing %s: %w", TemplateName, err)
	}
	return &HTML{tmpl: tmpl}, nil
}

type htmlData struct {
	Contacts  []contact.Contact
	EmptyText string
	Label     string
}

// Render returns the table fragment for contacts, or the empty-state
// element when there are none.
func (h *HTML) Render(contacts []contact.Contact) (string, error) {
	var buf bytes.Buffer
	err := h.tmpl.Execute(&buf, htmlData{
		Contacts:  contacts,
		EmptyText: EmptyText,
		Label:     "Contacts",
	})
	if err != nil {
		return "", fmt.Errorf("render: executing %s: %w", TemplateName, err)
	}
	return buf.String(), nil
}
