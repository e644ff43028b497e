package router

import (
	"fmt"
	"html/template"
)

// Link is an in-app navigation anchor. It renders a real href so that
// open-in-new-tab and copy-link keep working.
type Link struct {
	To       string
	Class    string
	OnClick  func()
	Children template.HTML
}

func (l Link) Href() string {
	return "#" + l.To
}

func (l Link) HTML() template.HTML {
	class := ""
	if l.Class != "" {
		class = fmt.Sprintf(` class="%s"`, template.HTMLEscapeString(l.Class))
	}
	return template.HTML(fmt.Sprintf(`<a href="%s" data-path="%s"%s>%s</a>`,
		template.HTMLEscapeString(l.Href()),
		template.HTMLEscapeString(l.To),
		class,
		l.Children,
	))
}

// Activate runs the optional callback, then navigates to the destination.
func (l Link) Activate(nav Navigator) {
	if l.OnClick != nil {
		l.OnClick()
	}
	nav.Navigate(l.Href())
}
