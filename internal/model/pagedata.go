package model

import "html/template"

type PageData struct {
	SiteTitle string
	PageTitle string
	Path      string
	Content   template.HTML
	BaseURL   string
	Theme     string
	Nav       template.HTML
	Footer    string
}
