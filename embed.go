package main

import (
	_ "embed"
	"html/template"
	"sync"
)

//go:embed www/index.html
var indexTemplateEmbed string

var indexTemplate = sync.OnceValues(func() (*template.Template, error) {
	return template.New("index.html").Parse(indexTemplateEmbed)
})

// IndexData is rendered into the index page
type IndexData struct {
	Version    string
	Dir        string
	Count      int
	SortOrder  SortOrder
	SortOrders []SortOrder
}
