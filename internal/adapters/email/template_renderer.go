package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"conventionplanner/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// timeLayout is how event times appear in emails.
const timeLayout = "Mon, 02 Jan 2006 15:04 MST"

func when(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// templateRenderer holds every embedded template, parsed once. Each email "name" is made of
// name_subject.txt, name.txt and name.html.
type templateRenderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewTemplateRenderer parses the embedded templates. It panics if they are malformed.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		text: texttemplate.Must(texttemplate.New("").Funcs(texttemplate.FuncMap{"when": when}).ParseFS(templateFS, "templates/*.txt")),
		html: htmltemplate.Must(htmltemplate.New("").Funcs(htmltemplate.FuncMap{"when": when}).ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	var buf bytes.Buffer
	if err = r.text.ExecuteTemplate(&buf, templateName+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if err = r.html.ExecuteTemplate(&buf, templateName+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err = r.text.ExecuteTemplate(&buf, templateName+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return subject, htmlBody, buf.String(), nil
}
