package renderer

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        h1 { color: #333; }
        h2 { color: #555; border-bottom: 2px solid #ddd; padding-bottom: 5px; }
        table { border-collapse: collapse; width: 100%; margin-bottom: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; font-size: 14px; }
        th { background-color: #f2f2f2; }
        .increase { color: green; }
        .decrease { color: red; }
    </style>
</head>
<body>
{{.Body}}
</body>
</html>
`

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Active ETF Monitor - Latest Report</title>
    <meta http-equiv="refresh" content="0; url={{.Href}}" />
    <style>
        body { font-family: Arial, sans-serif; text-align: center; margin-top: 50px; }
        a { text-decoration: none; color: #007bff; font-size: 20px; }
    </style>
</head>
<body>
    <h1>Active ETF Monitor</h1>
    <p>Redirecting to latest report: <a href="{{.Href}}">{{.Date}}</a></p>
    <p><small>Last updated: {{.Updated}}</small></p>
</body>
</html>
`

// signed diff cells produced by ChangesMarkdown, e.g. "+1,200" or
// "-0.35%". The lone "-" placeholder for a zero delta is left alone.
var (
	increaseCell = regexp.MustCompile(`<td>(\+[0-9][0-9,.%]*)</td>`)
	decreaseCell = regexp.MustCompile(`<td>(-[0-9][0-9,.%]*)</td>`)
)

// ReportHTML converts the markdown change report into a self-contained
// HTML document. Signed delta cells get the increase/decrease classes
// so gains show green and cuts show red.
func ReportHTML(markdown, title string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("cannot convert report markdown: %w", err)
	}

	html := body.String()
	html = increaseCell.ReplaceAllString(html, `<td class="increase">$1</td>`)
	html = decreaseCell.ReplaceAllString(html, `<td class="decrease">$1</td>`)

	return renderPage(pageTemplate, "page", map[string]any{
		"Title": title,
		"Body":  html,
	})
}

// IndexHTML builds the root landing page redirecting to the most recent
// report. It is overwritten on every run, never versioned.
func IndexHTML(reportHref, dateLabel, updated string) (string, error) {
	return renderPage(indexTemplate, "index", map[string]any{
		"Href":    reportHref,
		"Date":    dateLabel,
		"Updated": updated,
	})
}

func renderPage(tpl, name string, data map[string]any) (string, error) {
	t, err := template.New(name).Parse(tpl)
	if err != nil {
		return "", fmt.Errorf("cannot parse %s template: %w", name, err)
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("cannot execute %s template: %w", name, err)
	}
	return b.String(), nil
}
