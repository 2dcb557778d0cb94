// Package render converts Markdown notes to standalone HTML pages for
// the HTML export mode.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// Page renders Markdown source into a minimal standalone HTML document.
// The title goes into the <title> element; the body is the converted
// Markdown.
func Page(title string, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	page := fmt.Sprintf(pageShell, html.EscapeString(title), buf.String())
	return []byte(page), nil
}
