package fact

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
)

// CardMarker is the directional glyph that leads every rendered fact card.
const CardMarker = "▸"

// Card renders one fact as a plain-text list entry: marker glyph plus text.
// Pure function of its input; the caller guarantees a valid fact.
func Card(f Fact) string {
	return fmt.Sprintf("%s %s", CardMarker, f.Text)
}

// CardHTML renders one fact's text as HTML via markdown conversion,
// for the web list page. Falls back to nothing on conversion failure so a
// single malformed snippet cannot break the page.
func CardHTML(f Fact) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(f.Text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(f.Text))
	}
	return template.HTML(buf.String())
}
