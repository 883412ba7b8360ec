package fact

import (
	"strings"
	"testing"
)

func TestCard(t *testing.T) {
	f := New("a", "remember the milk")

	got := Card(f)
	want := "▸ remember the milk"
	if got != want {
		t.Errorf("Card = %q, want %q", got, want)
	}
}

func TestCard_LeadingMarker(t *testing.T) {
	got := Card(New("a", "x"))
	if !strings.HasPrefix(got, CardMarker+" ") {
		t.Errorf("Card = %q, want leading %q glyph", got, CardMarker)
	}
}

func TestCardHTML_Markdown(t *testing.T) {
	f := New("a", "prefers *dark* mode")

	html := string(CardHTML(f))
	if !strings.Contains(html, "<em>dark</em>") {
		t.Errorf("CardHTML = %q, want emphasized markdown", html)
	}
}

func TestCardHTML_EscapesRawHTML(t *testing.T) {
	f := New("a", `<script>alert("x")</script>`)

	html := string(CardHTML(f))
	if strings.Contains(html, "<script>") {
		t.Errorf("CardHTML = %q, raw HTML must not pass through", html)
	}
}
