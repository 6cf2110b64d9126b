package sanitize

import (
	"strings"
	"testing"

	"github.com/matzehuels/pagesmith/pkg/errors"
)

func TestEmbed(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		mustKeep    []string
		mustDrop    []string
		wantRemoved []string
	}{
		{
			name:     "Clean",
			input:    `<p class="note">Hello <a href="https://example.com">link</a></p>`,
			mustKeep: []string{"Hello", `href="https://example.com"`, `class="note"`},
		},
		{
			name:        "Script",
			input:       `<p>Hi</p><script>alert(1)</script>`,
			mustKeep:    []string{"<p>Hi</p>"},
			mustDrop:    []string{"<script", "alert(1)"},
			wantRemoved: []string{"script"},
		},
		{
			name:        "InlineHandler",
			input:       `<img src="https://example.com/a.png" onerror="steal()" alt="a">`,
			mustKeep:    []string{`src="https://example.com/a.png"`},
			mustDrop:    []string{"onerror", "steal"},
			wantRemoved: []string{"onerror"},
		},
		{
			name:        "JavascriptURL",
			input:       `<a href=" JaVaScRiPt:alert(1)">x</a>`,
			mustDrop:    []string{"javascript", "alert"},
			wantRemoved: []string{"javascript: URL"},
		},
		{
			name:     "HTTPSIframe",
			input:    `<iframe src="https://www.youtube.com/embed/x" width="560"></iframe>`,
			mustKeep: []string{`<iframe src="https://www.youtube.com/embed/x"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Embed(tt.input)
			for _, s := range tt.mustKeep {
				if !strings.Contains(got.HTML, s) {
					t.Errorf("HTML = %q, missing %q", got.HTML, s)
				}
			}
			lower := strings.ToLower(got.HTML)
			for _, s := range tt.mustDrop {
				if strings.Contains(lower, s) {
					t.Errorf("HTML = %q, still contains %q", got.HTML, s)
				}
			}
			if strings.Join(got.Removed, ",") != strings.Join(tt.wantRemoved, ",") {
				t.Errorf("Removed = %v, want %v", got.Removed, tt.wantRemoved)
			}
			if got.Unsafe() != (len(tt.wantRemoved) > 0) {
				t.Errorf("Unsafe() = %v", got.Unsafe())
			}
			if got.Unsafe() && !errors.Is(got.Err(), errors.ErrCodeUnsafeContent) {
				t.Errorf("Err() = %v", got.Err())
			}
		})
	}
}

func TestFrame(t *testing.T) {
	f := Frame("Map", "400px", "<p>x</p>")
	if f.Height != "400px" || f.Title != "Map" {
		t.Errorf("Frame = %+v", f)
	}
	if !strings.Contains(f.Document, "Content-Security-Policy") || !strings.Contains(f.Document, "default-src &#39;none&#39;") {
		t.Errorf("Document lacks CSP: %q", f.Document)
	}
	if !strings.Contains(f.Document, "<body><p>x</p></body>") {
		t.Errorf("Document body = %q", f.Document)
	}
}
