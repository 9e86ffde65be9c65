package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		alt  string
		src  string
		want string
	}{
		{
			name: "alt text wins",
			alt:  "Trust Score Example",
			src:  "/static/img/trust-score.png",
			want: "Trust Score Example",
		},
		{
			name: "filename cleaned up",
			alt:  "",
			src:  "/static/img/emotion-aware-counseling.png",
			want: "emotion aware counseling",
		},
		{
			name: "underscores replaced",
			alt:  "",
			src:  "https://cdn.example.com/college_campus_photo.jpg",
			want: "college campus photo",
		},
		{
			name: "query string stripped",
			alt:  "",
			src:  "/img/campus-tour.png?v=3",
			want: "campus tour",
		},
		{
			name: "whitespace-only alt falls back",
			alt:  "   ",
			src:  "/img/dorm-life.png",
			want: "dorm life",
		},
		{
			name: "no usable name",
			alt:  "",
			src:  "",
			want: "image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.alt, tt.src))
		})
	}
}

const testPage = `<html><body>
<img src="/img/ok.png" alt="Campus">
<img src="/img/missing.png" alt="Trust Score Example">
<img src="/img/emotion-aware-counseling.png">
</body></html>`

func TestRewriteReplacesFailedImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/img/ok.png" {
			w.Write([]byte("png-bytes"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	base, err := url.Parse(server.URL)
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader(testPage))
	require.NoError(t, err)

	rewriter := NewRewriter(zerolog.Nop(), WithConcurrency(2))
	replaced := rewriter.Rewrite(context.Background(), doc, base)
	assert.Equal(t, 2, replaced)

	images := collectImages(doc)
	require.Len(t, images, 1, "the loadable image must survive")
	assert.Equal(t, "/img/ok.png", attr(images[0], "src"))

	labels := collectPlaceholderLabels(doc)
	assert.ElementsMatch(t, []string{"Trust Score Example", "emotion aware counseling"}, labels)
}

func TestRewriteHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer server.Close()

	base, err := url.Parse(server.URL)
	require.NoError(t, err)

	rewriter := NewRewriter(zerolog.Nop())
	out, err := rewriter.RewriteHTML(context.Background(),
		strings.NewReader(`<p><img src="/img/trust-log.png" alt="Justification Log"></p>`), base)
	require.NoError(t, err)

	rendered := string(out)
	assert.NotContains(t, rendered, "<img")
	assert.Contains(t, rendered, `class="image-fallback"`)
	assert.Contains(t, rendered, "Justification Log")
}

func TestRewriteNoImages(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<p>no pictures here</p>"))
	require.NoError(t, err)

	rewriter := NewRewriter(zerolog.Nop())
	assert.Zero(t, rewriter.Rewrite(context.Background(), doc, nil))
}

func TestProbeSkipsInlineData(t *testing.T) {
	rewriter := NewRewriter(zerolog.Nop())
	assert.True(t, rewriter.probe(context.Background(), nil, "data:image/png;base64,AAAA"))
	assert.False(t, rewriter.probe(context.Background(), nil, ""))
}

func collectPlaceholderLabels(doc *html.Node) []string {
	var labels []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && attr(n, "class") == placeholderClass {
			if n.FirstChild != nil {
				labels = append(labels, n.FirstChild.Data)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return labels
}
