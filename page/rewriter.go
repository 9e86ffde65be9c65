// Package page rewrites served HTML so that broken images never reach the
// user as broken-image icons. A single pass collects the img elements
// present in the document, probes their sources and swaps each failed image
// for a labeled placeholder block. Elements added to the page afterwards are
// not covered, and a replacement is final: the original image is not retried.
package page

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultConcurrency bounds how many image sources are probed at once.
	DefaultConcurrency = 10

	placeholderClass = "image-fallback"
	placeholderStyle = "width:100%;height:200px;display:flex;align-items:center;" +
		"justify-content:center;background-color:#e9ecef;color:#6c757d;"
)

// Rewriter probes image sources and replaces the failed ones.
type Rewriter struct {
	httpClient  *http.Client
	concurrency int
	logger      zerolog.Logger
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithHTTPClient replaces the probe client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(r *Rewriter) {
		r.httpClient = httpClient
	}
}

// WithConcurrency bounds the probe pool.
func WithConcurrency(n int) Option {
	return func(r *Rewriter) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewRewriter creates a rewriter with a short probe timeout.
func NewRewriter(logger zerolog.Logger, opts ...Option) *Rewriter {
	r := &Rewriter{
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		concurrency: DefaultConcurrency,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite scans doc once for img elements, probes each source relative to
// base, and replaces every failed image in place. It returns the number of
// replaced images. Probe failures are absorbed here and never propagate.
func (r *Rewriter) Rewrite(ctx context.Context, doc *html.Node, base *url.URL) int {
	images := collectImages(doc)
	if len(images) == 0 {
		return 0
	}

	failed := make([]bool, len(images))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			failed[i] = !r.probe(ctx, base, attr(img, "src"))
			return nil
		})
	}
	g.Wait()

	replaced := 0
	for i, img := range images {
		if !failed[i] {
			continue
		}
		label := Label(attr(img, "alt"), attr(img, "src"))
		replaceWithPlaceholder(img, label)
		replaced++
		r.logger.Debug().
			Str("src", attr(img, "src")).
			Str("label", label).
			Msg("replaced broken image")
	}
	return replaced
}

// RewriteHTML parses, rewrites and re-renders an HTML document.
func (r *Rewriter) RewriteHTML(ctx context.Context, src io.Reader, base *url.URL) ([]byte, error) {
	doc, err := html.Parse(src)
	if err != nil {
		return nil, err
	}

	r.Rewrite(ctx, doc, base)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// probe reports whether an image source loads. Sources the rewriter cannot
// reason about (inline data, unknown schemes) are left alone.
func (r *Rewriter) probe(ctx context.Context, base *url.URL, src string) bool {
	if src == "" {
		return false
	}

	ref, err := url.Parse(src)
	if err != nil {
		return false
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.String(), nil)
	if err != nil {
		return false
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// collectImages gathers the img elements present at scan time.
func collectImages(doc *html.Node) []*html.Node {
	var images []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			images = append(images, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return images
}

// replaceWithPlaceholder swaps an img node for a fixed-size labeled block.
func replaceWithPlaceholder(img *html.Node, label string) {
	parent := img.Parent
	if parent == nil {
		return
	}

	div := &html.Node{
		Type: html.ElementNode,
		Data: "div",
		Attr: []html.Attribute{
			{Key: "class", Val: placeholderClass},
			{Key: "style", Val: placeholderStyle},
		},
	}
	div.AppendChild(&html.Node{Type: html.TextNode, Data: label})

	parent.InsertBefore(div, img)
	parent.RemoveChild(img)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
