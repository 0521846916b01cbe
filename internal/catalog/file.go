package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/hirehub/internal/schemas"
	"github.com/jonathan/hirehub/internal/types"
)

// LoadFile reads a JSON catalog from path, validates it against the catalog schema,
// and returns a Static accessor over it. HTML in description fields is reduced to text.
func LoadFile(path string, latency Latency) (*Static, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	jobs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	return NewStatic(jobs, latency)
}

// Parse validates and decodes a JSON catalog document.
func Parse(data []byte) ([]types.Job, error) {
	if err := schemas.ValidateJobCatalog(data); err != nil {
		return nil, err
	}

	var jobs []types.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	for i := range jobs {
		jobs[i].Description = PlainText(jobs[i].Description)
		jobs[i].CompanyDescription = PlainText(jobs[i].CompanyDescription)
	}
	return jobs, nil
}

// PlainText strips markup from s when it looks like HTML, collapsing whitespace.
// Plain strings are returned trimmed but otherwise unchanged.
func PlainText(s string) string {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	doc.Find("script, style, noscript").Remove()

	// Block elements would otherwise run their text together.
	doc.Find("p, li, br, div, h1, h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})

	return strings.Join(strings.Fields(doc.Text()), " ")
}
