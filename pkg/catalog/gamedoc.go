package catalog

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gm_ast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// GameDoc holds the pieces extracted from a markdown game description used
// by fixture import: the title (first H1), the lead paragraph immediately
// following it (used as the summary), and the parsed YAML frontmatter
// carrying structured fields (release date, tag lists, ratings).
type GameDoc struct {
	Title       string
	Summary     string
	Frontmatter map[string]any
}

// ParseGameDoc extracts a GameDoc from raw markdown bytes. YAML frontmatter
// is tolerated but optional; a document without an H1 falls back to the
// frontmatter "title" key. A document yielding no title at all is rejected.
func ParseGameDoc(data []byte) (*GameDoc, error) {
	fm, body := extractFrontmatter(data)

	title, lead := extractTitleAndLead(body)
	if title == "" && fm != nil {
		if s, ok := fm["title"].(string); ok {
			title = s
		}
	}
	if title == "" {
		return nil, NewValidationError("document has no title")
	}

	return &GameDoc{Title: title, Summary: lead, Frontmatter: fm}, nil
}

// Descriptor builds a game descriptor from the document under the given
// identifier. Frontmatter keys matching game tag-list fields, the release
// date, and ratings are carried over; everything else is ignored.
func (doc *GameDoc) Descriptor(id int) *Descriptor {
	d := NewDescriptor()
	_ = d.Set(id, "id")
	d.SetTitle(doc.Title)
	if doc.Summary != "" {
		d.SetSummary(doc.Summary)
	}

	fm := doc.Frontmatter
	if fm == nil {
		return d
	}
	if rd, ok := frontmatterReleaseDate(fm); ok {
		d.SetReleaseDate(rd)
	}
	for _, t := range TagTypes {
		field := t.TagField()
		if titles := stringList(fm[field]); len(titles) > 0 {
			d.SetTagList(field, titles)
		}
	}
	for _, field := range []string{"rating", "userRating"} {
		switch v := fm[field].(type) {
		case int:
			_ = d.Set(v, field)
		case float64:
			_ = d.Set(v, field)
		}
	}
	return d
}

// extractTitleAndLead parses the markdown AST and returns the text of the
// first level-1 heading and the first paragraph that follows it. A heading
// encountered before any paragraph means the document has no lead.
func extractTitleAndLead(data []byte) (string, string) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(data))

	var title, lead string
	sawTitle := false
	_ = gm_ast.Walk(doc, func(n gm_ast.Node, entering bool) (gm_ast.WalkStatus, error) {
		if !entering {
			return gm_ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gm_ast.Heading:
			if !sawTitle && node.Level == 1 {
				title = string(nodeText(node, data))
				sawTitle = true
				return gm_ast.WalkSkipChildren, nil
			}
			if sawTitle {
				// Another heading before any paragraph: no lead.
				return gm_ast.WalkStop, nil
			}
		case *gm_ast.Paragraph:
			if sawTitle {
				lead = string(nodeText(node, data))
				return gm_ast.WalkStop, nil
			}
		}
		return gm_ast.WalkContinue, nil
	})
	return title, lead
}

// nodeText flattens the raw text content of a block node's inline children.
func nodeText(n gm_ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gm_ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		default:
			buf.Write(nodeText(c, source))
		}
	}
	return bytes.TrimSpace(buf.Bytes())
}

// extractFrontmatter looks for a YAML block delimited by --- lines at the
// very start of the document. Tolerant: a malformed block is ignored and the
// original bytes returned unchanged.
func extractFrontmatter(data []byte) (map[string]any, []byte) {
	trimmed := bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var rest []byte
	switch {
	case bytes.HasPrefix(trimmed, []byte("---\r\n")):
		rest = trimmed[5:]
	case bytes.HasPrefix(trimmed, []byte("---\n")):
		rest = trimmed[4:]
	default:
		return nil, data
	}

	for _, marker := range [][]byte{[]byte("\n---\r\n"), []byte("\n---\n"), []byte("\n---")} {
		i := bytes.Index(rest, marker)
		if i < 0 {
			continue
		}
		var fm map[string]any
		if err := yaml.Unmarshal(rest[:i], &fm); err != nil {
			return nil, data
		}
		return fm, rest[i+len(marker):]
	}
	return nil, data
}

// frontmatterReleaseDate reads a releaseDate object or a bare year from
// frontmatter.
func frontmatterReleaseDate(fm map[string]any) (ReleaseDate, bool) {
	switch v := fm["releaseDate"].(type) {
	case int:
		return ReleaseDate{Year: v}, true
	case map[string]any:
		rd := ReleaseDate{
			Year:  yamlInt(v["year"]),
			Month: yamlInt(v["month"]),
			Day:   yamlInt(v["day"]),
		}
		if rd.Year != 0 || rd.Month != 0 || rd.Day != 0 {
			return rd, true
		}
	}
	return ReleaseDate{}, false
}

func yamlInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// stringList coerces a YAML list (or single scalar) into a string slice.
func stringList(v any) []string {
	switch list := v.(type) {
	case nil:
		return nil
	case string:
		return []string{list}
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			} else if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	}
	return nil
}
