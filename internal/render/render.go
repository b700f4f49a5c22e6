// Package render turns templates and deal snapshots into stored artifacts.
package render

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
	"github.com/MrJamesThe3rd/dealdesk/internal/fieldpath"
)

// Mode tells whether an artifact is a real PDF or the HTML fallback. Only PDF
// artifacts may be sent for signature.
type Mode string

const (
	ModePDF          Mode = "pdf"
	ModeHTMLFallback Mode = "html-fallback"
)

type Artifact struct {
	Buffer      []byte
	ContentType string
	Extension   string
	Mode        Mode
}

type Renderer interface {
	RenderArtifact(ctx context.Context, title, markup string) (*Artifact, error)
}

// AnchorFunc maps a reserved signature token such as SIGN_BUYER_1 to the
// marker a signing provider looks for.
type AnchorFunc func(token string) string

func DefaultAnchor(token string) string {
	return "[[" + token + "]]"
}

var (
	placeholderRE = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)
	anchorRE      = regexp.MustCompile(`^(SIGN|INITIAL|DATE)_(BUYER|COBUYER|DEALER)_[0-9]+$`)
)

// IsAnchor reports whether token is a reserved signature anchor.
func IsAnchor(token string) bool {
	return anchorRE.MatchString(token)
}

// Context builds the render context: the snapshot fields plus the rule
// engine's computed fields under "computed".
func Context(snap deal.Snapshot, computed map[string]any) map[string]any {
	ctx := snap.Fields()

	c := make(map[string]any, len(computed))
	for k, v := range computed {
		c[k] = v
	}

	ctx["computed"] = c

	return ctx
}

// Markup substitutes {{ path }} placeholders in source. Values are HTML
// escaped; absent values render empty. Anchor tokens are replaced with
// anchor(token) verbatim.
func Markup(source string, ctx map[string]any, anchor AnchorFunc) string {
	if anchor == nil {
		anchor = DefaultAnchor
	}

	return placeholderRE.ReplaceAllStringFunc(source, func(m string) string {
		match := placeholderRE.FindStringSubmatch(m)
		if len(match) != 2 {
			return ""
		}

		key := match[1]
		if IsAnchor(key) {
			return anchor(key)
		}

		v, ok := fieldpath.Lookup(ctx, key)
		if !ok {
			return ""
		}

		return html.EscapeString(format(v))
	})
}

func format(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "Yes"
		}

		return "No"
	default:
		return fmt.Sprint(t)
	}
}

// Title turns a document type code into a display title.
func Title(docType string) string {
	words := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(docType)), "_", " ")
	return cases.Title(language.English).String(words)
}

// Hash returns the hex sha256 of buf.
func Hash(buf []byte) string {
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

func wrapHTML(title, markup string) string {
	if strings.Contains(strings.ToLower(markup), "<html") {
		return markup
	}

	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n</head>\n<body>\n")
	b.WriteString(markup)
	b.WriteString("\n</body>\n</html>\n")

	return b.String()
}
