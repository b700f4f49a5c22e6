package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// HTMLRenderer produces the HTML fallback artifact. It never fails.
type HTMLRenderer struct{}

func (HTMLRenderer) RenderArtifact(_ context.Context, title, markup string) (*Artifact, error) {
	return &Artifact{
		Buffer:      []byte(wrapHTML(title, markup)),
		ContentType: "text/html; charset=utf-8",
		Extension:   "html",
		Mode:        ModeHTMLFallback,
	}, nil
}

// ConverterRenderer posts HTML to an external HTML-to-PDF service. When no
// URL is configured, or the converter fails, it returns the HTML fallback.
type ConverterRenderer struct {
	url      string
	client   *http.Client
	fallback HTMLRenderer
}

func NewConverterRenderer(url string, timeout time.Duration) *ConverterRenderer {
	return &ConverterRenderer{
		url:    strings.TrimSpace(url),
		client: &http.Client{Timeout: timeout},
	}
}

type convertRequest struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

func (r *ConverterRenderer) RenderArtifact(ctx context.Context, title, markup string) (*Artifact, error) {
	if r.url == "" {
		return r.fallback.RenderArtifact(ctx, title, markup)
	}

	pdf, err := r.convert(ctx, title, wrapHTML(title, markup))
	if err != nil {
		slog.Warn("pdf conversion failed, using html fallback", "title", title, "error", err)
		return r.fallback.RenderArtifact(ctx, title, markup)
	}

	return &Artifact{
		Buffer:      pdf,
		ContentType: "application/pdf",
		Extension:   "pdf",
		Mode:        ModePDF,
	}, nil
}

func (r *ConverterRenderer) convert(ctx context.Context, title, doc string) ([]byte, error) {
	body, err := json.Marshal(convertRequest{Title: title, HTML: doc})
	if err != nil {
		return nil, fmt.Errorf("encoding convert request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating convert request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling converter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("converter returned status %d", resp.StatusCode)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading converter response: %w", err)
	}

	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, fmt.Errorf("converter response is not a pdf")
	}

	return pdf, nil
}
