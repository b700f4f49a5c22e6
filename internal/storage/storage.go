// Package storage is the private blob store for rendered and signed artifacts.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("object not found")
	ErrInvalidKey = errors.New("invalid object key")
	ErrBadURL     = errors.New("invalid or expired download url")
)

type Store interface {
	PutObject(ctx context.Context, key string, buf []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

// DocumentKey is the content-addressed key of a generated document.
func DocumentKey(orgID, dealID uuid.UUID, docType, hash, ext string) string {
	return fmt.Sprintf("orgs/%s/deals/%s/documents/%s/%s.%s", orgID, dealID, strings.ToLower(docType), hash, ext)
}

// SignedKey is the key of an envelope's combined signed artifact.
func SignedKey(orgID, dealID, envelopeID uuid.UUID, hash string) string {
	return fmt.Sprintf("orgs/%s/deals/%s/envelopes/%s/signed-%s.pdf", orgID, dealID, envelopeID, hash)
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}

	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return ErrInvalidKey
		}
	}

	return nil
}
