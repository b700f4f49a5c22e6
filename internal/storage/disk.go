package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Disk stores objects under a root directory and hands out HMAC-signed,
// expiring download URLs served by the files handler.
type Disk struct {
	root    string
	baseURL string
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

func NewDisk(root, baseURL, secret string, ttl time.Duration) *Disk {
	return &Disk{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (d *Disk) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	return filepath.Join(d.root, filepath.FromSlash(key)), nil
}

// PutObject writes buf atomically. Keys are content addressed, so rewriting an
// existing key stores identical bytes.
func (d *Disk) PutObject(_ context.Context, key string, buf []byte, _ string) error {
	p, err := d.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("creating object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return fmt.Errorf("creating temp object: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return fmt.Errorf("writing object: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing object: %w", err)
	}

	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("publishing object: %w", err)
	}

	return nil
}

func (d *Disk) GetObject(_ context.Context, key string) ([]byte, error) {
	p, err := d.path(key)
	if err != nil {
		return nil, err
	}

	buf, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("reading object: %w", err)
	}

	return buf, nil
}

func (d *Disk) DownloadURL(_ context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	expires := d.now().Add(d.ttl).Unix()

	q := url.Values{}
	q.Set("key", key)
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("sig", d.sign(key, expires))

	return d.baseURL + "?" + q.Encode(), nil
}

// ReadSigned validates a download URL's query and returns the object.
func (d *Disk) ReadSigned(ctx context.Context, q url.Values) ([]byte, string, error) {
	key := q.Get("key")

	expires, err := strconv.ParseInt(q.Get("expires"), 10, 64)
	if err != nil {
		return nil, "", ErrBadURL
	}

	if d.now().Unix() > expires {
		return nil, "", ErrBadURL
	}

	if !hmac.Equal([]byte(q.Get("sig")), []byte(d.sign(key, expires))) {
		return nil, "", ErrBadURL
	}

	buf, err := d.GetObject(ctx, key)
	if err != nil {
		return nil, "", err
	}

	return buf, key, nil
}

func (d *Disk) sign(key string, expires int64) string {
	mac := hmac.New(sha256.New, d.secret)
	mac.Write([]byte(key))
	mac.Write([]byte{0})
	mac.Write([]byte(strconv.FormatInt(expires, 10)))

	return hex.EncodeToString(mac.Sum(nil))
}
