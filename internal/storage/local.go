package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/krizhnx/internyx/pkg/config"

	"github.com/google/uuid"
)

// Local stores objects on the filesystem and serves them through
// HMAC-signed expiring URLs
type Local struct {
	dir        string
	signingKey []byte
	urlTTL     time.Duration
	maxSize    int64
	now        func() time.Time
}

// NewLocal creates the store and its backing directory
func NewLocal(cfg *config.StorageConfig) (*Local, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Local{
		dir:        cfg.Dir,
		signingKey: []byte(cfg.SigningKey),
		urlTTL:     cfg.URLTTL,
		maxSize:    cfg.MaxSize,
		now:        time.Now,
	}, nil
}

// MaxSize is the per-file upload limit in bytes
func (l *Local) MaxSize() int64 {
	return l.maxSize
}

// Save stores the content under a generated name keeping the original
// extension, and returns the reference with a signed URL
func (l *Local) Save(name string, r io.Reader) (*Object, error) {
	ext := filepath.Ext(name)
	objectName := fmt.Sprintf("%d-%s%s", l.now().UnixMilli(), uuid.New().String()[:8], ext)

	f, err := os.Create(filepath.Join(l.dir, objectName))
	if err != nil {
		return nil, fmt.Errorf("failed to create object: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, l.maxSize+1))
	if err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write object: %w", err)
	}
	if written > l.maxSize {
		os.Remove(f.Name())
		return nil, fmt.Errorf("file exceeds the %d MB limit", l.maxSize/(1024*1024))
	}

	url, err := l.SignedURL(objectName, l.urlTTL)
	if err != nil {
		return nil, err
	}
	return &Object{Path: objectName, URL: url}, nil
}

// SignedURL returns an expiring download URL for a stored object
func (l *Local) SignedURL(path string, ttl time.Duration) (string, error) {
	if !validObjectName(path) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	exp := l.now().Add(ttl).Unix()
	return fmt.Sprintf("/files/%s?exp=%d&sig=%s", path, exp, l.sign(path, exp)), nil
}

// Verify checks the signature and expiry of a download request
func (l *Local) Verify(path string, exp int64, sig string) bool {
	if !validObjectName(path) {
		return false
	}
	if l.now().Unix() > exp {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(l.sign(path, exp)))
}

// Open returns the stored object for serving
func (l *Local) Open(path string) (*os.File, error) {
	if !validObjectName(path) {
		return nil, fmt.Errorf("invalid object path %q", path)
	}
	return os.Open(filepath.Join(l.dir, path))
}

// Remove deletes a stored object
func (l *Local) Remove(path string) error {
	if !validObjectName(path) {
		return fmt.Errorf("invalid object path %q", path)
	}
	if err := os.Remove(filepath.Join(l.dir, path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}

func (l *Local) sign(path string, exp int64) string {
	mac := hmac.New(sha256.New, l.signingKey)
	mac.Write([]byte(path))
	mac.Write([]byte{'\n'})
	mac.Write([]byte(strconv.FormatInt(exp, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// object names are flat: generated by Save, never nested paths
func validObjectName(name string) bool {
	return name != "" &&
		!strings.Contains(name, "/") &&
		!strings.Contains(name, "\\") &&
		!strings.Contains(name, "..")
}
