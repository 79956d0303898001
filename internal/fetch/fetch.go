// Package fetch implements the optional Fetcher stage (spec §4.1): pulling
// source PDFs from a set of object-store URIs into a local input directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ashathullah/voter-shield/internal/objectstore"
)

// Fetcher downloads PDFs named by a set of object-store URIs into a local
// input directory, resetting that directory first so the source set is
// deterministic (spec §4.1).
type Fetcher struct {
	Store objectstore.Store
}

// New returns a Fetcher backed by the given object store.
func New(store objectstore.Store) *Fetcher {
	return &Fetcher{Store: store}
}

// Fetch resets inputDir, then downloads every object named by uris into it,
// preserving base names. Any error here is preconditional: it aborts the
// whole run before any document processing begins (spec §4.1, §7).
func (f *Fetcher) Fetch(ctx context.Context, uris []string, inputDir string) error {
	if err := resetDir(inputDir); err != nil {
		return fmt.Errorf("fetch: resetting input dir %s: %w", inputDir, err)
	}

	for _, uri := range uris {
		uri = strings.TrimSpace(uri)
		if uri == "" {
			continue
		}
		objs, err := f.Store.List(ctx, uri)
		if err != nil {
			return fmt.Errorf("fetch: listing %s: %w", uri, err)
		}
		for _, obj := range objs {
			if err := f.downloadOne(ctx, obj, inputDir); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Fetcher) downloadOne(ctx context.Context, obj objectstore.Object, inputDir string) error {
	base := filepath.Base(obj.Key)
	if base == "" || base == "." || base == "/" {
		return fmt.Errorf("fetch: object key has no base name: %s", obj.Key)
	}

	rc, err := f.Store.Get(ctx, obj)
	if err != nil {
		return fmt.Errorf("fetch: getting %s/%s: %w", obj.Bucket, obj.Key, err)
	}
	defer func() { _ = rc.Close() }()

	destPath := filepath.Join(inputDir, base)
	dest, err := os.Create(destPath) //nolint:gosec // destPath derives from a configured input dir
	if err != nil {
		return fmt.Errorf("fetch: creating %s: %w", destPath, err)
	}
	defer func() { _ = dest.Close() }()

	if _, err := io.Copy(dest, rc); err != nil {
		return fmt.Errorf("fetch: writing %s: %w", destPath, err)
	}

	slog.Debug("fetched object", "bucket", obj.Bucket, "key", obj.Key, "dest", destPath)
	return nil
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o750)
}
