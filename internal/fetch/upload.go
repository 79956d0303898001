package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ashathullah/voter-shield/internal/objectstore"
)

// UploadDirectory uploads every regular file directly under dir (non-
// recursive, matching the source's upload_directory) to destURI, keyed by
// base name under destURI's prefix. A failed upload does not abort the
// run: per spec §7 this is best-effort and only logged by the caller.
func UploadDirectory(ctx context.Context, store objectstore.Store, dir, destURI string) error {
	parsed, err := objectstore.ParseURI(destURI)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	prefix := parsed.Key

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("fetch: reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path) //nolint:gosec // path derives from a configured output dir
		if err != nil {
			return fmt.Errorf("fetch: opening %s: %w", path, err)
		}
		info, err := f.Stat()
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("fetch: stating %s: %w", path, err)
		}

		key := prefix + entry.Name()
		if err := store.Put(ctx, parsed.Bucket, key, f, info.Size()); err != nil {
			_ = f.Close()
			return fmt.Errorf("fetch: uploading %s to %s/%s: %w", path, parsed.Bucket, key, err)
		}
		_ = f.Close()
	}
	return nil
}
