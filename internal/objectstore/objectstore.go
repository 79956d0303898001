// Package objectstore defines a narrow external collaborator interface for
// cloud object storage (spec §6: "list/get for inputs, put for outputs").
// No repo in the retrieval pack ships an object-store client, so this
// package is the one dependency introduced purely to satisfy the spec's
// external-interface requirement; see DESIGN.md.
package objectstore

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrNotFound is returned when a requested object does not exist.
var ErrNotFound = errors.New("objectstore: object not found")

// Object names one listed object by bucket and key.
type Object struct {
	Bucket string
	Key    string
}

// Store is the narrow interface every pipeline stage talks to; credentials
// and transport details live entirely behind a concrete implementation.
type Store interface {
	// List expands a URI (a directory prefix or a single object) into the
	// concrete objects it names.
	List(ctx context.Context, uri string) ([]Object, error)
	// Get streams one object's contents.
	Get(ctx context.Context, obj Object) (io.ReadCloser, error)
	// Put uploads data to bucket/key.
	Put(ctx context.Context, bucket, key string, body io.Reader, size int64) error
}

// ParsedURI is a parsed "s3://bucket/key" (or bare "bucket/key") URI.
type ParsedURI struct {
	Bucket string
	Key    string
}

// ParseURI parses an s3://bucket/key style URI. List treats a URI as a
// directory prefix only when its key is empty or ends in "/" (IsPrefix);
// any other key names a single object.
func ParseURI(uri string) (ParsedURI, error) {
	trimmed := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) == 0 || parts[0] == "" {
		return ParsedURI{}, errors.New("objectstore: invalid URI: " + uri)
	}
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	return ParsedURI{Bucket: parts[0], Key: key}, nil
}

// IsPrefix reports whether a key looks like a directory prefix rather than
// a single object (empty, or ends in "/").
func (p ParsedURI) IsPrefix() bool {
	return p.Key == "" || strings.HasSuffix(p.Key, "/")
}
