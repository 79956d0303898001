package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store used by tests that exercise fetch/
// upload logic without a network dependency (spec §8's fake backing S5 and
// fetch/upload tests).
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte // "bucket/key" -> contents
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Seed inserts an object directly, for test setup.
func (m *MemoryStore) Seed(bucket, key string, contents []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = contents
}

func (m *MemoryStore) List(_ context.Context, uri string) ([]Object, error) {
	parsed, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !parsed.IsPrefix() {
		if _, ok := m.objects[parsed.Bucket+"/"+parsed.Key]; !ok {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, parsed.Bucket, parsed.Key)
		}
		return []Object{{Bucket: parsed.Bucket, Key: parsed.Key}}, nil
	}

	var out []Object
	for full := range m.objects {
		b, k, ok := strings.Cut(full, "/")
		if !ok || b != parsed.Bucket || !strings.HasPrefix(k, parsed.Key) {
			continue
		}
		out = append(out, Object{Bucket: b, Key: k})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, parsed.Bucket, parsed.Key)
	}
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, obj Object) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[obj.Bucket+"/"+obj.Key]
	if !ok {
		return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, obj.Bucket, obj.Key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemoryStore) Put(_ context.Context, bucket, key string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("objectstore: reading body for %s/%s: %w", bucket, key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = data
	return nil
}
