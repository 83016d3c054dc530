package prefs

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360/graphdeco/errors"
)

// KVBucket is the subset of jetstream.KeyValue used by KVSource.
// Narrowed for testability.
type KVBucket interface {
	Keys(ctx context.Context, opts ...jetstream.WatchOpt) ([]string, error)
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
}

// KVSource is a Source over a NATS JetStream KeyValue bucket. Each key names
// one section and holds a JSON object with that section's values, e.g.
//
//	citybikes -> {"type": "bike-rental", "url": "https://...", "frequency": "60s"}
//
// The bucket is snapshotted at construction; a storage failure during the
// snapshot is reported from ChildNames, where the decoration pass treats it
// as a backing-store error and aborts.
type KVSource struct {
	root *MapSource
	err  error
}

// NewKVSource snapshots bucket into a Source. The context bounds the
// snapshot I/O only; the returned Source does no further I/O.
func NewKVSource(ctx context.Context, bucket KVBucket) *KVSource {
	keys, err := bucket.Keys(ctx)
	if err != nil {
		if stderrors.Is(err, jetstream.ErrNoKeysFound) {
			return &KVSource{root: NewMapSource(nil)}
		}
		return &KVSource{err: errors.WrapFatal(err, "KVSource", "NewKVSource", "list keys")}
	}

	tree := map[string]any{}
	for _, key := range keys {
		entry, err := bucket.Get(ctx, key)
		if err != nil {
			return &KVSource{err: errors.WrapFatal(err, "KVSource", "NewKVSource",
				fmt.Sprintf("read key %q", key))}
		}
		var section map[string]any
		if err := json.Unmarshal(entry.Value(), &section); err != nil {
			// A malformed section is invalid configuration, not a storage
			// failure: keep it as an empty section so the pass can skip it.
			section = map[string]any{}
		}
		tree[key] = section
	}
	return &KVSource{root: NewMapSource(tree)}
}

// ChildNames returns the snapshotted section names, or the snapshot error.
func (s *KVSource) ChildNames() ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.root.ChildNames()
}

// Section returns the named section from the snapshot.
func (s *KVSource) Section(name string) Source {
	if s.err != nil {
		return Empty()
	}
	return s.root.Section(name)
}

// Get returns the value for key at the bucket root. Bucket roots hold only
// sections, so this always yields the default; present for interface
// completeness.
func (s *KVSource) Get(key, def string) string {
	if s.err != nil {
		return def
	}
	return s.root.Get(key, def)
}
