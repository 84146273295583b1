package valkey

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

type fakeKV struct {
	data map[string][]byte
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (f *fakeKV) SetPersistent(ctx context.Context, key string, value []byte) error {
	if f.err != nil {
		return f.err
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestSnapshotStore_MissingKeyIsEmpty(t *testing.T) {
	store := &SnapshotStore{kv: newFakeKV(), key: SnapshotKey}

	data, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("missing key must not be an error: %v", err)
	}
	if data != nil {
		t.Errorf("expected empty blob, got %q", data)
	}
}

func TestSnapshotStore_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	store := &SnapshotStore{kv: kv, key: SnapshotKey}
	ctx := context.Background()

	blob := []byte(`[{"id":"CASE-ABC123"}]`)
	if err := store.Save(ctx, blob); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("round trip mangled blob: %q", got)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if data, _ := store.Load(ctx); data != nil {
		t.Error("blob survived clear")
	}
}

func TestSnapshotStore_ErrorPropagates(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("connection refused")
	store := &SnapshotStore{kv: kv, key: SnapshotKey}

	if _, err := store.Load(context.Background()); err == nil {
		t.Error("backend failure must surface, not read as empty")
	}
}
