package results

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/vanditkanudia/gridgap/core/model"
)

func TestRotatingJSONLStore_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/results.jsonl"
	store, err := NewRotatingJSONLStore(path, 1, 2, 1)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	trace := make([]model.DispatchHour, 8760)
	rec := Record{Timestamp: time.Now(), RunID: "r1", Group: "NORDIC", Policy: "realistic", Trace: trace}
	for i := 0; i < 3; i++ {
		if err := store.Append(context.Background(), rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	files, _ := filepath.Glob(path + "*")
	if len(files) == 0 {
		t.Fatalf("expected rotated files")
	}
}

func TestRotatingJSONLStore_Query(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/results.jsonl"
	store, err := NewRotatingJSONLStore(path, 1, 2, 1)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	rec := Record{Timestamp: time.Now(), RunID: "r1", Group: "NORDIC", Policy: "as_planned"}
	_ = store.Append(context.Background(), rec)
	out, err := store.Query(context.Background(), Query{Group: "NORDIC"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected records")
	}
}
