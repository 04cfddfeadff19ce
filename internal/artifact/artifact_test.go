package artifact

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/google/go-cmp/cmp"
)

func TestFileName(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 30, 45, 999, time.FixedZone("CEST", 2*3600))
	tests := []struct {
		prefix string
		ext    string
		want   string
	}{
		{ReportPrefix, "pdf", "survey_report_2024-05-01T10-30-45.pdf"},
		{ReportPrefix, "html", "survey_report_2024-05-01T10-30-45.html"},
		{ExportPrefix, "csv", "processed_data_2024-05-01T10-30-45.csv"},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, FileName(tt.prefix, when, tt.ext)); diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestStoreSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	store := NewStore(dir, model.DiscardLogger)
	store.now = func() time.Time {
		return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	}
	first, err := store.Save(ExportPrefix, "csv", []byte("a,b\n"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Save(ExportPrefix, "csv", []byte("c,d\n"))
	if err != nil {
		t.Fatal(err)
	}
	expect := []string{
		filepath.Join(dir, "processed_data_2024-05-01T10-00-00.csv"),
		filepath.Join(dir, "processed_data_2024-05-01T10-00-00_1.csv"),
	}
	if diff := cmp.Diff(expect, []string{first, second}); diff != "" {
		t.Fatal(diff)
	}
	data, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "c,d\n" {
		t.Fatal("unexpected content", string(data))
	}
}

func TestStoreSaveConcurrently(t *testing.T) {
	const count = 64
	dir := t.TempDir()
	store := NewStore(dir, model.DiscardLogger)
	store.now = func() time.Time {
		return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	}
	data := make([]byte, 1<<20)
	paths := make([]string, count)
	errs := make([]error, count)
	wg := &sync.WaitGroup{}
	for idx := 0; idx < count; idx++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			paths[idx], errs[idx] = store.Save(ReportPrefix, "pdf", data)
		}(idx)
	}
	wg.Wait()
	unique := make(map[string]bool)
	for idx := 0; idx < count; idx++ {
		if errs[idx] != nil {
			t.Fatal(errs[idx])
		}
		unique[paths[idx]] = true
	}
	if len(unique) != count {
		t.Fatal("expected distinct paths, got", len(unique))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	if len(names) != count {
		t.Fatal("expected one file per save, got", names)
	}
	for _, pathname := range paths {
		info, err := os.Stat(pathname)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() != int64(len(data)) {
			t.Fatal("unexpected size", pathname, info.Size())
		}
	}
}

func TestStoreDefaultDir(t *testing.T) {
	if NewStore("", nil).Dir() != "." {
		t.Fatal("expected the current directory")
	}
}
