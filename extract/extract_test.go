package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeUnzip struct {
	mu       sync.Mutex
	archives []string
	err      error
}

func (f *fakeUnzip) run(_ context.Context, name string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name != "unzip" {
		return errors.New("unexpected tool " + name)
	}
	// unzip -o {archive} -d {dest}
	f.archives = append(f.archives, filepath.Base(args[1]))
	return f.err
}

func TestExtract_UnzipsZipArchivesOnly(t *testing.T) {
	backup := filepath.Join(t.TempDir(), "original")
	fake := &fakeUnzip{}

	err := Extract(context.Background(),
		[]string{"/data/train.zip", "/data/notes.txt", "/data/val.zip"},
		backup, fake.run, nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if diff := cmp.Diff([]string{"train.zip", "val.zip"}, fake.archives); diff != "" {
		t.Errorf("archives mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_UnzipFailureIsNotFatal(t *testing.T) {
	backup := filepath.Join(t.TempDir(), "original")
	fake := &fakeUnzip{err: errors.New("exit status 9")}

	if err := Extract(context.Background(), []string{"/data/train.zip"}, backup, fake.run, nil); err != nil {
		t.Errorf("Extract() error = %v, want nil", err)
	}
}

func TestExtract_FlattensAnnotations(t *testing.T) {
	backup := t.TempDir()
	annDir := filepath.Join(backup, AnnotationsDir)
	if err := os.MkdirAll(annDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"train.json", "val.json"} {
		if err := os.WriteFile(filepath.Join(annDir, name), []byte("[]"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := Extract(context.Background(), nil, backup, (&fakeUnzip{}).run, nil); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	entries, err := os.ReadDir(backup)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if diff := cmp.Diff([]string{"train.json", "val.json"}, names); diff != "" {
		t.Errorf("backup root mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(annDir); !os.IsNotExist(err) {
		t.Errorf("emptied annotations dir still present")
	}
}

func TestExtract_FlattenKeepsNonJSON(t *testing.T) {
	backup := t.TempDir()
	annDir := filepath.Join(backup, AnnotationsDir)
	if err := os.MkdirAll(annDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(annDir, "train.json"), []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(annDir, "README.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Extract(context.Background(), nil, backup, (&fakeUnzip{}).run, nil); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(backup, "train.json")); err != nil {
		t.Errorf("train.json not moved: %v", err)
	}
	if _, err := os.Stat(filepath.Join(annDir, "README.txt")); err != nil {
		t.Errorf("non-JSON file moved or lost: %v", err)
	}
}
