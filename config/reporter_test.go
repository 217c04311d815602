package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func newTestReport(t *testing.T) (*Report, string) {
	t.Helper()
	dest := filepath.Join(t.TempDir(), "report.zip")
	r, err := (&ReporterConfig{Destination: dest}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	return r, dest
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Archive(t *testing.T) {
	r, dest := newTestReport(t)

	src := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(src, []byte(`<p class="font-bold">x</p>`), 0644); err != nil {
		t.Fatal(err)
	}
	r.Store("source/index.html", src)
	r.StoreData("tailwind.css", []byte(".font-bold { font-weight: 700; }"))
	r.StoreData("tailwind.css", []byte("second"))
	r.Store("missing", filepath.Join(t.TempDir(), "nothing-here"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	files := readArchive(t, dest)
	if files["source/index.html"] != `<p class="font-bold">x</p>` {
		t.Errorf("stored file content = %q", files["source/index.html"])
	}
	if files["tailwind.css"] != ".font-bold { font-weight: 700; }" {
		t.Errorf("stored data = %q", files["tailwind.css"])
	}
	var versioned bool
	for name := range files {
		if strings.HasPrefix(name, "tailwind.css-") {
			versioned = true
		}
	}
	if !versioned {
		t.Error("repeated data entry was not versioned")
	}
	if _, ok := files["missing"]; ok {
		t.Error("absent file should not be archived")
	}
	if !strings.Contains(files["MANIFEST"], "source/index.html") {
		t.Errorf("MANIFEST = %q", files["MANIFEST"])
	}
}

func TestReport_StoreCopyRemovedOnClose(t *testing.T) {
	r, dest := newTestReport(t)

	src := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(src, []byte("before"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("page.html", src); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	// snapshot keeps original content
	if err := os.WriteFile(src, []byte("after"), 0644); err != nil {
		t.Fatal(err)
	}
	scratch := append([]string(nil), r.scratch...)
	if len(scratch) != 1 {
		t.Fatalf("scratch = %v, want one directory", scratch)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if got := readArchive(t, dest)["page.html"]; got != "before" {
		t.Errorf("snapshot content = %q, want %q", got, "before")
	}
	if _, err := os.Stat(scratch[0]); !os.IsNotExist(err) {
		t.Errorf("snapshot directory %s still exists", scratch[0])
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("original file should be kept: %v", err)
	}
}

func TestReport_Concurrent(t *testing.T) {
	r, dest := newTestReport(t)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.StoreData("doc-"+string(rune('a'+i)), []byte("x"))
		}()
	}
	wg.Wait()
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if got := len(readArchive(t, dest)); got != 17 {
		t.Errorf("archive has %d entries, want 17", got)
	}
}

func TestReportManifest_NaturalOrder(t *testing.T) {
	entries := map[string]entry{"doc-10": {}, "doc-2": {}, "doc-1": {}}
	names, _ := prepareManifest(entries)
	want := []string{"doc-1", "doc-2", "doc-10"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("x", "y")
	r.StoreData("x", nil)
	if err := r.StoreCopy("x", "y"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("nil report should have no name")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
