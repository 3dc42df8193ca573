package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

var testPNG = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

type fakeProgress struct {
	mu      sync.Mutex
	updates int
	marked  bool
}

func (p *fakeProgress) Update(done, total int, bytes int64) {
	p.mu.Lock()
	p.updates++
	p.mu.Unlock()
}

func (p *fakeProgress) MarkDone() {
	p.mu.Lock()
	p.marked = true
	p.mu.Unlock()
}

func TestDownloadImagesConcurrently(t *testing.T) {
	var gotReferer atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer.Store(r.Header.Get("Referer"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(testPNG)
	}))
	defer srv.Close()

	urls := []string{
		srv.URL + "/reader/image?path=x&file=001.png",
		srv.URL + "/reader/image?path=x&file=002.png",
		srv.URL + "/reader/image?path=x&file=003.png",
	}

	folder := filepath.Join(t.TempDir(), "chapter_tmp")
	fp := &fakeProgress{}

	d := New(srv.Client(), false)
	files, bytes, err := d.DownloadImagesConcurrently(context.Background(), urls, folder, "https://example.org", 2, fp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}
	if bytes != int64(3*len(testPNG)) {
		t.Errorf("expected %d bytes, got %d", 3*len(testPNG), bytes)
	}
	if ref, _ := gotReferer.Load().(string); ref != "https://example.org" {
		t.Errorf("expected referer to be forwarded, got %q", ref)
	}
	if !fp.marked {
		t.Error("expected progress to be marked done")
	}

	for _, name := range []string{"page_001.png", "page_002.png", "page_003.png"} {
		if _, err := os.Stat(filepath.Join(folder, name)); err != nil {
			t.Errorf("missing page file %s: %v", name, err)
		}
	}
}

func TestDownloadImagesConcurrentlyBrokenPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("file") == "002.png" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(testPNG)
	}))
	defer srv.Close()

	urls := []string{
		srv.URL + "/reader/image?path=x&file=001.png",
		srv.URL + "/reader/image?path=x&file=002.png",
		srv.URL + "/reader/image?path=x&file=003.png",
	}

	t.Run("fails without skip-broken", func(t *testing.T) {
		d := New(srv.Client(), false)
		_, _, err := d.DownloadImagesConcurrently(context.Background(), urls, t.TempDir(), "", 1, &fakeProgress{})
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(err.Error(), "failed 1/3 pages") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("continues with skip-broken", func(t *testing.T) {
		d := New(srv.Client(), true)
		files, _, err := d.DownloadImagesConcurrently(context.Background(), urls, t.TempDir(), "", 1, &fakeProgress{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 2 {
			t.Errorf("expected 2 files, got %d", len(files))
		}
	})
}

func TestDownloadRejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>login required</html>"))
	}))
	defer srv.Close()

	d := New(srv.Client(), false)
	err := d.download(context.Background(), srv.URL+"/reader/image?file=001.png",
		filepath.Join(t.TempDir(), "page_001.png"), "", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "unexpected MIME") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPageExt(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"file parameter", "https://x/reader/image?path=a.cbz&file=001.png", ".png"},
		{"file parameter webp", "https://x/reader/image?path=a.cbz&file=p.webp", ".webp"},
		{"plain path", "https://x/static/p1.jpg", ".jpg"},
		{"no extension anywhere", "https://x/reader/image?path=a", ".jpg"},
		{"unparseable", "::::", ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageExt(tt.url); got != tt.want {
				t.Errorf("pageExt(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
