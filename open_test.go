package bellybutton

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitGoogleStoragePath(t *testing.T) {
	bucket, object, err := SplitGoogleStoragePath("gs://my-bucket/some/dir/samples.json")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "my-bucket" || object != "some/dir/samples.json" {
		t.Fatalf("Got bucket %q object %q", bucket, object)
	}

	for _, bad := range []string{"gs://", "gs://bucket", "gs://bucket/", "gs:///object"} {
		if _, _, err := SplitGoogleStoragePath(bad); err == nil {
			t.Errorf("Expected an error for %q", bad)
		}
	}
}

func TestOpenGoogleStorageWithoutClient(t *testing.T) {
	if _, _, err := MaybeOpenFromGoogleStorage(context.Background(), "gs://bucket/samples.json", nil); err == nil {
		t.Fatal("Expected an error without a storage client")
	}
}

func TestOpenFileOrURLLocalGzip(t *testing.T) {
	payload := []byte(`{"names":["940"],"samples":[],"metadata":[]}`)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write(payload)
	zw.Close()

	path := filepath.Join(t.TempDir(), "samples.json.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := OpenFileOrURL(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("Expected %s, got %s", payload, out)
	}
}

func TestOpenFileOrURLHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/samples.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"names":[]}`))
	}))
	defer srv.Close()

	out, err := OpenFileOrURL(context.Background(), srv.URL+"/samples.json", nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"names":[]}` {
		t.Fatalf("Unexpected body %s", out)
	}

	if _, err := OpenFileOrURL(context.Background(), srv.URL+"/missing.json", nil); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("Expected a 404 error, got %v", err)
	}
}

func TestDetermineDelimiter(t *testing.T) {
	tsv := "id\tage\twfreq\n940\t24\t2\n941\t34\t1\n"
	if d := DetermineDelimiter(strings.NewReader(tsv)); d != '\t' {
		t.Errorf("Expected tab, got %q", d)
	}

	csv := "id,age,wfreq\n940,24,2\n941,34,1\n"
	if d := DetermineDelimiter(strings.NewReader(csv)); d != ',' {
		t.Errorf("Expected comma, got %q", d)
	}
}

func TestExpandHome(t *testing.T) {
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("Absolute path changed to %s", got)
	}
	if _, err := user.Current(); err != nil {
		t.Skip("no current user:", err)
	}
	if got := ExpandHome("~/data.json"); strings.HasPrefix(got, "~") {
		t.Errorf("Home was not expanded: %s", got)
	}
}
