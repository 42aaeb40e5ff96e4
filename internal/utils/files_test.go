package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/hostcompare/internal/utils"
)

func TestSafeWriteFile_CreatesDirAndNoTemp(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "charts", "price.png")
	if err := utils.SafeWriteFile(p, []byte("data")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "data" {
		t.Fatalf("unexpected content %q", b)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestSafeFileStem(t *testing.T) {
	cases := map[string]string{
		"review_scores_rating": "review_scores_rating",
		"listings.csv":         "listings",
		"host response rate":   "host_response_rate",
		"  ":                   "output",
	}
	for in, want := range cases {
		if got := utils.SafeFileStem(in); got != want {
			t.Errorf("SafeFileStem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPrettyJSON(t *testing.T) {
	b, err := utils.PrettyJSON(map[string]int{"n": 1})
	if err != nil {
		t.Fatalf("PrettyJSON: %v", err)
	}
	if string(b) != "{\n  \"n\": 1\n}" {
		t.Fatalf("unexpected json %q", b)
	}
}
