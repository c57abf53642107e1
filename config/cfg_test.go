package config

import (
	"os"
	"path/filepath"
	"testing"

	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	tu.AssertEqual(t, cfg.Version, 1)
	tu.AssertEqual(t, cfg.Page.Width, 794)
	tu.AssertEqual(t, cfg.Layout.Paginate, true)
	tu.AssertEqual(t, cfg.Layout.CellAdvance, 0.5)
	w, h := cfg.Page.ContentSize()
	tu.AssertEqual(t, [2]int{w, h}, [2]int{794 - 152, 1123 - 152})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	err := os.WriteFile(path, []byte("page:\n  width: 400\n  height: 300\nlayout:\n  break_anywhere: true\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, cfg.Page.Width, 400)
	tu.AssertEqual(t, cfg.Page.Height, 300)
	tu.AssertEqual(t, cfg.Page.Margins.Top, 76) // kept from the defaults
	tu.AssertEqual(t, cfg.Layout.BreakAnywhere, true)
}

func TestInvalid(t *testing.T) {
	for _, data := range []string{
		"unknown_field: 1\n",
		"page:\n  width: -5\n",
		"layout:\n  cell_advance: 0\n",
		"layout:\n  max_relayout_passes: 2\n",
		"logging:\n  level: verbose\n",
	} {
		if _, err := Parse([]byte(data)); err == nil {
			t.Fatalf("expected error for %q", data)
		}
	}
}

func TestPrepareLogger(t *testing.T) {
	for _, level := range []string{"none", "debug", "normal"} {
		conf := LoggingConfig{Level: level}
		if conf.Prepare() == nil {
			t.Fatal("nil logger")
		}
	}
}
