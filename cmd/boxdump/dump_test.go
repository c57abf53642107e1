package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"

	"github.com/nichevision/flyingsaucer-sub000/config"
	"github.com/nichevision/flyingsaucer-sub000/html/document"
	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("page: {width: 200, height: 100, margins: {top: 20, right: 20, bottom: 20, left: 20}}\nlayout: {cell_advance: 1}\n"))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

const testDocument = `<style>
	body { margin: 0 }
	p { margin: 0 }
	@page { @bottom-center { content: counter(page) } }
</style>
<p>aa bb</p><div style="height: 60px"></div><p>cc</p>`

func TestDumpPages(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	doc, err := document.RenderString(testDocument, document.Options{Config: testConfig(t)})
	if err != nil {
		t.Fatal(err)
	}
	data, err := dumpYAML(doc, true)
	if err != nil {
		t.Fatal(err)
	}
	var out dumpDocument
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(out.Pages), 2)
	tu.AssertEqual(t, out.Pages[0].Lines, []dumpLine{{X: 0, Y: 0, Width: 160, Text: "aa bb"}})
	tu.AssertEqual(t, out.Pages[1].Lines, []dumpLine{{X: 0, Y: 16, Width: 160, Text: "cc"}})
	tu.AssertEqual(t, out.Pages[1].Pseudo, "left")
	tu.AssertEqual(t, len(out.Pages[1].MarginBoxes), 1)
	tu.AssertEqual(t, out.Pages[1].MarginBoxes[0].Area, "bottom-center")
}

func TestDumpTree(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	cfg := testConfig(t)
	cfg.Layout.Paginate = false
	doc, err := document.RenderString(`<body style="margin: 0"><p style="margin: 0">ab</p></body>`, document.Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	data, err := dumpYAML(doc, false)
	if err != nil {
		t.Fatal(err)
	}
	var out dumpDocument
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	root := out.Root
	tu.AssertEqual(t, root.Element, "html")
	tu.AssertEqual(t, root.Width, 160)
	p := root.Children[0].Children[0]
	tu.AssertEqual(t, p.Element, "p")
	tu.AssertEqual(t, p.Height, 16)
	line := p.Children[0]
	tu.AssertEqual(t, line.Type, "Line")
	text := line.Children[0].Children[0]
	tu.AssertEqual(t, text.Type, "Text")
	tu.AssertEqual(t, text.Text, "ab")
}

// quietConfig writes a configuration file disabling the logs.
func quietConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("logging: {level: none}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunDump(t *testing.T) {
	dir := t.TempDir()
	src, dst := filepath.Join(dir, "in.html"), filepath.Join(dir, "out.yaml")
	if err := os.WriteFile(src, []byte(testDocument), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := quietConfig(t, dir)

	ctx := contextWithEnv(context.Background())
	err := newApp().Run(ctx, []string{"boxdump", "--config", cfgPath, "dump", "--pages", src, dst})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "pages:") || !strings.Contains(string(data), "text: aa bb") {
		t.Fatalf("unexpected output\n%s", data)
	}
}

func TestRunDumpMissingSource(t *testing.T) {
	cfgPath := quietConfig(t, t.TempDir())

	ctx := contextWithEnv(context.Background())
	err := newApp().Run(ctx, []string{"boxdump", "--config", cfgPath, "dump"})
	if err == nil || !strings.Contains(err.Error(), "no input source") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRunDumpConfig(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "default.yaml")
	cfgPath := quietConfig(t, dir)

	ctx := contextWithEnv(context.Background())
	if err := newApp().Run(ctx, []string{"boxdump", "--config", cfgPath, "dumpconfig", "--default", dst}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, cfg.Page.Width, config.Default().Page.Width)
}
