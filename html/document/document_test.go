package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nichevision/flyingsaucer-sub000/config"
	"github.com/nichevision/flyingsaucer-sub000/html/tree"
	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

func testConfig(t *testing.T, paginate bool) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(`
page:
  width: 200
  height: 100
  margins: {top: 10, right: 10, bottom: 10, left: 10}
layout:
  cell_advance: 1
logging:
  level: none
`))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Layout.Paginate = paginate
	return cfg
}

func TestRenderPaginated(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	doc, err := RenderString(`<body style="margin: 0"><div style="height: 150px"></div></body>`, Options{Config: testConfig(t, true)})
	if err != nil {
		t.Fatal(err)
	}
	pages := doc.Pages()
	tu.AssertEqual(t, len(pages), 2)
	tu.AssertEqual(t, pages[0].ContentWidth(), 180)
	tu.AssertEqual(t, pages[0].ContentHeight(), 80)
	tu.AssertEqual(t, doc.Root.ContentWidth, 180)
	tu.AssertEqual(t, doc.Root.Height, 150)
}

func TestRenderContinuous(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	doc, err := RenderString(`<p style="margin: 0">aaaa bbbb</p>`, Options{Config: testConfig(t, false)})
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(doc.Pages()), 0)
	// body margins are 8px: 180 - 16 leaves room for 10 cells
	body := doc.Root.Children()[0].Box()
	tu.AssertEqual(t, body.ContentWidth, 164)
	tu.AssertEqual(t, doc.Root.Height, 16+16)
}

func TestUserStylesheets(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	sheet := tree.NewCSS([]byte(`body { margin: 0 } p { margin: 0; height: 40px }`))
	doc, err := RenderString(`<p>a</p>`, Options{Config: testConfig(t, false), Stylesheets: []tree.CSS{sheet}})
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, doc.Root.Height, 40)
}

func TestRenderFile(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	_, err := RenderFile(filepath.Join(t.TempDir(), "missing.html"), Options{})
	if err == nil || !strings.Contains(err.Error(), "opening input") {
		t.Fatalf("unexpected error %v", err)
	}

	path := filepath.Join(t.TempDir(), "in.html")
	if err := os.WriteFile(path, []byte(`<p>a</p>`), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := RenderFile(path, Options{Config: testConfig(t, true)})
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(doc.Pages()), 1)
}
