package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	"github.com/nichevision/flyingsaucer-sub000/html/document"
	"github.com/nichevision/flyingsaucer-sub000/html/tree"
	"github.com/nichevision/flyingsaucer-sub000/utils"
)

// dumpBox is the geometry of one box, in document coordinates.
type dumpBox struct {
	Type     string    `yaml:"type"`
	Element  string    `yaml:"element,omitempty"`
	X        int       `yaml:"x"`
	Y        int       `yaml:"y"`
	Width    int       `yaml:"width"`
	Height   int       `yaml:"height"`
	Text     string    `yaml:"text,omitempty"`
	Children []dumpBox `yaml:"children,omitempty"`
}

// dumpLine is one line of text, relative to the top of its page area.
type dumpLine struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Width int    `yaml:"width"`
	Text  string `yaml:"text"`
}

type dumpMarginBox struct {
	Area string  `yaml:"area"`
	Box  dumpBox `yaml:"box"`
}

type dumpPage struct {
	Number      int             `yaml:"number"`
	Pseudo      string          `yaml:"pseudo"`
	Top         int             `yaml:"top"`
	Bottom      int             `yaml:"bottom"`
	MarginBoxes []dumpMarginBox `yaml:"margin_boxes,omitempty"`
	Lines       []dumpLine      `yaml:"lines,omitempty"`
}

type dumpDocument struct {
	Generator string     `yaml:"generator"`
	Root      *dumpBox   `yaml:"root,omitempty"`
	Pages     []dumpPage `yaml:"pages,omitempty"`
}

func boxLabel(bf *bo.BoxFields) string {
	tag := bf.ElementTag()
	if bf.PseudoType != "" {
		tag += "::" + bf.PseudoType
	}
	return tag
}

// lineText concatenates the text runs found in [box].
func lineText(box bo.Box) string {
	var sb strings.Builder
	var walk func(b bo.Box)
	walk = func(b bo.Box) {
		switch b := b.(type) {
		case *bo.InlineText:
			sb.WriteString(b.Text)
		case *bo.InlineLayoutBox:
			for _, child := range b.Children() {
				walk(child)
			}
		case *bo.LineBox:
			for _, child := range b.InlineChildren() {
				walk(child)
			}
		}
	}
	walk(box)
	return sb.String()
}

func newDumpBox(box bo.Box) dumpBox {
	bf := box.Box()
	out := dumpBox{
		Type:    box.Type().String(),
		Element: boxLabel(bf),
		X:       bf.AbsX,
		Y:       bf.AbsY,
		Width:   bf.Width(),
		Height:  bf.Height,
	}
	if text, ok := box.(*bo.InlineText); ok {
		out.Text = text.Text
		return out
	}
	for _, child := range box.Children() {
		out.Children = append(out.Children, newDumpBox(child))
	}
	return out
}

// pageLines returns the lines of [root] starting on [page].
func pageLines(root bo.Box, page *bo.PageBox) []dumpLine {
	var out []dumpLine
	for _, box := range bo.Descendants(root) {
		line, ok := box.(*bo.LineBox)
		if !ok || !line.ContainsContent || line.AbsY < page.Top || line.AbsY >= page.Bottom {
			continue
		}
		out = append(out, dumpLine{
			X:     line.AbsX,
			Y:     line.AbsY - page.Top,
			Width: line.Width(),
			Text:  lineText(line),
		})
	}
	return out
}

func newDumpPages(doc *document.Document) []dumpPage {
	var out []dumpPage
	for _, page := range doc.Pages() {
		p := dumpPage{
			Number: page.Index + 1,
			Pseudo: page.Pseudo.String(),
			Top:    page.Top,
			Bottom: page.Bottom,
			Lines:  pageLines(doc.Root, page),
		}
		for _, mb := range page.MarginBoxes {
			p.MarginBoxes = append(p.MarginBoxes, dumpMarginBox{Area: mb.Area.String(), Box: newDumpBox(mb.Box)})
		}
		out = append(out, p)
	}
	return out
}

// dumpYAML serializes the layout of [doc]: the box tree, or
// the lines of each page when [perPage] is true.
func dumpYAML(doc *document.Document, perPage bool) ([]byte, error) {
	out := dumpDocument{Generator: utils.VersionString}
	if perPage {
		out.Pages = newDumpPages(doc)
	} else {
		root := newDumpBox(doc.Root)
		out.Root = &root
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal layout: %w", err)
	}
	return data, nil
}

func readStylesheets(paths []string) ([]tree.CSS, error) {
	var out []tree.CSS
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read stylesheet: %w", err)
		}
		out = append(out, tree.NewCSS(data))
	}
	return out, nil
}

func runDump(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := envFromContext(ctx)
	log := e.Log.Named("dump")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	cfg := *e.Cfg
	if cmd.Bool("flow") {
		cfg.Layout.Paginate = false
	}
	if cmd.Bool("break-anywhere") {
		cfg.Layout.BreakAnywhere = true
	}
	perPage := cmd.Bool("pages")
	if perPage && !cfg.Layout.Paginate {
		log.Warn("Pages requested for a continuous layout, dumping the box tree")
		perPage = false
	}

	sheets, err := readStylesheets(cmd.StringSlice("css"))
	if err != nil {
		return err
	}
	doc, err := document.RenderFile(src, document.Options{Config: &cfg, Stylesheets: sheets})
	if err != nil {
		return err
	}
	log.Info("Layout done", zap.String("source", src), zap.Int("pages", len(doc.Pages())))

	data, err := dumpYAML(doc, perPage)
	if err != nil {
		return err
	}
	return writeOutput(cmd.Args().Get(1), data)
}
