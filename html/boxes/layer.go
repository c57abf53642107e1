package boxes

import (
	"fmt"
	"sort"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
)

// Layer groups the boxes sharing a stacking context or a coordinate
// system: the root box, and the positioned boxes.
// The root layer also owns the pages and the running elements.
type Layer struct {
	Master *BlockBox
	Parent *Layer

	children []*Layer
	floats   []*BlockBox

	// root layer only

	pageStyler    PageStyler
	pages         []*PageBox
	lastRequested int
	runningBlocks map[string][]*BlockBox
	pageSequences []*BlockBox
}

// NewRootLayer returns the layer of the root box. When [styler] is not
// nil, the layer is paginated.
func NewRootLayer(master *BlockBox, styler PageStyler) *Layer {
	out := &Layer{Master: master, pageStyler: styler, runningBlocks: map[string][]*BlockBox{}}
	master.Layer = out
	master.ContainingLayer = out
	return out
}

// NewLayer returns the layer established by [master], inside [parent].
func NewLayer(parent *Layer, master *BlockBox) *Layer {
	out := &Layer{Master: master}
	master.Layer = out
	master.ContainingLayer = out
	parent.AddChild(out)
	return out
}

func (l *Layer) String() string { return fmt.Sprintf("<Layer %s z:%d>", l.Master.ElementTag(), l.ZIndex()) }

// IsRoot is true for the layer without parent.
func (l *Layer) IsRoot() bool { return l.Parent == nil }

// Root returns the root of the layer tree.
func (l *Layer) Root() *Layer {
	for l.Parent != nil {
		l = l.Parent
	}
	return l
}

// IsPaginated is true for the layers of a paginated document.
func (l *Layer) IsPaginated() bool { return l.Root().pageStyler != nil }

// IsStackingContext is true for the root and the positioned
// boxes with an integer z-index.
func (l *Layer) IsStackingContext() bool {
	return l.IsRoot() || l.Master.Style.IsStackingContext()
}

// ZIndex returns 0 for auto.
func (l *Layer) ZIndex() int {
	if z := l.Master.Style.ZIndex; !z.Auto {
		return z.Value
	}
	return 0
}

// Children returns the child layers, in insertion (document) order.
func (l *Layer) Children() []*Layer { return l.children }

func (l *Layer) AddChild(child *Layer) {
	child.Parent = l
	l.children = append(l.children, child)
}

// Detach removes the layer from its parent.
func (l *Layer) Detach() {
	if l.Parent == nil {
		return
	}
	siblings := l.Parent.children
	for i, c := range siblings {
		if c == l {
			l.Parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	l.Parent = nil
}

// AddFloat registers a float painted by the layer.
func (l *Layer) AddFloat(box *BlockBox) { l.floats = append(l.floats, box) }

func (l *Layer) RemoveFloat(box *BlockBox) {
	for i, f := range l.floats {
		if f == box {
			l.floats = append(l.floats[:i:i], l.floats[i+1:]...)
			return
		}
	}
}

// Floats returns the floats of the layer, in placement order.
func (l *Layer) Floats() []*BlockBox { return l.floats }

type zGroup uint8

const (
	zNegative zGroup = iota
	zZeroOrAuto
	zPositive
)

// collectLayers returns the layers painted by the stacking context [l]
// in the group [which]. Layers which are not stacking contexts are
// painted with the zero group, and their own children are
// considered as children of [l].
func (l *Layer) collectLayers(which zGroup) []*Layer {
	var out []*Layer
	for _, child := range l.children {
		if !child.IsStackingContext() {
			if which == zZeroOrAuto {
				out = append(out, child)
			}
			out = append(out, child.collectLayers(which)...)
			continue
		}
		z := child.ZIndex()
		if which == zNegative && z < 0 || which == zZeroOrAuto && z == 0 || which == zPositive && z > 0 {
			out = append(out, child)
		}
	}
	return out
}

func (l *Layer) sortedLayers(which zGroup) []*Layer {
	out := l.collectLayers(which)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex() < out[j].ZIndex() })
	return out
}

// StackingGroups returns the layers painted by the stacking context [l],
// split by z-index sign and sorted by z-index, ties keeping the
// document order.
func (l *Layer) StackingGroups() (negative, zeroOrAuto, positive []*Layer) {
	if !l.IsStackingContext() {
		panic(fmt.Sprintf("layer %s is not a stacking context", l))
	}
	return l.sortedLayers(zNegative), l.sortedLayers(zZeroOrAuto), l.sortedLayers(zPositive)
}

// AddRunningBlock registers a running element. Its StaticAbsY must
// be set, and is used to select the element for each page.
func (l *Layer) AddRunningBlock(box *BlockBox) {
	name := box.Style.RunningName
	list := append(l.runningBlocks[name], box)
	sort.SliceStable(list, func(i, j int) bool { return list[i].StaticAbsY < list[j].StaticAbsY })
	l.runningBlocks[name] = list
	box.runningLayer = l
}

func (l *Layer) RemoveRunningBlock(box *BlockBox) {
	name := box.Style.RunningName
	list := l.runningBlocks[name]
	for i, b := range list {
		if b == box {
			l.runningBlocks[name] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	box.runningLayer = nil
}

// RunningBlock returns the running element [name] to use on [page],
// or nil.
func (l *Layer) RunningBlock(name string, page *PageBox, which pr.PageElementPosition) *BlockBox {
	blocks := l.runningBlocks[name]
	var prev *BlockBox
	switch which {
	case pr.PageElementStart:
		for _, b := range blocks {
			if b.StaticAbsY >= page.Top {
				break
			}
			prev = b
		}
	case pr.PageElementFirst:
		for _, b := range blocks {
			if y := b.StaticAbsY; y >= page.Top && y < page.Bottom {
				return b
			} else if y >= page.Bottom {
				break
			}
			prev = b
		}
	case pr.PageElementLast:
		for _, b := range blocks {
			if b.StaticAbsY >= page.Bottom {
				break
			}
			prev = b
		}
	case pr.PageElementLastExcept:
		for _, b := range blocks {
			if y := b.StaticAbsY; y >= page.Top && y < page.Bottom {
				return nil
			} else if y >= page.Bottom {
				break
			}
			prev = b
		}
	}
	return prev
}
