package boxes

import (
	"strings"

	"golang.org/x/net/html"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	"github.com/nichevision/flyingsaucer-sub000/html/tree"
	"github.com/nichevision/flyingsaucer-sub000/utils"
)

const listItemCounter = "list-item"

// counters implements the scoping of CSS 2.1 counters.
// A counter reset by an element is visible to the element, its
// descendants and its following siblings (with their descendants).
type counters struct {
	values map[string][]int
	// one set per nesting level, with the names of the
	// counters created at this level
	scopes []utils.Set
}

func newCounters() counters {
	return counters{values: map[string][]int{}, scopes: []utils.Set{utils.NewSet()}}
}

// update applies counter-reset and counter-increment in the current scope.
func (cs *counters) update(style *pr.Style) {
	siblingScopes := cs.scopes[len(cs.scopes)-1]
	for _, op := range style.CounterReset {
		if siblingScopes.Has(op.Name) {
			values := cs.values[op.Name]
			cs.values[op.Name] = values[:len(values)-1]
		} else {
			siblingScopes.Add(op.Name)
		}
		cs.values[op.Name] = append(cs.values[op.Name], op.Value)
	}

	increments := style.CounterIncrement
	if style.IsListItem() {
		hasListItem := false
		for _, op := range increments {
			if op.Name == listItemCounter {
				hasListItem = true
				break
			}
		}
		if !hasListItem {
			increments = append(pr.CounterOps{{Name: listItemCounter, Value: 1}}, increments...)
		}
	}
	for _, op := range increments {
		values := cs.values[op.Name]
		if len(values) == 0 {
			// implicit reset
			siblingScopes.Add(op.Name)
			values = []int{0}
		}
		values[len(values)-1] += op.Value
		cs.values[op.Name] = values
	}
}

// push starts the scope of the children of an element.
func (cs *counters) push() { cs.scopes = append(cs.scopes, utils.NewSet()) }

// pop ends the scope of the children of an element, removing the
// counters created in it.
func (cs *counters) pop() {
	scope := cs.scopes[len(cs.scopes)-1]
	for name := range scope {
		values := cs.values[name]
		cs.values[name] = values[:len(values)-1]
	}
	cs.scopes = cs.scopes[:len(cs.scopes)-1]
}

// value returns the innermost value of the counter [name], 0 if missing.
func (cs *counters) value(name string) int {
	if values := cs.values[name]; len(values) != 0 {
		return values[len(values)-1]
	}
	return 0
}

// contentText resolves the value of the content property,
// for an element or one of its pseudo elements.
func (cs *counters) contentText(element *html.Node, content pr.Contents) string {
	var b strings.Builder
	for _, item := range content {
		switch item.Kind {
		case pr.ContentString:
			b.WriteString(item.String)
		case pr.ContentAttr:
			b.WriteString(tree.GetAttr(element, item.String))
		case pr.ContentCounter:
			b.WriteString(pr.FormatCounter(cs.value(item.String), item.Style))
		case pr.ContentCounters:
			values := cs.values[item.String]
			if len(values) == 0 {
				values = []int{0}
			}
			for i, v := range values {
				if i != 0 {
					b.WriteString(item.Separator)
				}
				b.WriteString(pr.FormatCounter(v, item.Style))
			}
		}
	}
	return b.String()
}
