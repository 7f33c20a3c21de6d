package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Root is a tree scope: the document itself or an open shadow root. Queries
// on a Root never descend into nested shadow roots.
type Root struct {
	doc  *Document
	node *html.Node
	host *Element
}

// Host returns the shadow host, or nil for the document scope.
func (r *Root) Host() *Element {
	return r.host
}

// IsShadow reports whether r is a shadow root.
func (r *Root) IsShadow() bool {
	return r.host != nil
}

// Walk visits every element in the scope in document order. Returning false
// from fn stops the walk.
func (r *Root) Walk(fn func(*Element) bool) {
	walkScope(r.node, func(n *html.Node) bool {
		return fn(r.doc.wrap(n))
	})
}

// QueryAll returns matching elements in document order.
func (r *Root) QueryAll(selector string) []*Element {
	sel := compile(selector)
	if sel == nil {
		return nil
	}
	var out []*Element
	walkScope(r.node, func(n *html.Node) bool {
		if sel.Match(n) {
			out = append(out, r.doc.wrap(n))
		}
		return true
	})
	return out
}

// Query returns the first matching element, or nil.
func (r *Root) Query(selector string) *Element {
	sel := compile(selector)
	if sel == nil {
		return nil
	}
	var found *Element
	walkScope(r.node, func(n *html.Node) bool {
		if sel.Match(n) {
			found = r.doc.wrap(n)
			return false
		}
		return true
	})
	return found
}

// ElementByID returns the first element whose id equals id.
func (r *Root) ElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	walkScope(r.node, func(n *html.Node) bool {
		if attr(n, "id") == id {
			found = r.doc.wrap(n)
			return false
		}
		return true
	})
	return found
}

// LabelFor returns the first <label for=id> in the scope.
func (r *Root) LabelFor(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	walkScope(r.node, func(n *html.Node) bool {
		if n.Data == "label" && attr(n, "for") == id {
			found = r.doc.wrap(n)
			return false
		}
		return true
	})
	return found
}

// ShadowRoots returns the open shadow roots hosted by elements of this scope.
func (r *Root) ShadowRoots() []*Root {
	var roots []*Root
	r.Walk(func(el *Element) bool {
		if sr := el.ShadowRoot(); sr != nil {
			roots = append(roots, sr)
		}
		return true
	})
	return roots
}

// walkScope calls fn for element descendants of n, skipping shadow root
// templates and everything below them.
func walkScope(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if isShadowTemplate(c) {
			continue
		}
		if !fn(c) {
			return false
		}
		if !walkScope(c, fn) {
			return false
		}
	}
	return true
}

func isShadowTemplate(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "template" {
		return false
	}
	mode := strings.ToLower(attr(n, "shadowrootmode"))
	if mode == "" {
		mode = strings.ToLower(attr(n, "shadowroot"))
	}
	return mode == "open"
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}
