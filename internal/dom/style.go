package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// parseStyle reads an inline style attribute into a property map with
// lower-cased names and values.
func parseStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important")))
		if name != "" {
			props[name] = strings.TrimSpace(value)
		}
	}
	return props
}

func formatStyle(props map[string]string, order []string) string {
	var parts []string
	for _, name := range order {
		if v, ok := props[name]; ok {
			parts = append(parts, name+": "+v)
		}
	}
	return strings.Join(parts, "; ")
}

// styleOrder returns property names in the order they appear in style, so
// rewriting an inline style keeps its layout stable.
func styleOrder(style string) []string {
	var order []string
	seen := make(map[string]bool)
	for _, decl := range strings.Split(style, ";") {
		name, _, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" && !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	return order
}

func displayNone(n *html.Node) bool {
	if hasAttr(n, "hidden") {
		return true
	}
	if n.Data == "input" && strings.EqualFold(attr(n, "type"), "hidden") {
		return true
	}
	return parseStyle(attr(n, "style"))["display"] == "none"
}

// rendered reports whether n and all of its ancestors (crossing into shadow
// hosts) are displayed. An element that is not rendered has a null
// offsetParent.
func rendered(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		if isShadowTemplate(cur) {
			continue
		}
		if cur.Data == "template" {
			return false
		}
		if displayNone(cur) {
			return false
		}
	}
	return true
}

// computedVisibility resolves the inherited visibility property.
func computedVisibility(n *html.Node) string {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		if v, ok := parseStyle(attr(cur, "style"))["visibility"]; ok && v != "inherit" {
			return v
		}
	}
	return "visible"
}
