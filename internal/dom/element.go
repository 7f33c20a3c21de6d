package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Element is a handle on one element node plus its live form-control state.
type Element struct {
	doc  *Document
	node *html.Node

	value   *string
	checked *bool

	valueSetter func(string)
	listeners   map[string][]Listener
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Attr returns the attribute value, or "" when absent.
func (e *Element) Attr(name string) string {
	return attr(e.node, name)
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool {
	return hasAttr(e.node, name)
}

// SetAttr sets or adds an attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Key != name {
			attrs = append(attrs, a)
		}
	}
	e.node.Attr = attrs
}

// ID returns the id attribute.
func (e *Element) ID() string { return e.Attr("id") }

// Name returns the name attribute.
func (e *Element) Name() string { return e.Attr("name") }

// Placeholder returns the placeholder attribute.
func (e *Element) Placeholder() string { return e.Attr("placeholder") }

// Role returns the ARIA role attribute.
func (e *Element) Role() string { return e.Attr("role") }

// Type mirrors the DOM type property: the lower-cased input type (default
// "text"), "select-one"/"select-multiple", "textarea", or "" for elements
// that are not form controls.
func (e *Element) Type() string {
	switch e.node.Data {
	case "input":
		t := strings.ToLower(strings.TrimSpace(e.Attr("type")))
		if t == "" {
			return "text"
		}
		return t
	case "select":
		if e.HasAttr("multiple") {
			return "select-multiple"
		}
		return "select-one"
	case "textarea":
		return "textarea"
	case "button":
		t := strings.ToLower(e.Attr("type"))
		if t == "" {
			return "submit"
		}
		return t
	}
	return ""
}

// IsFormControl reports whether the element is an input, select or textarea.
func (e *Element) IsFormControl() bool {
	switch e.node.Data {
	case "input", "select", "textarea":
		return true
	}
	return false
}

// Value returns the current value property.
func (e *Element) Value() string {
	switch e.node.Data {
	case "select":
		if opt := e.SelectedOption(); opt != nil {
			return OptionValue(opt)
		}
		return ""
	case "input":
		if e.value != nil {
			return *e.value
		}
		return e.Attr("value")
	case "textarea":
		if e.value != nil {
			return *e.value
		}
		return rawText(e.node)
	}
	if e.IsEditable() {
		return e.Text()
	}
	if e.value != nil {
		return *e.value
	}
	return ""
}

// SetValue writes the value through the native prototype setter. It never
// goes through a setter installed with OverrideValueSetter, which is what
// lets framework change tracking observe the new value.
func (e *Element) SetValue(v string) {
	switch e.node.Data {
	case "select":
		for _, opt := range e.Options() {
			if OptionValue(opt) == v {
				e.selectOption(opt)
				return
			}
		}
		e.selectOption(nil)
		return
	case "input", "textarea":
		e.value = &v
		return
	}
	if e.IsEditable() {
		for c := e.node.FirstChild; c != nil; {
			next := c.NextSibling
			e.node.RemoveChild(c)
			c = next
		}
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		return
	}
	e.value = &v
}

// AssignValue is a plain "el.value = v" assignment. Pages that wrap the
// value property (reactive frameworks) see it through OverrideValueSetter.
func (e *Element) AssignValue(v string) {
	if e.valueSetter != nil {
		e.valueSetter(v)
		return
	}
	e.SetValue(v)
}

// OverrideValueSetter installs an own-property value setter on the element,
// the way reactive frameworks shadow the prototype setter.
func (e *Element) OverrideValueSetter(fn func(string)) {
	e.valueSetter = fn
}

// IsEditable reports contenteditable elements and role=textbox rich editors.
func (e *Element) IsEditable() bool {
	ce := strings.ToLower(e.Attr("contenteditable"))
	return ce == "" && e.HasAttr("contenteditable") || ce == "true" || e.Role() == "textbox"
}

// Checked returns the checked property of a checkbox or radio.
func (e *Element) Checked() bool {
	if e.checked != nil {
		return *e.checked
	}
	return e.HasAttr("checked")
}

// SetChecked sets the checked property. Checking a radio unchecks the other
// radios of its group.
func (e *Element) SetChecked(on bool) {
	e.checked = &on
	if on && e.Type() == "radio" {
		for _, other := range e.RadioGroup() {
			if other != e {
				off := false
				other.checked = &off
			}
		}
	}
}

// RadioGroup returns the radios sharing this element's name within the same
// form (or tree scope when the radio has no form).
func (e *Element) RadioGroup() []*Element {
	name := e.Name()
	if name == "" || e.Type() != "radio" {
		return []*Element{e}
	}
	var scope func(func(*Element) bool)
	if form := e.Closest("form"); form != nil {
		scope = form.walk
	} else {
		scope = e.Root().Walk
	}
	var group []*Element
	scope(func(el *Element) bool {
		if el.Tag() == "input" && el.Type() == "radio" && el.Name() == name {
			group = append(group, el)
		}
		return true
	})
	return group
}

// Options returns the <option> elements of a select, including those in
// optgroups.
func (e *Element) Options() []*Element {
	if e.node.Data != "select" {
		return nil
	}
	var opts []*Element
	e.walk(func(el *Element) bool {
		if el.Tag() == "option" {
			opts = append(opts, el)
		}
		return true
	})
	return opts
}

// SelectedOption returns the selected option of a select: the last option
// carrying a selected flag, else the first option.
func (e *Element) SelectedOption() *Element {
	opts := e.Options()
	if len(opts) == 0 {
		return nil
	}
	var selected *Element
	for _, opt := range opts {
		if opt.HasAttr("selected") {
			selected = opt
		}
	}
	if selected == nil && !e.HasAttr("data-speedy-none-selected") {
		selected = opts[0]
	}
	return selected
}

func (e *Element) selectOption(target *Element) {
	for _, opt := range e.Options() {
		opt.RemoveAttr("selected")
	}
	if target == nil {
		e.SetAttr("data-speedy-none-selected", "")
		return
	}
	e.RemoveAttr("data-speedy-none-selected")
	target.SetAttr("selected", "")
}

// OptionValue returns an option's value attribute, falling back to its text.
func OptionValue(opt *Element) string {
	if opt.HasAttr("value") {
		return opt.Attr("value")
	}
	return opt.Text()
}

// Text approximates innerText: rendered descendant text, whitespace
// collapsed and trimmed.
func (e *Element) Text() string {
	return collapse(innerText(e.node, nil))
}

// RawText returns the element's own text children unmodified, as for the
// body of a <script>.
func (e *Element) RawText() string {
	return rawText(e.node)
}

// TextExcluding is Text with descendants matching selector removed.
func (e *Element) TextExcluding(selector string) string {
	sel := compile(selector)
	return collapse(innerText(e.node, func(n *html.Node) bool {
		return sel != nil && sel.Match(n)
	}))
}

func innerText(n *html.Node, skip func(*html.Node) bool) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				sb.WriteString(c.Data)
			case html.ElementNode:
				switch c.Data {
				case "script", "style", "noscript", "template", "head":
					continue
				case "br":
					sb.WriteString("\n")
					continue
				}
				if displayNone(c) || (skip != nil && skip(c)) {
					continue
				}
				sb.WriteString(" ")
				visit(c)
				sb.WriteString(" ")
			}
		}
	}
	visit(n)
	return sb.String()
}

func rawText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Parent returns the parent element. Top-level children of a shadow root and
// the document element have no parent element.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode || isShadowTemplate(p) {
		return nil
	}
	return e.doc.wrap(p)
}

// PreviousSibling returns the previous element sibling.
func (e *Element) PreviousSibling() *Element {
	for s := e.node.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && !isShadowTemplate(s) {
			return e.doc.wrap(s)
		}
	}
	return nil
}

// NextSibling returns the next element sibling.
func (e *Element) NextSibling() *Element {
	for s := e.node.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode && !isShadowTemplate(s) {
			return e.doc.wrap(s)
		}
	}
	return nil
}

// Children returns the element children, excluding a shadow root template.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !isShadowTemplate(c) {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Matches reports whether the element matches selector.
func (e *Element) Matches(selector string) bool {
	sel := compile(selector)
	return sel != nil && sel.Match(e.node)
}

// Closest returns the nearest inclusive ancestor matching selector, without
// leaving the element's tree scope.
func (e *Element) Closest(selector string) *Element {
	sel := compile(selector)
	if sel == nil {
		return nil
	}
	for cur := e; cur != nil; cur = cur.Parent() {
		if sel.Match(cur.node) {
			return cur
		}
	}
	return nil
}

// QueryAll returns matching descendants in document order.
func (e *Element) QueryAll(selector string) []*Element {
	sel := compile(selector)
	if sel == nil {
		return nil
	}
	var out []*Element
	e.walk(func(el *Element) bool {
		if sel.Match(el.node) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Query returns the first matching descendant, or nil.
func (e *Element) Query(selector string) *Element {
	sel := compile(selector)
	if sel == nil {
		return nil
	}
	var found *Element
	e.walk(func(el *Element) bool {
		if sel.Match(el.node) {
			found = el
			return false
		}
		return true
	})
	return found
}

func (e *Element) walk(fn func(*Element) bool) {
	walkScope(e.node, func(n *html.Node) bool {
		return fn(e.doc.wrap(n))
	})
}

// Root returns the tree scope containing the element.
func (e *Element) Root() *Root {
	for cur := e.node.Parent; cur != nil; cur = cur.Parent {
		if isShadowTemplate(cur) {
			return &Root{doc: e.doc, node: cur, host: e.doc.wrap(cur.Parent)}
		}
	}
	return e.doc.Root()
}

// ShadowRoot returns the element's open shadow root, or nil.
func (e *Element) ShadowRoot() *Root {
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if isShadowTemplate(c) {
			return &Root{doc: e.doc, node: c, host: e}
		}
	}
	return nil
}

// Labels mirrors the labels property: <label for=id> in the same scope,
// followed by a wrapping <label>.
func (e *Element) Labels() []*Element {
	var labels []*Element
	if id := e.ID(); id != "" {
		e.Root().Walk(func(el *Element) bool {
			if el.Tag() == "label" && el.Attr("for") == id {
				labels = append(labels, el)
			}
			return true
		})
	}
	if wrap := e.Closest("label"); wrap != nil && wrap != e {
		if len(labels) == 0 || labels[0] != wrap {
			labels = append(labels, wrap)
		}
	}
	return labels
}

// Visible applies the page's visibility test: rendered (non-null
// offsetParent), visibility not hidden, and opacity not zero.
func (e *Element) Visible() bool {
	if !rendered(e.node) {
		return false
	}
	if computedVisibility(e.node) == "hidden" {
		return false
	}
	return parseStyle(e.Attr("style"))["opacity"] != "0"
}

// StyleHidden reports display:none or visibility:hidden, the two styles the
// label sibling walk treats as invisible.
func (e *Element) StyleHidden() bool {
	return !rendered(e.node) || computedVisibility(e.node) == "hidden"
}

// Style returns an inline style property.
func (e *Element) Style(prop string) string {
	return parseStyle(e.Attr("style"))[strings.ToLower(prop)]
}

// SetStyle sets an inline style property.
func (e *Element) SetStyle(prop, value string) {
	style := e.Attr("style")
	props := parseStyle(style)
	order := styleOrder(style)
	prop = strings.ToLower(prop)
	if _, ok := props[prop]; !ok {
		order = append(order, prop)
	}
	props[prop] = value
	e.SetAttr("style", formatStyle(props, order))
}

// Focus moves focus to the element and dispatches focus.
func (e *Element) Focus() {
	e.doc.focused = e
	e.Dispatch(Event{Type: "focus"})
}

// Blur removes focus and dispatches blur.
func (e *Element) Blur() {
	if e.doc.focused == e {
		e.doc.focused = nil
	}
	e.Dispatch(Event{Type: "blur"})
}

// Click dispatches click and runs the default activation behaviour of
// checkboxes (toggle) and radios (check).
func (e *Element) Click() {
	switch e.Type() {
	case "checkbox":
		e.SetChecked(!e.Checked())
	case "radio":
		e.SetChecked(true)
	}
	e.Dispatch(NewEvent("click"))
}

// CSSPath returns a child-index selector path from the document element, or
// "" for elements inside a shadow root.
func (e *Element) CSSPath() string {
	if e.Root().IsShadow() {
		return ""
	}
	var parts []string
	for cur := e; cur != nil; cur = cur.Parent() {
		idx := 1
		for s := cur.node.PrevSibling; s != nil; s = s.PrevSibling {
			if s.Type == html.ElementNode {
				idx++
			}
		}
		if cur.Parent() == nil {
			parts = append(parts, cur.Tag())
			break
		}
		parts = append(parts, fmt.Sprintf("%s:nth-child(%d)", cur.Tag(), idx))
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

// String describes the element for logs.
func (e *Element) String() string {
	var sb strings.Builder
	sb.WriteString("<" + e.Tag())
	for _, name := range []string{"id", "name", "type", "role"} {
		if v := e.Attr(name); v != "" {
			fmt.Fprintf(&sb, " %s=%q", name, v)
		}
	}
	sb.WriteString(">")
	return sb.String()
}

// reflect copies dirty properties into attributes before rendering.
func (e *Element) reflect() {
	switch e.node.Data {
	case "input":
		if e.value != nil {
			e.SetAttr("value", *e.value)
		}
		if e.checked != nil {
			if *e.checked {
				e.SetAttr("checked", "")
			} else {
				e.RemoveAttr("checked")
			}
		}
	case "textarea":
		if e.value != nil {
			for c := e.node.FirstChild; c != nil; {
				next := c.NextSibling
				e.node.RemoveChild(c)
				c = next
			}
			e.node.AppendChild(&html.Node{Type: html.TextNode, Data: *e.value})
		}
	case "select":
		e.RemoveAttr("data-speedy-none-selected")
	}
}
