// Package dom provides the DOM accessor the autofill engine works against: an
// in-memory document parsed from HTML that models attributes, form-control
// properties (value, checked, selected option), visibility, synthetic events
// with listeners, and open shadow roots declared with
// <template shadowrootmode="open">.
package dom

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed page. It is not safe for concurrent use; a page has a
// single thread of interest.
type Document struct {
	gq       *goquery.Document
	url      string
	elements map[*html.Node]*Element
	events   []Dispatched
	focused  *Element

	mutationListeners []func()
}

// Dispatched records one event delivered to a target element.
type Dispatched struct {
	Target *Element
	Event  Event
}

// Parse builds a Document from HTML source. pageURL may be empty.
func Parse(source string, pageURL string) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return nil, &ParseError{Message: "failed to parse HTML", Cause: err}
	}
	if pageURL != "" {
		if _, err := url.Parse(pageURL); err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("invalid page URL %q", pageURL), Cause: err}
		}
	}
	return &Document{
		gq:       gq,
		url:      pageURL,
		elements: make(map[*html.Node]*Element),
	}, nil
}

// MustParse is Parse for fixtures; it panics on error.
func MustParse(source string, pageURL string) *Document {
	doc, err := Parse(source, pageURL)
	if err != nil {
		panic(err)
	}
	return doc
}

// URL returns the page URL the document was loaded from.
func (d *Document) URL() string {
	return d.url
}

// Domain returns the page hostname without a leading "www.", or "" when the
// document has no URL.
func (d *Document) Domain() string {
	if d.url == "" {
		return ""
	}
	u, err := url.Parse(d.url)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// Title returns the text of the <title> element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.gq.Find("title").First().Text())
}

// Root returns the document tree scope.
func (d *Document) Root() *Root {
	return &Root{doc: d, node: d.gq.Nodes[0]}
}

// Body returns the <body> element, or nil.
func (d *Document) Body() *Element {
	return d.Root().Query("body")
}

// QueryAll returns matching elements in document order without piercing
// shadow roots, like document.querySelectorAll.
func (d *Document) QueryAll(selector string) []*Element {
	return d.Root().QueryAll(selector)
}

// Query returns the first matching element, or nil.
func (d *Document) Query(selector string) *Element {
	return d.Root().Query(selector)
}

// ElementByID mirrors document.getElementById.
func (d *Document) ElementByID(id string) *Element {
	return d.Root().ElementByID(id)
}

// ActiveElement returns the element that last received focus.
func (d *Document) ActiveElement() *Element {
	return d.focused
}

// Events returns every event dispatched so far, in order.
func (d *Document) Events() []Dispatched {
	out := make([]Dispatched, len(d.events))
	copy(out, d.events)
	return out
}

// EventsFor returns the event types dispatched directly at el, in order.
func (d *Document) EventsFor(el *Element) []string {
	var types []string
	for _, ev := range d.events {
		if ev.Target == el {
			types = append(types, ev.Event.Type)
		}
	}
	return types
}

// ResetEvents clears the dispatch log.
func (d *Document) ResetEvents() {
	d.events = nil
}

// OnMutation registers fn to run after every structural change made through
// AppendHTML or Remove.
func (d *Document) OnMutation(fn func()) {
	d.mutationListeners = append(d.mutationListeners, fn)
}

func (d *Document) mutated() {
	for _, fn := range d.mutationListeners {
		fn()
	}
}

// AppendHTML parses fragment in the context of parent and appends the
// resulting nodes. It returns the appended elements.
func (d *Document) AppendHTML(parent *Element, fragment string) ([]*Element, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent.node)
	if err != nil {
		return nil, &ParseError{Message: "failed to parse fragment", Cause: err}
	}
	var added []*Element
	for _, n := range nodes {
		parent.node.AppendChild(n)
		if n.Type == html.ElementNode {
			added = append(added, d.wrap(n))
		}
	}
	d.mutated()
	return added, nil
}

// Remove detaches el from the tree.
func (d *Document) Remove(el *Element) {
	if el.node.Parent == nil {
		return
	}
	el.node.Parent.RemoveChild(el.node)
	d.mutated()
}

// HTML renders the document with form-control properties reflected back into
// attributes so the output shows what was filled.
func (d *Document) HTML() (string, error) {
	for _, el := range d.elements {
		el.reflect()
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, d.gq.Nodes[0]); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return buf.String(), nil
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

func (d *Document) record(target *Element, ev Event) {
	d.events = append(d.events, Dispatched{Target: target, Event: ev})
}
