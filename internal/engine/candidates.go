package engine

import (
	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/platform"
)

// CollectCandidates enumerates the form controls a scan evaluates, in
// document order, followed by the controls of each open shadow root.
// Invisible controls are dropped unless they are text, email or tel inputs.
func CollectCandidates(doc *dom.Document) []*dom.Element {
	return collect(doc.Root(), platform.Detect(doc.URL()))
}

func collect(root *dom.Root, p platform.Platform) []*dom.Element {
	seen := map[*dom.Element]bool{}
	var found []*dom.Element
	for _, el := range root.QueryAll(platform.CandidateSelector) {
		seen[el] = true
		found = append(found, el)
	}
	for _, sel := range platform.ExtraCandidateSelectors(p) {
		for _, el := range root.QueryAll(sel) {
			if seen[el] || el.Type() == "hidden" || el.Type() == "file" {
				continue
			}
			seen[el] = true
			found = append(found, el)
		}
	}

	out := found[:0]
	for _, el := range found {
		if el.Visible() || keepsHidden(el) {
			out = append(out, el)
		}
	}

	for _, sr := range root.ShadowRoots() {
		out = append(out, collect(sr, p)...)
	}
	return out
}

func keepsHidden(el *dom.Element) bool {
	if el.Tag() != "input" {
		return false
	}
	switch el.Type() {
	case "text", "email", "tel":
		return true
	}
	return false
}
