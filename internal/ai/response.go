package ai

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/injector"
)

var (
	reOpenFence  = regexp.MustCompile("^```(?:json|text)?\\s*\n")
	reCloseFence = regexp.MustCompile("\n\\s*```$")
	strict       = bluemonday.StrictPolicy()
)

// Clean strips code fences, one pair of surrounding quotes and any HTML
// markup from a model reply.
func Clean(response string) string {
	s := strings.TrimSpace(response)
	s = reOpenFence.ReplaceAllString(s, "")
	s = reCloseFence.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		s = s[1 : len(s)-1]
	}
	s = html.UnescapeString(strict.Sanitize(s))
	return strings.TrimSpace(s)
}

// MatchOption returns the option equal to answer ignoring case, else the
// first option containing it, else "".
func MatchOption(options []string, answer string) string {
	needle := strings.ToLower(strings.TrimSpace(answer))
	if needle == "" {
		return ""
	}
	for _, opt := range options {
		if strings.ToLower(opt) == needle {
			return opt
		}
	}
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt), needle) {
			return opt
		}
	}
	return ""
}

// Apply injects a model reply into the field and returns the controls that
// now hold it. Choice answers that match no option are dropped.
func Apply(ctx context.Context, in *injector.Injector, el *dom.Element, f Field, response string) []*dom.Element {
	answer := Clean(response)
	if answer == "" {
		return nil
	}

	switch {
	case f.Type.IsChoice():
		best := MatchOption(f.Options, answer)
		if best == "" {
			return nil
		}
		target := el
		for i, opt := range f.Options {
			if opt == best && i < len(f.Members) {
				target = f.Members[i]
				break
			}
		}
		if in.Inject(ctx, target, best, "") {
			return []*dom.Element{target}
		}
		return nil

	case f.Type == FieldCheckbox:
		if len(f.Members) == 0 {
			lower := strings.ToLower(answer)
			if strings.Contains(lower, "yes") || strings.Contains(lower, "agree") {
				if in.Inject(ctx, el, "true", "") {
					return []*dom.Element{el}
				}
			}
			return nil
		}
		var filled []*dom.Element
		for _, choice := range strings.Split(answer, ",") {
			best := MatchOption(f.Options, choice)
			if best == "" {
				continue
			}
			for i, opt := range f.Options {
				if opt == best && in.Inject(ctx, f.Members[i], "true", "") {
					filled = append(filled, f.Members[i])
					break
				}
			}
		}
		return filled

	default:
		if in.Inject(ctx, el, answer, "") {
			return []*dom.Element{el}
		}
		return nil
	}
}
