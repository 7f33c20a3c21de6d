package injector

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/speedyapply/internal/dom"
)

func injectText(_ context.Context, _ *Injector, el *dom.Element, value, key string) bool {
	v := FormatDate(el, value, key)
	if wantsTyping(el, key) {
		TypeText(el, v)
	} else {
		ApplyValue(el, v)
	}
	return true
}

var yearOption = regexp.MustCompile(`^(19|20)\d{2}$`)

func injectSelect(_ context.Context, _ *Injector, el *dom.Element, value, key string) bool {
	opts := el.Options()
	if len(opts) == 0 {
		return false
	}
	if IsDateKey(key) {
		if t, ok := ParseDate(value); ok {
			if opt := matchDateOption(opts, t.Year(), int(t.Month())); opt != nil {
				return chooseOption(el, opt)
			}
		}
	}
	needle := strings.ToLower(value)
	for _, opt := range opts {
		if strings.Contains(strings.ToLower(dom.OptionValue(opt)), needle) ||
			strings.Contains(strings.ToLower(opt.Text()), needle) {
			return chooseOption(el, opt)
		}
	}
	return false
}

// matchDateOption picks the option for a year select or a month select. A
// select is a year select when any option looks like a 1900-2099 year.
func matchDateOption(opts []*dom.Element, year, month int) *dom.Element {
	isYears := false
	for _, opt := range opts {
		if yearOption.MatchString(strings.TrimSpace(dom.OptionValue(opt))) || yearOption.MatchString(opt.Text()) {
			isYears = true
			break
		}
	}
	if isYears {
		y := strconv.Itoa(year)
		for _, opt := range opts {
			if dom.OptionValue(opt) == y || opt.Text() == y {
				return opt
			}
		}
		return nil
	}

	name := monthNames[month-1]
	forms := []string{
		strings.ToLower(name),
		strings.ToLower(name[:3]),
		pad2(month),
		strconv.Itoa(month),
	}
	for _, form := range forms {
		for _, opt := range opts {
			v := strings.ToLower(strings.TrimSpace(dom.OptionValue(opt)))
			t := strings.ToLower(opt.Text())
			if v == form || t == form {
				return opt
			}
		}
	}
	return nil
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func chooseOption(el *dom.Element, opt *dom.Element) bool {
	v := dom.OptionValue(opt)
	el.SetValue(v)
	TriggerEvents(el)
	return el.SelectedOption() == opt || el.Value() == v
}

func injectRadio(_ context.Context, _ *Injector, el *dom.Element, value, _ string) bool {
	needle := strings.ToLower(value)
	hit := strings.ToLower(el.Attr("value")) == needle
	if !hit {
		if labels := el.Labels(); len(labels) > 0 && strings.Contains(strings.ToLower(labels[0].Text()), needle) {
			hit = true
		}
	}
	if !hit {
		if wrap := el.Closest("label"); wrap != nil && strings.Contains(strings.ToLower(wrap.Text()), needle) {
			hit = true
		}
	}
	if !hit {
		return false
	}
	el.Click()
	el.SetChecked(true)
	TriggerEvents(el)
	return true
}

// Truthy reports whether a value means "checked".
func Truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes":
		return true
	}
	return false
}

func injectCheckbox(_ context.Context, _ *Injector, el *dom.Element, value, _ string) bool {
	want := Truthy(value)
	if el.Checked() != want {
		el.Click()
		el.SetChecked(want)
		TriggerEvents(el)
	}
	return el.Checked() == want
}

const dropdownOptionSelector = `[role="option"], li, div[class*="option"]`

func injectDropdown(ctx context.Context, in *Injector, el *dom.Element, value, _ string) bool {
	el.Focus()
	el.Click()
	if el.Tag() == "input" {
		TypeText(el, value)
	}

	var listbox *dom.Element
	Poll(ctx, in.clock, in.pollInterval, in.settle, func() bool {
		listbox = findListbox(el)
		return listbox != nil && len(listbox.QueryAll(dropdownOptionSelector)) > 0
	})
	if listbox == nil {
		el.Dispatch(dom.KeyEvent("keydown", "Enter"))
		return false
	}

	opts := listbox.QueryAll(dropdownOptionSelector)
	needle := strings.ToLower(value)
	for _, opt := range opts {
		if strings.ToLower(opt.Text()) == needle {
			opt.Click()
			return true
		}
	}
	for _, opt := range opts {
		if strings.Contains(strings.ToLower(opt.Text()), needle) {
			opt.Click()
			return true
		}
	}
	return false
}

// findListbox locates a dropdown's options container: the aria-controls
// target, else the first visible role=listbox, else a list beside the
// element.
func findListbox(el *dom.Element) *dom.Element {
	doc := el.Document()
	if id := el.Attr("aria-controls"); id != "" {
		if lb := el.Root().ElementByID(id); lb != nil {
			return lb
		}
		if lb := doc.ElementByID(id); lb != nil {
			return lb
		}
	}
	scopes := []*dom.Root{el.Root()}
	if el.Root().IsShadow() {
		scopes = append(scopes, doc.Root())
	}
	for _, scope := range scopes {
		for _, lb := range scope.QueryAll(`[role="listbox"]`) {
			if lb.Visible() {
				return lb
			}
		}
	}
	if parent := el.Parent(); parent != nil {
		return parent.Query("ul")
	}
	return nil
}
