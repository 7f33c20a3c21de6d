package browser

import (
	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/engine"
	"github.com/jonathan/speedyapply/internal/injector"
)

// ActionKind says which property Replay writes.
type ActionKind string

const (
	ActionValue   ActionKind = "value"
	ActionChecked ActionKind = "checked"
	ActionText    ActionKind = "text"
)

// Action copies the state of one filled control into the live page.
type Action struct {
	Path    string     `json:"path"`
	Kind    ActionKind `json:"kind"`
	Value   string     `json:"value,omitempty"`
	Checked bool       `json:"checked,omitempty"`
	Border  string     `json:"border,omitempty"`
}

// Plan turns the controls a scan marked as filled into replay actions.
// Controls inside shadow roots and dropdowns without a value property have
// no stable path and are left out.
func Plan(doc *dom.Document) []Action {
	var actions []Action
	seen := make(map[string]bool)
	add := func(a Action) {
		if a.Path == "" || seen[a.Path] {
			return
		}
		seen[a.Path] = true
		actions = append(actions, a)
	}

	for _, el := range doc.QueryAll("[" + engine.FilledAttr + "]") {
		border := el.Style("border")
		switch injector.Classify(el) {
		case injector.Radio:
			for _, member := range el.RadioGroup() {
				if member.Checked() {
					add(Action{Path: member.CSSPath(), Kind: ActionChecked, Checked: true, Border: border})
				}
			}
		case injector.Checkbox:
			add(Action{Path: el.CSSPath(), Kind: ActionChecked, Checked: el.Checked(), Border: border})
		case injector.TextLike:
			if el.IsEditable() && el.Tag() != "input" && el.Tag() != "textarea" {
				add(Action{Path: el.CSSPath(), Kind: ActionText, Value: el.Text(), Border: border})
				continue
			}
			add(Action{Path: el.CSSPath(), Kind: ActionValue, Value: el.Value(), Border: border})
		case injector.Select:
			add(Action{Path: el.CSSPath(), Kind: ActionValue, Value: el.Value(), Border: border})
		case injector.CustomDropdown:
			if el.Tag() == "input" {
				add(Action{Path: el.CSSPath(), Kind: ActionValue, Value: el.Value(), Border: border})
			}
		}
	}
	return actions
}

// replayScript sets each control through the native property setter so
// framework-managed inputs see the change, then fires the events a user
// edit would.
const replayScript = `function(actions) {
  const marker = "` + engine.FilledAttr + `";
  const setters = {
    INPUT: Object.getOwnPropertyDescriptor(HTMLInputElement.prototype, "value").set,
    TEXTAREA: Object.getOwnPropertyDescriptor(HTMLTextAreaElement.prototype, "value").set,
    SELECT: Object.getOwnPropertyDescriptor(HTMLSelectElement.prototype, "value").set,
  };
  const fire = (el, type) => el.dispatchEvent(new Event(type, { bubbles: true }));
  let applied = 0;
  for (const a of actions) {
    const el = document.querySelector(a.path);
    if (!el) continue;
    if (a.kind === "checked") {
      if (el.checked !== a.checked) el.click();
      if (el.checked !== a.checked) el.checked = a.checked;
    } else if (a.kind === "text") {
      el.textContent = a.value;
      fire(el, "input");
    } else {
      const set = setters[el.tagName];
      if (set) set.call(el, a.value); else el.value = a.value;
      fire(el, "input");
    }
    fire(el, "change");
    el.dispatchEvent(new Event("blur"));
    el.setAttribute(marker, "true");
    if (a.border) el.style.border = a.border;
    applied++;
  }
  return applied;
}`
