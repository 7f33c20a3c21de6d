package injector

import (
	"strings"

	"github.com/jonathan/speedyapply/internal/dom"
)

// Kind is the injection protocol an element needs. It is derived once per
// element by Classify.
type Kind int

const (
	Unsupported Kind = iota
	TextLike
	Select
	Radio
	Checkbox
	CustomDropdown
)

func (k Kind) String() string {
	switch k {
	case TextLike:
		return "text"
	case Select:
		return "select"
	case Radio:
		return "radio"
	case Checkbox:
		return "checkbox"
	case CustomDropdown:
		return "custom-dropdown"
	default:
		return "unsupported"
	}
}

// Classify derives the Kind of el from its tag, type and role.
func Classify(el *dom.Element) Kind {
	if el == nil {
		return Unsupported
	}
	role := strings.ToLower(el.Role())
	switch el.Tag() {
	case "select":
		return Select
	case "textarea":
		return TextLike
	case "input":
		switch el.Type() {
		case "radio":
			return Radio
		case "checkbox":
			return Checkbox
		case "file", "hidden", "submit", "button", "reset", "image":
			return Unsupported
		}
		if role == "combobox" {
			return CustomDropdown
		}
		return TextLike
	}
	if role == "combobox" {
		return CustomDropdown
	}
	if el.IsEditable() {
		return TextLike
	}
	switch {
	case el.Tag() == "div", el.Tag() == "button":
		return CustomDropdown
	case role == "button" && el.HasAttr("aria-haspopup"):
		return CustomDropdown
	case strings.Contains(el.Attr("data-automation-id"), "dropdown"):
		return CustomDropdown
	}
	return Unsupported
}
