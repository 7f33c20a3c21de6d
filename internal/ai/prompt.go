package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/labels"
	"github.com/jonathan/speedyapply/internal/matcher"
	"github.com/jonathan/speedyapply/internal/prompts"
)

// FieldType is how the model is asked to answer.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldLongText FieldType = "long_text"
	FieldDropdown FieldType = "dropdown"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
	FieldNumeric  FieldType = "numeric"
	FieldDate     FieldType = "date"
)

// IsChoice reports whether answers must be one of the field's options.
func (t FieldType) IsChoice() bool {
	return t == FieldDropdown || t == FieldRadio
}

// Field describes one unidentified form control.
type Field struct {
	Label   string
	Type    FieldType
	Options []string
	// Members are the controls behind Options for radio and checkbox
	// groups, index-aligned with Options.
	Members []*dom.Element
}

// PageContext is what the model knows about the page and the applicant.
type PageContext struct {
	ProfileJSON string
	PageTitle   string
	Company     string
	Section     string
}

// Prompt is the text sent to a Generator.
type Prompt struct {
	System string
	User   string
}

// Text joins both parts the way single-message providers receive them.
func (p Prompt) Text() string {
	return p.System + "\n\n" + p.User
}

const promptFile = "autofill.json"

var numericHints = []string{"experience", "years", "ctc", "salary"}

// BuildPrompt renders the prompt for a field. The same inputs always
// produce the same prompt.
func BuildPrompt(pc PageContext, f Field) Prompt {
	system := prompts.Format(prompts.MustGet(promptFile, "system"), map[string]string{
		"Profile":   pc.ProfileJSON,
		"PageTitle": pc.PageTitle,
		"Company":   pc.Company,
		"Section":   pc.Section,
	})

	var task string
	switch f.Type {
	case FieldDropdown, FieldRadio:
		task = "choice"
	case FieldCheckbox:
		task = "multi_choice"
	case FieldLongText:
		task = "long_text"
	case FieldNumeric:
		task = "numeric"
	case FieldDate:
		task = "date"
	default:
		task = "short_text"
	}
	data := map[string]string{"Label": f.Label, "Options": optionsJSON(f.Options)}
	user := prompts.Format(prompts.MustGet(promptFile, "field"), data) +
		prompts.Format(prompts.MustGet(promptFile, task), data)
	return Prompt{System: system, User: user}
}

func optionsJSON(opts []string) string {
	if opts == nil {
		opts = []string{}
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Describe derives the Field for el. Labels of radio and checkbox group
// members come from r.
func Describe(el *dom.Element, label string, r labels.Resolver) Field {
	f := Field{Label: label, Type: FieldText}
	switch {
	case el.Tag() == "textarea":
		f.Type = FieldLongText
	case el.Tag() == "select":
		f.Type = FieldDropdown
		for _, opt := range el.Options() {
			if t := strings.TrimSpace(opt.Text()); t != "" {
				f.Options = append(f.Options, t)
			}
		}
	case el.Tag() == "input" && el.Type() == "radio":
		f.Type = FieldRadio
		if el.Name() != "" {
			f.Options, f.Members = groupLabels(el.RadioGroup(), r)
		}
	case el.Tag() == "input" && el.Type() == "checkbox":
		f.Type = FieldCheckbox
		group := checkboxGroup(el)
		if len(group) > 1 {
			f.Options, f.Members = groupLabels(group, r)
		} else {
			f.Options = []string{"Yes", "No"}
		}
	case el.Type() == "date":
		f.Type = FieldDate
	default:
		lower := strings.ToLower(label)
		if el.Type() == "number" {
			f.Type = FieldNumeric
		}
		for _, h := range numericHints {
			if strings.Contains(lower, h) {
				f.Type = FieldNumeric
			}
		}
	}
	return f
}

func checkboxGroup(el *dom.Element) []*dom.Element {
	name := el.Name()
	if name == "" {
		return []*dom.Element{el}
	}
	var group []*dom.Element
	for _, c := range el.Root().QueryAll(`input[type="checkbox"]`) {
		if c.Name() == name {
			group = append(group, c)
		}
	}
	return group
}

// groupLabels lists the labelled members of a group. Escape options such as
// "Other" are left out so no answer can select them.
func groupLabels(group []*dom.Element, r labels.Resolver) ([]string, []*dom.Element) {
	var opts []string
	var members []*dom.Element
	for _, m := range group {
		if lbl, ok := r.Resolve(m); ok && !matcher.IsEscapeOption(lbl) {
			opts = append(opts, lbl)
			members = append(members, m)
		}
	}
	return opts, members
}

var reCompany = regexp.MustCompile(`(?i)\s+at\s+([^|\-]+)`)

// CompanyFromTitle extracts "Acme" from titles like "Engineer at Acme | Jobs".
func CompanyFromTitle(title string) string {
	if m := reCompany.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

const (
	sectionDepth    = 5
	sectionSelector = "h1, h2, h3, h4, h5, h6, legend, label.section-label"
)

// SectionContext returns the text of the nearest heading, legend or section
// label found by searching up to five ancestors of el.
func SectionContext(el *dom.Element) string {
	cur := el.Parent()
	for depth := 0; cur != nil && depth < sectionDepth; depth++ {
		if h := cur.Query(sectionSelector); h != nil {
			return strings.TrimSpace(h.Text())
		}
		cur = cur.Parent()
	}
	return ""
}
