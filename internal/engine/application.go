package engine

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/jonathan/speedyapply/internal/ai"
	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/platform"
	"github.com/jonathan/speedyapply/internal/store"
)

const (
	maxRoleLen = 50
	// dedupeWindow suppresses a second log entry for the same URL.
	dedupeWindow = time.Hour
)

// JobInfo is what a page says about the job being applied for.
type JobInfo struct {
	Role     string
	Company  string
	Location string
	Portal   string
}

var (
	reTitlePipe   = regexp.MustCompile(`\s+\|\s+([^|\-]+)`)
	reTitleHyphen = regexp.MustCompile(`\s+-\s+([^|\-]+)`)
	reTitleSep    = regexp.MustCompile(`\s+[-|]\s+`)
)

// ExtractJob reads role, company and location from the page. Company and
// location come from JobPosting JSON-LD first, then platform selectors, then
// the page title, then og:site_name. Job board names are never reported as
// the company.
func ExtractJob(doc *dom.Document) JobInfo {
	p := platform.Detect(doc.URL())
	info := JobInfo{Portal: platform.PortalName(doc.Domain())}

	info.Role = roleFromTitle(doc.Title())
	if info.Role == "" {
		info.Role = firstText(doc, platform.RoleSelectors(p))
	}
	if info.Role == "" {
		info.Role = "N/A"
	}

	info.Company, info.Location = fromJSONLD(doc, info.Portal)
	if info.Company == "" {
		info.Company = firstText(doc, platform.CompanySelectors(p))
	}
	if info.Location == "" {
		info.Location = firstText(doc, platform.LocationSelectors(p))
	}
	if info.Company == "" {
		info.Company = companyFromTitle(doc.Title())
	}
	if info.Company == "" {
		if meta := doc.Query(`meta[property="og:site_name"]`); meta != nil {
			if name := clean(meta.Attr("content")); !platform.IsPortalName(name) {
				info.Company = name
			}
		}
	}
	if platform.IsPortalName(info.Company) {
		info.Company = ""
	}
	return info
}

// roleFromTitle keeps the title text before the first spaced " - " or " | "
// separator, so hyphenated roles stay whole.
func roleFromTitle(title string) string {
	role := title
	if loc := reTitleSep.FindStringIndex(title); loc != nil {
		role = title[:loc[0]]
	}
	role = strings.TrimSpace(role)
	if r := []rune(role); len(r) > maxRoleLen {
		role = strings.TrimSpace(string(r[:maxRoleLen]))
	}
	return role
}

func companyFromTitle(title string) string {
	if c := ai.CompanyFromTitle(title); c != "" {
		return clean(c)
	}
	for _, re := range []*regexp.Regexp{reTitlePipe, reTitleHyphen} {
		if m := re.FindStringSubmatch(title); m != nil {
			return clean(m[1])
		}
	}
	return ""
}

func firstText(doc *dom.Document, selectors []string) string {
	for _, sel := range selectors {
		el := doc.Query(sel)
		if el == nil {
			continue
		}
		text := clean(el.Text())
		if text == "" && el.Tag() == "img" {
			text = clean(el.Attr("alt"))
		}
		if text != "" {
			return text
		}
	}
	return ""
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// fromJSONLD scans ld+json scripts for a JobPosting, including postings
// nested in arrays and @graph. A company of "confidential" or one naming the
// portal is ignored.
func fromJSONLD(doc *dom.Document, portal string) (company, location string) {
	for _, script := range doc.QueryAll(`script[type="application/ld+json"]`) {
		raw := script.RawText()
		if !gjson.Valid(raw) {
			continue
		}
		for _, item := range postings(gjson.Parse(raw)) {
			if company == "" {
				name := clean(item.Get("hiringOrganization.name").String())
				lower := strings.ToLower(name)
				if name != "" && lower != "confidential" && !strings.Contains(lower, strings.ToLower(portal)) {
					company = name
				}
			}
			if location == "" {
				location = jobLocation(item.Get("jobLocation"))
			}
		}
		if company != "" && location != "" {
			break
		}
	}
	return company, location
}

func postings(r gjson.Result) []gjson.Result {
	var items []gjson.Result
	switch {
	case r.IsArray():
		items = r.Array()
	case r.Get("@graph").IsArray():
		items = r.Get("@graph").Array()
	default:
		items = []gjson.Result{r}
	}
	var out []gjson.Result
	for _, item := range items {
		if isJobPosting(item.Get("@type")) {
			out = append(out, item)
		}
	}
	return out
}

func isJobPosting(t gjson.Result) bool {
	if t.IsArray() {
		for _, v := range t.Array() {
			if v.String() == "JobPosting" {
				return true
			}
		}
		return false
	}
	return t.String() == "JobPosting"
}

func jobLocation(loc gjson.Result) string {
	if loc.IsArray() {
		loc = loc.Get("0")
	}
	addr := loc.Get("address")
	if !addr.Exists() {
		return ""
	}
	var parts []string
	for _, field := range []string{"addressLocality", "addressRegion", "addressCountry"} {
		v := addr.Get(field)
		if v.IsObject() {
			v = v.Get("name")
		}
		if s := clean(v.String()); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// logApplication appends one application log entry per engine and URL,
// unless the store already has an entry for the URL from the last hour.
func (e *Engine) logApplication(ctx context.Context, doc *dom.Document, rep *Report) (*store.Application, error) {
	e.mu.Lock()
	if e.logged[rep.URL] {
		e.mu.Unlock()
		return nil, nil
	}
	e.logged[rep.URL] = true
	e.mu.Unlock()

	info := ExtractJob(doc)
	now := e.clock.Now()
	var app *store.Application
	err := e.store.Update(ctx, func(st *store.State) error {
		for _, prev := range st.Applications {
			if prev.URL == rep.URL && now.Sub(prev.Timestamp) < dedupeWindow {
				return nil
			}
		}
		app = &store.Application{
			ID:        uuid.NewString(),
			URL:       rep.URL,
			Domain:    rep.Domain,
			Role:      info.Role,
			Company:   info.Company,
			Location:  info.Location,
			Portal:    info.Portal,
			Timestamp: now,
		}
		st.Applications = append(st.Applications, *app)
		return nil
	})
	if err != nil {
		e.mu.Lock()
		delete(e.logged, rep.URL)
		e.mu.Unlock()
		return nil, err
	}
	return app, nil
}
