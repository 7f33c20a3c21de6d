// Package resume extracts profile data from LaTeX resumes written with the
// rSection resume class, either as bare .tex files or inside .zip archives.
package resume

import (
	"net/url"
	"regexp"
	"strings"
)

// Education is one entry of the Education section.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Work is one entry of the Experience section. Description holds one
// "• "-prefixed line per bullet.
type Work struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Record is the flat result of parsing one resume. Fields the resume does
// not provide are empty strings, never missing.
type Record struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`

	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
	Twitter   string `json:"twitter"`

	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`

	Skills  string `json:"skills"`
	Summary string `json:"summary"`

	Education   []Education `json:"education"`
	WorkHistory []Work      `json:"workHistory"`

	Experience   string `json:"experience"`
	NoticePeriod string `json:"noticePeriod"`
	CurrentCTC   string `json:"currentCtc"`
	ExpectedCTC  string `json:"expectedCtc"`

	ResumeName string `json:"resumeName,omitempty"`
}

var (
	reName      = regexp.MustCompile(`\\name\{([^}]+)\}`)
	reEmail     = regexp.MustCompile(`\\href\{mailto:([^}]+)\}|([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	rePhone     = regexp.MustCompile(`\+?\d{1,3}[\s-]?\d{10}|\+?\d{10,}`)
	reAddress   = regexp.MustCompile(`\\address\{([^}]+)\}`)
	reLinkedIn  = regexp.MustCompile(`(?i)\\href\{https?://(?:www\.)?linkedin\.com/in/([^}]+)\}`)
	reGitHub    = regexp.MustCompile(`(?i)\\href\{https?://(?:www\.)?github\.com/([^}]+)\}`)
	reTwitter   = regexp.MustCompile(`(?i)\\href\{https?://(?:www\.)?(?:twitter|x)\.com/([^}/]+)\}`)
	reLink      = regexp.MustCompile(`(?i)\\href\{(https?://[^}]+)\}`)
	reWorkEntry = regexp.MustCompile(`\\textbf\{([^}]+)\}\s*\\hfill\s*([^\n]+?)(?:\\\\)?(?:\n|$)`)
	reItemize   = regexp.MustCompile(`(?s)\\begin\{itemize\}(.*?)\\end\{itemize\}`)
	reItem      = regexp.MustCompile(`\\item\s+`)
	reYears     = regexp.MustCompile(`(?i)(\d+)\+?\s*years?`)
)

var reTrailingBackslashes = regexp.MustCompile(`\\+$`)

// nonPortfolioHosts are link hosts that have their own profile fields.
var nonPortfolioHosts = []string{"linkedin", "github", "twitter", "x.com", "mailto"}

// Parse extracts a Record from LaTeX source. It never fails: anything it
// cannot recognise is left empty.
func Parse(src string) *Record {
	r := &Record{Education: []Education{}, WorkHistory: []Work{}}

	if m := reName.FindStringSubmatch(src); m != nil {
		parts := strings.Fields(m[1])
		if len(parts) > 0 {
			r.FirstName = parts[0]
			r.LastName = strings.Join(parts[1:], " ")
		}
	}
	if m := reEmail.FindStringSubmatch(src); m != nil {
		r.Email = m[1]
		if r.Email == "" {
			r.Email = m[2]
		}
	}
	if m := rePhone.FindString(src); m != "" {
		r.Phone = strings.TrimSpace(m)
	}
	if m := reAddress.FindStringSubmatch(src); m != nil {
		addr := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(m[1], `\`, ""), "|", ","))
		r.Location = addr
		parts := strings.Split(addr, ",")
		if len(parts) >= 2 {
			r.City = strings.TrimSpace(parts[0])
			r.Country = strings.TrimSpace(parts[len(parts)-1])
		}
	}
	if m := reLinkedIn.FindStringSubmatch(src); m != nil {
		r.LinkedIn = "https://linkedin.com/in/" + m[1]
	}
	if m := reGitHub.FindStringSubmatch(src); m != nil {
		r.GitHub = "https://github.com/" + m[1]
	}
	if m := reTwitter.FindStringSubmatch(src); m != nil {
		r.Twitter = "https://twitter.com/" + m[1]
	}
	r.Portfolio = findPortfolio(src)

	if body, ok := section(src, "Objective"); ok {
		r.Summary = CleanLaTeX(body)
	}
	if body, ok := section(src, "Skills"); ok {
		r.Skills = parseSkills(body)
	}
	if body, ok := section(src, "Education"); ok {
		r.Education = parseEducation(body)
	}
	if body, ok := section(src, "Experience"); ok {
		r.WorkHistory = parseWork(body)
	}
	if m := reYears.FindStringSubmatch(r.Summary); m != nil {
		r.Experience = m[1]
	}
	return r
}

var sectionPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, name := range []string{"Objective", "Skills", "Education", "Experience"} {
		sectionPatterns[name] = regexp.MustCompile(`(?is)\\begin\{rSection\}\{` + name + `\}(.*?)\\end\{rSection\}`)
	}
}

func section(src, name string) (string, bool) {
	m := sectionPatterns[name].FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func findPortfolio(src string) string {
	for _, m := range reLink.FindAllStringSubmatch(src, -1) {
		u, err := url.Parse(m[1])
		if err != nil {
			continue
		}
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		own := false
		for _, h := range nonPortfolioHosts {
			if strings.HasPrefix(host, h) {
				own = true
				break
			}
		}
		if !own {
			return m[1]
		}
	}
	return ""
}

// parseSkills reads a tabular of "Category & a, b, c \\" rows and joins
// every listed skill with ", ".
func parseSkills(body string) string {
	var skills []string
	for _, line := range strings.Split(body, "\n") {
		cols := strings.Split(line, "&")
		if len(cols) < 2 {
			continue
		}
		for _, s := range strings.Split(CleanLaTeX(cols[1]), ",") {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
	}
	return strings.Join(skills, ", ")
}

// parseEducation reads "\textbf{Degree}, Institution \hfill Dates" lines.
func parseEducation(body string) []Education {
	out := []Education{}
	for _, line := range strings.Split(body, "\n") {
		start := strings.Index(line, `\textbf{`)
		if start < 0 {
			continue
		}
		end := strings.Index(line[start:], "}")
		hfill := strings.Index(line, `\hfill`)
		if end < 0 || hfill < 0 {
			continue
		}
		end += start
		if hfill <= end {
			continue
		}
		degree := line[start+len(`\textbf{`) : end]
		between := line[end+1 : hfill]
		institution := ""
		if comma := strings.Index(between, ","); comma >= 0 {
			institution = between[comma+1:]
		}
		from, to := splitRange(line[hfill+len(`\hfill`):])
		out = append(out, Education{
			Degree:      CleanLaTeX(degree),
			Institution: CleanLaTeX(institution),
			StartDate:   from,
			EndDate:     to,
		})
	}
	return out
}

// parseWork reads "\textbf{Title, Company} \hfill Dates" headers, each
// followed by an optional itemize block of bullets.
func parseWork(body string) []Work {
	out := []Work{}
	matches := reWorkEntry.FindAllStringSubmatchIndex(body, -1)
	for i, m := range matches {
		heading := body[m[2]:m[3]]
		dates := body[m[4]:m[5]]
		next := len(body)
		if i+1 < len(matches) {
			next = matches[i+1][0]
		}
		company, title := splitHeading(heading)
		from, to := splitRange(dates)
		out = append(out, Work{
			Company:     company,
			Title:       title,
			StartDate:   from,
			EndDate:     to,
			Description: bullets(body[m[1]:next]),
		})
	}
	return out
}

// splitHeading splits "Title, Company". Without a comma the whole heading
// is taken as the company.
func splitHeading(heading string) (company, title string) {
	parts := strings.Split(heading, ",")
	if len(parts) >= 2 {
		return CleanLaTeX(parts[1]), CleanLaTeX(parts[0])
	}
	return CleanLaTeX(heading), ""
}

func bullets(span string) string {
	m := reItemize.FindStringSubmatch(span)
	if m == nil {
		return ""
	}
	var lines []string
	for _, part := range reItem.Split(m[1], -1) {
		text := strings.TrimSpace(reTrailingBackslashes.ReplaceAllString(strings.TrimSpace(part), ""))
		if text == "" {
			continue
		}
		lines = append(lines, "• "+CleanLaTeX(text))
	}
	return strings.Join(lines, "\n")
}
