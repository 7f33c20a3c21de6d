package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `\documentclass{resume}
\name{Jane Q Doe}
\address{Bengaluru | Karnataka | India}
\address{\href{mailto:jane@example.com}{jane@example.com} \\ +91 9876543210}
\address{\href{https://www.linkedin.com/in/janedoe}{LinkedIn} \\ \href{https://github.com/janedoe}{GitHub} \\ \href{https://janedoe.dev}{Portfolio}}

\begin{document}
\begin{rSection}{Objective}
Backend engineer with 5+ years building \textbf{distributed} systems.
\end{rSection}

\begin{rSection}{Skills}
\begin{tabular}{ @{} >{\bfseries}l @{\hspace{6ex}} l }
Languages & Go, Python, SQL \\
Tools & Docker, Kubernetes \\
\end{tabular}
\end{rSection}

\begin{rSection}{Education}
\textbf{B.Tech in Computer Science}, Indian Institute of Technology \hfill Aug 2015 -- May 2019\\
\end{rSection}

\begin{rSection}{Experience}
\textbf{Senior Engineer, Acme Corp} \hfill Aug 2021 -- Present\\
\begin{itemize}
    \item Built the \textbf{payments} API.
    \item Cut latency by 40 percent.
\end{itemize}
\textbf{Engineer, Initech} \hfill Jun 2019 - Jul 2021\\
\begin{itemize}
    \item Migrated services to Go.
    \item Ran the on-call rotation.
\end{itemize}
\end{rSection}
\end{document}
`

func TestParse_Header(t *testing.T) {
	r := Parse(sampleResume)

	assert.Equal(t, "Jane", r.FirstName)
	assert.Equal(t, "Q Doe", r.LastName)
	assert.Equal(t, "jane@example.com", r.Email)
	assert.Equal(t, "+91 9876543210", r.Phone)
	assert.Equal(t, "Bengaluru", r.City)
	assert.Equal(t, "India", r.Country)
	assert.Contains(t, r.Location, "Karnataka")
	assert.Equal(t, "https://linkedin.com/in/janedoe", r.LinkedIn)
	assert.Equal(t, "https://github.com/janedoe", r.GitHub)
	assert.Equal(t, "https://janedoe.dev", r.Portfolio)
}

func TestParse_Sections(t *testing.T) {
	r := Parse(sampleResume)

	assert.Equal(t, "Backend engineer with 5+ years building distributed systems.", r.Summary)
	assert.Equal(t, "5", r.Experience)
	assert.Equal(t, "Go, Python, SQL, Docker, Kubernetes", r.Skills)

	require.Len(t, r.Education, 1)
	assert.Equal(t, Education{
		Degree:      "B.Tech in Computer Science",
		Institution: "Indian Institute of Technology",
		StartDate:   "2015-08",
		EndDate:     "2019-05",
	}, r.Education[0])
}

func TestParse_WorkHistory(t *testing.T) {
	r := Parse(sampleResume)

	require.Len(t, r.WorkHistory, 2)
	assert.Equal(t, Work{
		Company:     "Acme Corp",
		Title:       "Senior Engineer",
		StartDate:   "2021-08",
		EndDate:     "Present",
		Description: "• Built the payments API.\n• Cut latency by 40 percent.",
	}, r.WorkHistory[0])
	assert.Equal(t, Work{
		Company:     "Initech",
		Title:       "Engineer",
		StartDate:   "2019-06",
		EndDate:     "2021-07",
		Description: "• Migrated services to Go.\n• Ran the on-call rotation.",
	}, r.WorkHistory[1])
}

func TestParse_HeadingWithoutComma(t *testing.T) {
	src := "\\begin{rSection}{Experience}\n\\textbf{Freelance} \\hfill 2020\n\\end{rSection}"
	r := Parse(src)

	require.Len(t, r.WorkHistory, 1)
	assert.Equal(t, "Freelance", r.WorkHistory[0].Company)
	assert.Empty(t, r.WorkHistory[0].Title)
	assert.Equal(t, "2020", r.WorkHistory[0].StartDate)
	assert.Equal(t, "2020", r.WorkHistory[0].EndDate)
	assert.Empty(t, r.WorkHistory[0].Description)
}

func TestParse_EmptyInput(t *testing.T) {
	r := Parse("")

	assert.Empty(t, r.FirstName)
	assert.Empty(t, r.Email)
	assert.NotNil(t, r.Education)
	assert.NotNil(t, r.WorkHistory)
	assert.Empty(t, r.WorkHistory)
}

func TestParse_PlainEmailAndPortfolioSkipsProfiles(t *testing.T) {
	src := `contact: someone.else@mail.org \href{https://www.github.com/x}{gh} \href{https://blog.example.com/me}{blog}`
	r := Parse(src)

	assert.Equal(t, "someone.else@mail.org", r.Email)
	assert.Equal(t, "https://github.com/x", r.GitHub)
	assert.Equal(t, "https://blog.example.com/me", r.Portfolio)
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Aug 2024", "2024-08"},
		{"August 2024", "2024-08"},
		{"Sept. 2020", "2020-09"},
		{"  dec 1999 ", "1999-12"},
		{"2024-08", "2024-08"},
		{"present", "Present"},
		{"Current", "Present"},
		{"Spring 2020", "Spring 2020"},
		{"2020", "2020"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeDate(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeDate(got), "normalizing twice changes nothing")
		})
	}
}

func TestCleanLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"formatting", `\textbf{Bold} and \textit{it}`, "Bold and it"},
		{"link text", `\href{https://x.io}{my site}`, "my site"},
		{"unknown macro keeps argument", `\emph{unknown} macro`, "unknown macro"},
		{"bare macro", `\hfill text`, "text"},
		{"tilde and dashes", `a~b -- c`, "a b - c"},
		{"line breaks", `line one \\ line two`, "line one line two"},
		{"ampersand", `R & D`, "R D"},
		{"whitespace", "  a \n\t b  ", "a b"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanLaTeX(tt.in))
		})
	}
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
	}{
		{"Aug 2024 -- Present", "2024-08", "Present"},
		{"Aug 2024--Present", "2024-08", "Present"},
		{"Jan 2020 – Mar 2021", "2020-01", "2021-03"},
		{"Jun 2019 - Jul 2021\\\\", "2019-06", "2021-07"},
		{"May 2019", "2019-05", "2019-05"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end := splitRange(tt.in)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}
