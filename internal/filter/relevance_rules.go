package filter

import "regexp"

// Level keywords must match as whole words: "undergraduate" must not satisfy
// "graduate".
var levelTerms = []string{
	"graduate", "junior", "entry level", "entry-level",
	"associate", "early career", "cadet", "intern",
}

// IT-domain phrases, word-boundary matched so "engineer" alone does not catch
// "civil engineer" while "software" / "technology" stay broad.
var techRoleTerms = []string{
	"software engineer", "software developer", "software engineering",
	"developer", "devops", "backend", "frontend", "full stack", "fullstack",
	"web developer", "mobile developer", "cloud engineer", "platform engineer",
	"data engineer", "data analyst", "data scientist", "data analytics",
	"cyber", "cybersecurity", "information security", "network engineer",
	"systems engineer", "computer science", "it graduate", "it program",
	"architect",
	"technology graduate", "tech graduate", "technology program",
	"technology internship", "tech internship",
	"software",
	"technology",
	"data",
	"analytics",
	"digital",
	"information technology", "information systems",
}

// Titles containing these words with no strong IT signal are likely
// civil/mining/finance/medical roles.
var nonITTitle = regexp.MustCompile(
	`(?i)\b(civil|mechanical|hydro|structural|geotechnical|mining|` +
		`chemical|electrical wiring|audit|accounting|actuari|` +
		`banking|finance|financial planning|wealth|insurance|legal|law|` +
		`nursing|medical|pharmacy|physiother|dental|clinical)\b`)

// Senior-level roles are dropped regardless of any tech-role match.
var seniorTitle = regexp.MustCompile(
	`(?i)\b(senior|sr\b|lead|principal|staff|manager|director|` +
		`head of|vp|vice president|chief|experienced|mid.?level)\b`)

// Standalone IT titles unambiguous enough to pass without a level keyword.
var strongTechTitle = regexp.MustCompile(
	`(?i)\b(software engineer|software developer|full.?stack|fullstack|` +
		`devops|backend|frontend|web developer|mobile developer|` +
		`data engineer|data analyst|data scientist|cloud engineer|` +
		`platform engineer|machine learning engineer|ml engineer|` +
		`systems engineer|network engineer|cyber|cybersecurity|` +
		`developer|programmer)\b`)

var (
	levelPatterns    = compileWordPatterns(levelTerms)
	techRolePatterns = compileWordPatterns(techRoleTerms)
)

func compileWordPatterns(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(terms))
	for _, t := range terms {
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(t)+`\b`))
	}
	return out
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
