package model

// ── Résumé section types ───────────────────────────────

// PersonalInfo keeps the Turkish keys the optimizer prompt asks for
type PersonalInfo struct {
	FirstName string `json:"ad"`
	LastName  string `json:"soyad"`
	Title     string `json:"unvan"`
}

type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Location string `json:"location"`
}

type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Date   string `json:"date"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type Project struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// CVData is the normalized résumé produced by the optimizer
type CVData struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	Contact      Contact      `json:"contact"`
	Summary      string       `json:"summary"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Projects     []Project    `json:"projects"`
	Skills       Skills       `json:"skills"`
	AIFeedback   *string      `json:"ai_feedback"`
}

// Normalize replaces nil slices with empty ones so they encode as [] rather than null.
func (cv *CVData) Normalize() {
	if cv.Education == nil {
		cv.Education = []Education{}
	}
	if cv.Experience == nil {
		cv.Experience = []Experience{}
	}
	if cv.Projects == nil {
		cv.Projects = []Project{}
	}
	if cv.Skills.Technical == nil {
		cv.Skills.Technical = []string{}
	}
	if cv.Skills.Soft == nil {
		cv.Skills.Soft = []string{}
	}
}

// AllSkills returns technical skills followed by soft skills
func (cv *CVData) AllSkills() []string {
	all := make([]string, 0, len(cv.Skills.Technical)+len(cv.Skills.Soft))
	all = append(all, cv.Skills.Technical...)
	all = append(all, cv.Skills.Soft...)
	return all
}

// Feedback returns the AI note or "" when the model gave none
func (cv *CVData) Feedback() string {
	if cv.AIFeedback == nil {
		return ""
	}
	return *cv.AIFeedback
}

// Printable returns a shallow copy with the AI note removed.
// The note is shown to the caller but never printed into the PDF.
func (cv *CVData) Printable() *CVData {
	cp := *cv
	cp.AIFeedback = nil
	return &cp
}

// ── Job matches ────────────────────────────────────────

// JobMatch is a job posting mapped from any provider into the response shape
type JobMatch struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	MatchRate string `json:"match_rate"`
	Link      string `json:"link"`
	Source    string `json:"source"`
}

// ── API responses ──────────────────────────────────────

type OptimizeResponse struct {
	Status      string  `json:"status"`
	AIFeedback  string  `json:"ai_feedback"`
	PDFURL      string  `json:"pdf_url"`
	OptimizedCV *CVData `json:"optimized_cv"`
}

type AnalyzeResponse struct {
	OptimizeResponse
	JobMatches []JobMatch `json:"job_matches"`
}
