// Package content turns a learner's free-text inputs into typed guidance
// records by delegating generation to the AI gateway, with fence stripping
// and strict shape enforcement on the model output.
package content

// Activity is a hands-on learning activity for primary learners.
type Activity struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Materials   []string `json:"materials"`
	Duration    string   `json:"duration"`
}

// Quest is a single multiple-choice quiz question. Options always has
// exactly 4 entries and CorrectIndex indexes into it.
type Quest struct {
	Subject      string   `json:"subject"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
	Points       int      `json:"points"`
}

// PathwayRecommendation is a senior-school track suggestion for a
// junior-secondary learner.
type PathwayRecommendation struct {
	PathwayName      string   `json:"pathwayName"`
	FitScore         int      `json:"fitScore"`
	Reasoning        string   `json:"reasoning"`
	RecommendedClubs []string `json:"recommendedClubs"`
}

// CareerPath is a career suggestion for a senior-secondary learner.
type CareerPath struct {
	Title              string   `json:"title"`
	Category           string   `json:"category"`
	Description        string   `json:"description"`
	RequiredSubjects   []string `json:"requiredSubjects"`
	PotentialJobs      []string `json:"potentialJobs"`
	TVETOptions        []string `json:"tvetOptions"`
	UniversityPrograms []string `json:"universityPrograms"`
}

// Mentor is a generated mentor profile.
type Mentor struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Company   string   `json:"company"`
	Location  string   `json:"location"`
	Bio       string   `json:"bio"`
	Expertise []string `json:"expertise"`
}
