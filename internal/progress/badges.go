package progress

// Badge identifiers. The catalog is a fixed, known set; deployments may
// restyle names and icons via the content catalog but the ids and unlock
// rules are part of the state machine.
const (
	BadgeExplorer    = "explorer"
	BadgeBrainiac    = "brainiac"
	BadgeMathMaster  = "math-master"
	BadgeScienceWhiz = "science-whiz"
	BadgeWordWizard  = "word-wizard"
)

// Badge is an achievement a learner can unlock.
type Badge struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
}

// DefaultBadges returns the built-in badge catalog.
func DefaultBadges() []Badge {
	return []Badge{
		{ID: BadgeExplorer, Name: "Explorer", Icon: "🚀", Description: "Started the journey"},
		{ID: BadgeBrainiac, Name: "Brainiac", Icon: "🧠", Description: "Reached 200 points"},
		{ID: BadgeMathMaster, Name: "Math Master", Icon: "🧮", Description: "Answered 3 Math questions correctly!"},
		{ID: BadgeScienceWhiz, Name: "Science Whiz", Icon: "🔬", Description: "Answered 3 Science questions correctly!"},
		{ID: BadgeWordWizard, Name: "Word Wizard", Icon: "📚", Description: "Answered 3 English questions correctly!"},
	}
}
