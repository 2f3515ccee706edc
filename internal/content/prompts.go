package content

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// defaultTracks are the CBC senior-school tracks offered to the pathway
// prompt when no catalog is configured.
var defaultTracks = []string{
	"STEM: Pure Sciences",
	"STEM: Applied Sciences",
	"STEM: Technical & Engineering",
	"STEM: Career & Technology Studies (CTS)",
	"Social Sciences: Humanities",
	"Social Sciences: Business Studies",
	"Arts & Sports: Sports Science",
	"Arts & Sports: Performing Arts",
	"Arts & Sports: Visual Arts",
}

// DefaultTracks returns a copy of the built-in CBC pathway track list.
func DefaultTracks() []string {
	tracks := make([]string, len(defaultTracks))
	copy(tracks, defaultTracks)
	return tracks
}

var supportedLocales = language.NewMatcher([]language.Tag{
	language.English, // default
	language.Swahili,
})

// MatchLocale maps an Accept-Language style tag to a supported locale.
// Unknown or empty tags fall back to English.
func MatchLocale(tag string) language.Tag {
	if tag == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(tag)
	if err != nil {
		return language.English
	}
	matched, _, _ := supportedLocales.Match(tags...)
	base, _ := matched.Base()
	if base.String() == "sw" {
		return language.Swahili
	}
	return language.English
}

// localize appends a language directive to a system instruction when the
// learner's locale is not English.
func localize(system string, locale language.Tag) string {
	if locale == language.Swahili {
		return system + " Respond in simple, friendly Kiswahili."
	}
	return system
}

const (
	activitySystem = "You are a friendly, energetic primary school teacher in Kenya. You love Science and Arts."
	questSystem    = "You are a gamified tutor. Keep questions simple, local, and fun."
	pathwaySystem  = "You are an expert CBC guidance counselor. You understand the detailed Kenyan/African education system and specific senior school tracks."
	careerSystem   = "You are a senior career mentor. Provide a diverse range of 6-8 career options, ensuring a mix of tech, green economy, and traditional sectors relevant to African development."
	mentorSystem   = "You are a professional networking assistant. You connect students with inspiring mentors."
)

func activityPrompt(interest string) string {
	return fmt.Sprintf(`Create a fun, hands-on STEM learning activity for an African primary school student (Grade 1-6) interested in %q.
The activity must use locally available, low-cost materials found in a typical African household.
Keep language simple, encouraging, and playful.`, interest)
}

func questPrompt(subject string) string {
	return fmt.Sprintf(`Create a single, fun, multiple-choice quiz question for a primary school student (Grade 3-5) about %q.
Context: African curriculum.
Make it engaging!`, subject)
}

func pathwayPrompt(interests, strengths string, tracks []string) string {
	var list strings.Builder
	for i, track := range tracks {
		fmt.Fprintf(&list, "%d. %s\n", i+1, track)
	}
	return fmt.Sprintf(`Based on the student's interests: %q and academic strengths: %q,
recommend the top 3 most suitable specific CBC (Competency Based Curriculum) Senior School Tracks.

Select specific tracks from the following options:
%s
Provide a fit score and specific reasoning linking their traits to the specific track.
Mention school clubs that would help them prepare.`, interests, strengths, list.String())
}

func careerPrompt(subjects, hobbies string) string {
	return fmt.Sprintf(`A Senior Secondary student takes these subjects: %q and enjoys: %q.
Suggest 6 to 8 specific careers that align with the future job market in Africa.
Include a diverse mix of:
- Emerging Technology roles (AI, Data, Robotics)
- Green Economy & Sustainability roles (Renewable Energy, Agri-tech, Conservation)
- Modern Essential Services (Healthcare, Infrastructure, Creative Economy)

For each career, provide:
1. A specific Title.
2. A category (Classify as "Emerging Tech", "Green Economy", "Healthcare", "Creative", etc.).
3. University Degree programs.
4. TVET (Technical and Vocational Education and Training) diploma/certificate options.
Ensure both are valid and prestigious paths.`, subjects, hobbies)
}

func mentorPrompt(careerInterest string) string {
	return fmt.Sprintf(`Generate 3 fictional profiles of STEM professionals or university students in Africa who could act as mentors for a high school student interested in %q.
They should be inspiring, realistic, and diverse (gender/region).`, careerInterest)
}
