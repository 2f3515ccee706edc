package content

import "github.com/njia-ai/njia-bot/internal/ai"

// Each content kind declares its expected output shape once. The same
// declaration constrains the outbound generation request and validates the
// parsed response.

func activitySchema() *ai.Schema {
	return ai.Object(map[string]*ai.Schema{
		"title":       ai.String("A fun title for the activity"),
		"description": ai.String("Step-by-step instructions, clear and simple"),
		"materials":   ai.ArrayOf("List of household materials needed", ai.String("")),
		"duration":    ai.String("Estimated time (e.g., '30 mins')"),
	}, "title", "description", "materials", "duration")
}

func questSchema() *ai.Schema {
	return ai.Object(map[string]*ai.Schema{
		"subject":      ai.String(""),
		"question":     ai.String(""),
		"options":      ai.ArrayOf("4 possible answers", ai.String("")),
		"correctIndex": ai.IntegerRange("Index of correct answer (0-3)", 0, 3),
		"explanation":  ai.String("Short fun fact explaining the answer"),
		"points":       ai.Integer("Points value (e.g., 10, 20, 50)"),
	}, "subject", "question", "options", "correctIndex", "explanation", "points")
}

func pathwaySchema() *ai.Schema {
	return ai.ArrayOf("", ai.Object(map[string]*ai.Schema{
		"pathwayName":      ai.String("The specific track name (e.g. 'STEM: Technical & Engineering')"),
		"fitScore":         ai.IntegerRange("Score out of 100", 0, 100),
		"reasoning":        ai.String(""),
		"recommendedClubs": ai.ArrayOf("", ai.String("")),
	}, "pathwayName", "fitScore", "reasoning", "recommendedClubs"))
}

func careerSchema() *ai.Schema {
	return ai.ArrayOf("", ai.Object(map[string]*ai.Schema{
		"title":              ai.String(""),
		"category":           ai.String("Category like 'Green Economy', 'Emerging Tech', 'Engineering', etc."),
		"description":        ai.String(""),
		"requiredSubjects":   ai.ArrayOf("", ai.String("")),
		"potentialJobs":      ai.ArrayOf("", ai.String("")),
		"tvetOptions":        ai.ArrayOf("Relevant diploma/certificate courses", ai.String("")),
		"universityPrograms": ai.ArrayOf("Relevant university degree programs", ai.String("")),
	}, "title", "category", "description", "requiredSubjects", "potentialJobs", "tvetOptions", "universityPrograms"))
}

func mentorSchema() *ai.Schema {
	return ai.ArrayOf("", ai.Object(map[string]*ai.Schema{
		"id":        ai.String(""),
		"name":      ai.String(""),
		"role":      ai.String(""),
		"company":   ai.String("Company or University name"),
		"location":  ai.String("City, Country"),
		"bio":       ai.String("Short inspiring bio (2 sentences)"),
		"expertise": ai.ArrayOf("Top 3 skills", ai.String("")),
	}, "id", "name", "role", "company", "location", "bio", "expertise"))
}
