package search

import "strings"

const maxSuggestions = 10

// Static vocabularies behind query completion. Derived from the most common
// searches; no live data involved.
var suggestionTitles = []string{
	"Software Engineer", "Developer", "Data Scientist", "Product Manager",
	"Designer", "Marketing Manager", "Sales Representative", "Analyst",
	"Manager", "Director", "VP", "CEO", "CTO", "CFO",
}

var suggestionTechnologies = []string{
	"Python", "JavaScript", "React", "Node.js", "Java", "C++",
	"Machine Learning", "AI", "Data Science", "DevOps", "AWS",
	"Docker", "Kubernetes", "SQL", "MongoDB", "Redis",
}

var trendingSearches = []string{
	"Remote Software Engineer",
	"Data Scientist",
	"Product Manager",
	"DevOps Engineer",
	"Frontend Developer",
	"Backend Developer",
	"Full Stack Developer",
	"Machine Learning Engineer",
	"UX Designer",
	"Sales Representative",
}

// Suggestions returns up to ten query completions: titles the query is a
// substring of, plus query/technology combinations.
func Suggestions(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []string
	for _, title := range suggestionTitles {
		if strings.Contains(strings.ToLower(title), q) {
			out = append(out, title)
			if len(out) >= maxSuggestions {
				return out
			}
		}
	}
	if q == "" {
		return out
	}
	for _, tech := range suggestionTechnologies {
		if strings.Contains(strings.ToLower(tech), q) {
			out = append(out, query+" "+tech, tech+" "+query)
			if len(out) >= maxSuggestions {
				break
			}
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// Trending returns the fixed trending-searches list.
func Trending() []string {
	out := make([]string, len(trendingSearches))
	copy(out, trendingSearches)
	return out
}
