package search

import (
	"regexp"
	"strconv"
	"strings"

	"leadfinder-engine/internal/domain"
)

// ApplyFilters narrows the combined sequence. Filters only remove, never
// reorder, and the empty spec is the identity transform.
func ApplyFilters(jobs []domain.JobPosting, spec domain.FilterSpec) []domain.JobPosting {
	if spec.IsZero() {
		return jobs
	}

	out := jobs
	if spec.ExperienceLevel != "" {
		out = keep(out, func(j domain.JobPosting) bool {
			return containsFold(spec.ExperienceLevel, j.Title, strings.Join(j.Tags, " "))
		})
	}
	if spec.JobType != "" {
		out = keep(out, func(j domain.JobPosting) bool {
			return containsFold(spec.JobType, j.Title, strings.Join(j.Tags, " "))
		})
	}
	if spec.RemoteOnly {
		out = keep(out, isRemote)
	}
	if spec.SalaryMin > 0 || spec.SalaryMax > 0 {
		out = keep(out, func(j domain.JobPosting) bool {
			return salaryInRange(j.Salary, spec.SalaryMin, spec.SalaryMax)
		})
	}
	// PostedWithinDays is a declared pass-through: source date formats are
	// not normalized, and guessing a parser would silently drop valid jobs.
	// It still shows up in FiltersApplied metadata.

	return out
}

func keep(jobs []domain.JobPosting, pred func(domain.JobPosting) bool) []domain.JobPosting {
	out := make([]domain.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if pred(j) {
			out = append(out, j)
		}
	}
	return out
}

func containsFold(needle string, fields ...string) bool {
	n := strings.ToLower(strings.TrimSpace(needle))
	if n == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), n) {
			return true
		}
	}
	return false
}

func isRemote(j domain.JobPosting) bool {
	return containsFold("remote", j.Location, j.Title, j.Description) ||
		containsFold("work from home", j.Location, j.Title, j.Description)
}

var salaryNumRe = regexp.MustCompile(`\d+`)

// salaryInRange checks the first parseable integer of a free-form salary
// string against [min, max]. Jobs with no parseable salary always pass:
// benefit of the doubt. Commas are thousands separators, so "$75,000"
// parses as 75000, not 75.
func salaryInRange(salary string, min, max int) bool {
	s := strings.ReplaceAll(salary, ",", "")
	m := salaryNumRe.FindString(s)
	if m == "" {
		return true
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return true
	}
	if min > 0 && v < min {
		return false
	}
	if max > 0 && v > max {
		return false
	}
	return true
}
