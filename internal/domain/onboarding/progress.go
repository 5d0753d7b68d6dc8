package onboarding

import "math"

// CompletionRule marks one checklist item as done for a draft. Weight 0
// items are shown but never move the percentage.
type CompletionRule struct {
	ID     string
	Label  string
	Step   Step
	Weight int
	Done   func(Draft) bool
}

type ChecklistItem struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Step      Step   `json:"step"`
	Weight    int    `json:"weight"`
	Completed bool   `json:"completed"`
}

type Progress struct {
	Percent int             `json:"percent"`
	Items   []ChecklistItem `json:"items"`
}

func DefaultCompletionRules() []CompletionRule {
	return []CompletionRule{
		{
			ID: "gmail", Label: "Gmail Connected", Step: StepGmail, Weight: 1,
			Done: func(d Draft) bool { return d.Connection == ConnectionSuccess },
		},
		{
			ID: "profile", Label: "Profile Complete", Step: StepProfile, Weight: 2,
			Done: func(d Draft) bool { return IsProfileComplete(d.Profile) },
		},
		{
			ID: "specialties", Label: "Specialties Selected", Step: StepSpecialties, Weight: 1,
			Done: func(d Draft) bool { return len(d.Profile.Specialties) > 0 },
		},
		{
			ID: "socials", Label: "Social Links Added", Step: StepSocials, Weight: 1,
			Done: func(d Draft) bool { return len(d.Socials) > 0 },
		},
		{
			ID: "links", Label: "Custom Links Added", Step: StepLinks, Weight: 0,
			Done: func(d Draft) bool { return len(d.Links) > 0 },
		},
	}
}

// ComputeProgress evaluates the rules against d. Percent is the share of
// completed weight, rounded to the nearest integer, within [0,100].
func ComputeProgress(d Draft, rules []CompletionRule) Progress {
	p := Progress{Items: make([]ChecklistItem, 0, len(rules))}
	total, done := 0, 0
	for _, r := range rules {
		w := max(r.Weight, 0)
		completed := r.Done != nil && r.Done(d)
		total += w
		if completed {
			done += w
		}
		p.Items = append(p.Items, ChecklistItem{
			ID:        r.ID,
			Label:     r.Label,
			Step:      r.Step,
			Weight:    w,
			Completed: completed,
		})
	}
	if total > 0 {
		p.Percent = int(math.Round(float64(done) * 100 / float64(total)))
	}
	return p
}

// StepperPercent is the progress bar position for a step index.
func StepperPercent(index, total int) int {
	if total <= 0 {
		return 0
	}
	pct := math.Round(float64(index+1) * 100 / float64(total))
	return int(min(max(pct, 0), 100))
}
