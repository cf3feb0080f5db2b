// Package match implements the job recommendation scoring: a pure function
// over a seeker profile and the set of active listings.
package match

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/joblinkhq/joblink/pkg/models"
)

// MaxResults caps the recommendation result set.
const MaxResults = 20

// DefaultMatch is returned when no scoring factor applies to a pair.
const DefaultMatch = 50

// ScoredJob is a listing with its computed match percentage.
type ScoredJob struct {
	models.Job
	MatchPercentage int `json:"matchPercentage"`
}

// Recommend filters and scores active listings for a seeker. Candidates must
// arrive most recently posted first; that ordering is the pre-sort tiebreak
// before the final sort by match percentage.
func Recommend(seeker *models.JobSeeker, candidates []models.Job) []ScoredJob {
	filtered := prefilter(seeker, candidates)
	if len(filtered) > MaxResults {
		filtered = filtered[:MaxResults]
	}

	scored := make([]ScoredJob, 0, len(filtered))
	for _, j := range filtered {
		scored = append(scored, ScoredJob{Job: j, MatchPercentage: Score(seeker, &j)})
	}

	sort.SliceStable(scored, func(i, k int) bool {
		return scored[i].MatchPercentage > scored[k].MatchPercentage
	})

	return scored
}

// prefilter narrows candidates by skills, experience band and location.
// A filter whose input is absent from the profile is skipped entirely, so a
// seeker with an empty profile still receives every active listing.
func prefilter(seeker *models.JobSeeker, candidates []models.Job) []models.Job {
	var allowedLevels map[string]bool
	if exp := experienceEntries(seeker); len(exp) > 0 {
		allowedLevels = AllowedLevels(TotalExperienceYears(exp))
	}

	out := make([]models.Job, 0, len(candidates))
	for _, j := range candidates {
		if len(seeker.Skills) > 0 && !skillsOverlap(seeker.Skills, j.Skills) {
			continue
		}
		if allowedLevels != nil && !allowedLevels[j.ExperienceLevel] {
			continue
		}
		if seeker.Location != "" && !j.Remote && !containsFold(j.Location, seeker.Location) {
			continue
		}

		out = append(out, j)
	}

	return out
}

// Score computes the match percentage for one pair: the mean of whichever
// factors applied, or DefaultMatch when none did.
func Score(seeker *models.JobSeeker, job *models.Job) int {
	var total float64
	factors := 0

	// Skill overlap factor. Skipped when either side has no skills.
	if len(seeker.Skills) > 0 && len(job.Skills) > 0 {
		matches := 0
		for _, js := range job.Skills {
			for _, ss := range seeker.Skills {
				if strings.EqualFold(js, ss) {
					matches++
					break
				}
			}
		}
		total += float64(matches) / float64(len(job.Skills)) * 100
		factors++
	}

	// Location factor. Counted only when it hits; containment here is
	// case-sensitive, unlike the pre-filter.
	if seeker.Location != "" && (strings.Contains(job.Location, seeker.Location) || job.Remote) {
		total += 100
		factors++
	}

	if factors == 0 {
		return DefaultMatch
	}
	return int(math.Round(total / float64(factors)))
}

// TotalExperienceYears sums (end - start) across entries that carry both
// dates. Entries with unparseable or missing dates contribute nothing.
func TotalExperienceYears(entries []models.Experience) float64 {
	var years float64
	for _, e := range entries {
		start, okStart := parseDate(e.StartDate)
		end, okEnd := parseDate(e.EndDate)
		if !okStart || !okEnd {
			continue
		}
		if d := end.Sub(start); d > 0 {
			years += d.Hours() / (24 * 365)
		}
	}
	return years
}

// AllowedLevels maps total experience years to the seniority bands a seeker
// is recommended into.
func AllowedLevels(years float64) map[string]bool {
	switch {
	case years < 2:
		return map[string]bool{"Entry Level": true, "Mid Level": true}
	case years < 5:
		return map[string]bool{"Mid Level": true, "Senior Level": true}
	default:
		return map[string]bool{"Senior Level": true, "Lead": true, "Executive": true}
	}
}

func experienceEntries(seeker *models.JobSeeker) []models.Experience {
	if seeker == nil || seeker.Resume == nil {
		return nil
	}
	return seeker.Resume.Experience
}

// skillsOverlap reports whether any job skill tag contains any seeker skill,
// case-insensitively. This is the broad pre-filter; exact-match scoring
// happens in Score.
func skillsOverlap(seekerSkills, jobSkills []string) bool {
	for _, js := range jobSkills {
		for _, ss := range seekerSkills {
			if containsFold(js, ss) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

var dateLayouts = []string{"2006-01-02", "2006-01", "2006", time.RFC3339}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
