package match_test

import (
	"fmt"
	"testing"

	"github.com/joblinkhq/joblink/internal/match"
	"github.com/joblinkhq/joblink/pkg/models"
)

func TestScore_SkillOverlap(t *testing.T) {
	tests := []struct {
		name         string
		seekerSkills []string
		jobSkills    []string
		want         int
	}{
		{
			name:         "half of job skills matched",
			seekerSkills: []string{"React"},
			jobSkills:    []string{"React", "Node"},
			want:         50,
		},
		{
			name:         "all job skills matched",
			seekerSkills: []string{"react", "node"},
			jobSkills:    []string{"React", "Node"},
			want:         100,
		},
		{
			name:         "no job skills matched",
			seekerSkills: []string{"Go"},
			jobSkills:    []string{"React", "Node"},
			want:         0,
		},
		{
			name:         "one of three matched rounds",
			seekerSkills: []string{"Go"},
			jobSkills:    []string{"Go", "React", "Node"},
			want:         33,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seeker := &models.JobSeeker{Skills: tc.seekerSkills}
			job := &models.Job{Skills: tc.jobSkills}
			if got := match.Score(seeker, job); got != tc.want {
				t.Fatalf("Score = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestScore_EmptyProfileDefaults(t *testing.T) {
	seeker := &models.JobSeeker{}
	job := &models.Job{Skills: []string{"React"}, Location: "Berlin"}

	if got := match.Score(seeker, job); got != match.DefaultMatch {
		t.Fatalf("Score = %d, want default %d", got, match.DefaultMatch)
	}
}

func TestScore_JobWithoutSkillsSkipsFactor(t *testing.T) {
	seeker := &models.JobSeeker{Skills: []string{"React"}, Location: "Berlin"}
	job := &models.Job{Location: "Berlin, Germany"}

	// Only the location factor applies, so the score is its full weight.
	if got := match.Score(seeker, job); got != 100 {
		t.Fatalf("Score = %d, want 100", got)
	}
}

func TestScore_LocationCaseSensitive(t *testing.T) {
	seeker := &models.JobSeeker{Location: "berlin"}
	job := &models.Job{Location: "Berlin, Germany"}

	// Containment in scoring does not fold case, so no factor applies.
	if got := match.Score(seeker, job); got != match.DefaultMatch {
		t.Fatalf("Score = %d, want default %d", got, match.DefaultMatch)
	}
}

func TestScore_RemoteCountsAsLocationHit(t *testing.T) {
	seeker := &models.JobSeeker{Skills: []string{"Go"}, Location: "Lisbon"}
	job := &models.Job{Skills: []string{"Go", "Docker"}, Location: "NYC", Remote: true}

	// Skill factor 50, location factor 100, mean 75.
	if got := match.Score(seeker, job); got != 75 {
		t.Fatalf("Score = %d, want 75", got)
	}
}

func TestTotalExperienceYears(t *testing.T) {
	entries := []models.Experience{
		{StartDate: "2018-01-01", EndDate: "2021-01-01"},
		{StartDate: "2021-01", EndDate: "2024-01"},
		{StartDate: "bogus", EndDate: "2024-01-01"},
		{StartDate: "2024-01-01", EndDate: ""},
	}

	years := match.TotalExperienceYears(entries)
	if years < 5.9 || years > 6.1 {
		t.Fatalf("TotalExperienceYears = %v, want about 6", years)
	}
}

func TestAllowedLevels(t *testing.T) {
	tests := []struct {
		years    float64
		allowed  []string
		excluded []string
	}{
		{1, []string{"Entry Level", "Mid Level"}, []string{"Senior Level"}},
		{3, []string{"Mid Level", "Senior Level"}, []string{"Entry Level"}},
		{6, []string{"Senior Level", "Lead", "Executive"}, []string{"Entry Level", "Mid Level"}},
	}

	for _, tc := range tests {
		levels := match.AllowedLevels(tc.years)
		for _, l := range tc.allowed {
			if !levels[l] {
				t.Fatalf("years=%v: expected %q to be allowed", tc.years, l)
			}
		}
		for _, l := range tc.excluded {
			if levels[l] {
				t.Fatalf("years=%v: expected %q to be excluded", tc.years, l)
			}
		}
	}
}

func TestRecommend_FiltersByExperienceBand(t *testing.T) {
	seeker := &models.JobSeeker{
		Skills: []string{"Go"},
		Resume: &models.Resume{
			Experience: []models.Experience{
				{StartDate: "2017-01-01", EndDate: "2023-06-01"},
			},
		},
	}
	candidates := []models.Job{
		{ID: 1, Skills: []string{"Go"}, ExperienceLevel: "Entry Level"},
		{ID: 2, Skills: []string{"Go"}, ExperienceLevel: "Senior Level"},
	}

	got := match.Recommend(seeker, candidates)
	if len(got) != 1 {
		t.Fatalf("Recommend returned %d jobs, want 1", len(got))
	}
	if got[0].ID != 2 {
		t.Fatalf("Recommend kept job %d, want 2", got[0].ID)
	}
}

func TestRecommend_EmptyProfileGetsEverything(t *testing.T) {
	seeker := &models.JobSeeker{}
	candidates := []models.Job{
		{ID: 1, Skills: []string{"React"}, ExperienceLevel: "Senior Level", Location: "Berlin"},
		{ID: 2, ExperienceLevel: "Entry Level"},
	}

	got := match.Recommend(seeker, candidates)
	if len(got) != 2 {
		t.Fatalf("Recommend returned %d jobs, want 2", len(got))
	}
	for _, sj := range got {
		if sj.MatchPercentage != match.DefaultMatch {
			t.Fatalf("job %d scored %d, want default %d", sj.ID, sj.MatchPercentage, match.DefaultMatch)
		}
	}
}

func TestRecommend_CapsResults(t *testing.T) {
	seeker := &models.JobSeeker{}
	candidates := make([]models.Job, 0, match.MaxResults+10)
	for i := 0; i < match.MaxResults+10; i++ {
		candidates = append(candidates, models.Job{ID: int64(i + 1)})
	}

	got := match.Recommend(seeker, candidates)
	if len(got) != match.MaxResults {
		t.Fatalf("Recommend returned %d jobs, want cap %d", len(got), match.MaxResults)
	}
}

func TestRecommend_SortsByMatchDescending(t *testing.T) {
	seeker := &models.JobSeeker{Skills: []string{"Go"}}
	candidates := []models.Job{
		{ID: 1, Skills: []string{"Go", "React", "Node"}},
		{ID: 2, Skills: []string{"Go"}},
		{ID: 3, Skills: []string{"Go", "Docker"}},
	}

	got := match.Recommend(seeker, candidates)
	if len(got) != 3 {
		t.Fatalf("Recommend returned %d jobs, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].MatchPercentage < got[i].MatchPercentage {
			t.Fatalf("results not sorted by match: %s", renderScores(got))
		}
	}
	if got[0].ID != 2 {
		t.Fatalf("best match is job %d, want 2 (%s)", got[0].ID, renderScores(got))
	}
}

func renderScores(scored []match.ScoredJob) string {
	s := ""
	for _, sj := range scored {
		s += fmt.Sprintf("[job %d: %d%%]", sj.ID, sj.MatchPercentage)
	}
	return s
}
