package matching

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Candidate is a student viewed through their approved skill records.
type Candidate struct {
	StudentID        uuid.UUID
	FullName         string
	Major            string
	HardSkills       []string
	SoftSkillIDs     []uuid.UUID
	AverageScore     float64
	LatestApprovedAt time.Time
}

// Requirements are the skills a job posting asks for.
type Requirements struct {
	HardSkills   []string
	SoftSkillIDs []uuid.UUID
}

type CandidateScore struct {
	StudentID    uuid.UUID
	HardCoverage float64
	SoftCoverage float64
	ScoreQuality float64
	Recency      float64
	FinalScore   float64
}

// ComputeHardCoverage scores how many of the required hard skills the
// candidate holds an approved record for, scaled to 0..10. No requirements
// means no signal.
func ComputeHardCoverage(c Candidate, req Requirements) float64 {
	required := NormalizeSkillSet(req.HardSkills)
	if len(required) == 0 {
		return 0
	}

	held := NormalizeSkillSet(c.HardSkills)
	matched := 0
	for name := range required {
		if _, ok := held[name]; ok {
			matched++
		}
	}
	return 10 * float64(matched) / float64(len(required))
}

// ComputeSoftCoverage scores declared soft-skill overlap, scaled to 0..5.
func ComputeSoftCoverage(c Candidate, req Requirements) float64 {
	if len(req.SoftSkillIDs) == 0 {
		return 0
	}

	held := make(map[uuid.UUID]struct{}, len(c.SoftSkillIDs))
	for _, id := range c.SoftSkillIDs {
		held[id] = struct{}{}
	}

	matched := 0
	seen := make(map[uuid.UUID]struct{}, len(req.SoftSkillIDs))
	total := 0
	for _, id := range req.SoftSkillIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		total++
		if _, ok := held[id]; ok {
			matched++
		}
	}
	if total == 0 {
		return 0
	}
	return 5 * float64(matched) / float64(total)
}

// ComputeScoreQuality folds the candidate's average review score onto a
// 0..5 scale. Scores use the 0..100 rubric scale.
func ComputeScoreQuality(c Candidate) float64 {
	s := c.AverageScore
	if s <= 0 {
		return 0
	}
	if s >= 100 {
		return 5
	}
	return s / 20
}

// ComputeRecency rewards recently reviewed candidates, 0..5.
func ComputeRecency(c Candidate) float64 {
	if c.LatestApprovedAt.IsZero() {
		return 0
	}

	age := time.Since(c.LatestApprovedAt)
	if age < 0 {
		age = 0
	}

	switch {
	case age <= 7*24*time.Hour:
		return 5
	case age <= 30*24*time.Hour:
		return 4
	case age <= 90*24*time.Hour:
		return 3
	case age <= 180*24*time.Hour:
		return 2
	case age <= 365*24*time.Hour:
		return 1
	}
	return 0
}

func ScoreCandidate(c Candidate, req Requirements) CandidateScore {
	hard := ComputeHardCoverage(c, req)
	soft := ComputeSoftCoverage(c, req)
	quality := ComputeScoreQuality(c)
	recency := ComputeRecency(c)

	final := (hard * 2.0) + (soft * 1.5) + (quality * 1.0) + (recency * 0.5)

	return CandidateScore{
		StudentID:    c.StudentID,
		HardCoverage: hard,
		SoftCoverage: soft,
		ScoreQuality: quality,
		Recency:      recency,
		FinalScore:   final,
	}
}

// Rank orders candidates by final score, best first. Ties keep the input
// order. When nothing scores above zero the input order is preserved.
func Rank(candidates []Candidate, req Requirements) ([]Candidate, []CandidateScore) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	scores := make([]CandidateScore, len(candidates))
	maxScore := 0.0
	for i := range candidates {
		scores[i] = ScoreCandidate(candidates[i], req)
		if scores[i].FinalScore > maxScore {
			maxScore = scores[i].FinalScore
		}
	}

	if maxScore == 0 {
		return candidates, scores
	}

	idx := make([]int, len(candidates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return scores[idx[i]].FinalScore > scores[idx[j]].FinalScore
	})

	outC := make([]Candidate, 0, len(candidates))
	outS := make([]CandidateScore, 0, len(candidates))
	for _, i := range idx {
		outC = append(outC, candidates[i])
		outS = append(outS, scores[i])
	}
	return outC, outS
}
