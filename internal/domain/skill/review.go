package skill

import "errors"

var (
	ErrNotFound         = errors.New("skill not found")
	ErrNotOwner         = errors.New("not the skill owner")
	ErrAlreadyReviewed  = errors.New("skill already reviewed")
	ErrIncompleteRubric = errors.New("incomplete review rubric")
)

// Review is the reviewer's verdict plus the rubric. Soft score keys are
// soft-skill ids rendered as strings; the hard score key is the skill title.
type Review struct {
	Verdict    Verification
	HardScores map[string]float64
	SoftScores map[string]float64
}

// MissingRubricKeys returns the rubric keys an approval still needs: the
// skill's own title in the hard map and every declared soft skill in the
// soft map. Rejections carry no rubric requirement.
func MissingRubricKeys(s Skill, r Review) []string {
	if r.Verdict != VerificationApproved {
		return nil
	}

	var missing []string
	if _, ok := r.HardScores[s.Title]; !ok {
		missing = append(missing, s.Title)
	}
	for _, id := range s.SoftSkillIDs {
		if _, ok := r.SoftScores[id.String()]; !ok {
			missing = append(missing, id.String())
		}
	}
	return missing
}

// AggregateScore averages all rubric values.
func AggregateScore(r Review) float64 {
	total := 0.0
	n := 0
	for _, v := range r.HardScores {
		total += v
		n++
	}
	for _, v := range r.SoftScores {
		total += v
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
