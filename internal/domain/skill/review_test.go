package skill

import (
	"testing"

	"github.com/google/uuid"
)

func TestMissingRubricKeys_Approval(t *testing.T) {
	soft1 := uuid.New()
	soft2 := uuid.New()
	s := Skill{Title: "Go", SoftSkillIDs: []uuid.UUID{soft1, soft2}}

	missing := MissingRubricKeys(s, Review{Verdict: VerificationApproved})
	if len(missing) != 3 {
		t.Fatalf("expected 3 missing keys, got %d: %v", len(missing), missing)
	}

	missing = MissingRubricKeys(s, Review{
		Verdict:    VerificationApproved,
		HardScores: map[string]float64{"Go": 85},
		SoftScores: map[string]float64{soft1.String(): 70},
	})
	if len(missing) != 1 || missing[0] != soft2.String() {
		t.Fatalf("expected only %s missing, got %v", soft2, missing)
	}

	missing = MissingRubricKeys(s, Review{
		Verdict:    VerificationApproved,
		HardScores: map[string]float64{"Go": 85},
		SoftScores: map[string]float64{soft1.String(): 70, soft2.String(): 90},
	})
	if len(missing) != 0 {
		t.Fatalf("expected complete rubric, got missing %v", missing)
	}
}

func TestMissingRubricKeys_RejectionNeedsNoRubric(t *testing.T) {
	s := Skill{Title: "Go", SoftSkillIDs: []uuid.UUID{uuid.New()}}
	if missing := MissingRubricKeys(s, Review{Verdict: VerificationRejected}); len(missing) != 0 {
		t.Fatalf("rejection should not require rubric keys, got %v", missing)
	}
}

func TestAggregateScore(t *testing.T) {
	r := Review{
		HardScores: map[string]float64{"Go": 80},
		SoftScores: map[string]float64{"a": 60, "b": 100},
	}
	if got := AggregateScore(r); got != 80 {
		t.Fatalf("expected mean 80, got %v", got)
	}
	if got := AggregateScore(Review{}); got != 0 {
		t.Fatalf("empty rubric should aggregate to 0, got %v", got)
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"Beginner", "Intermediate", "Advanced"} {
		if _, ok := ParseLevel(s); !ok {
			t.Fatalf("expected %q to parse", s)
		}
	}
	if _, ok := ParseLevel("beginner"); ok {
		t.Fatalf("levels are case sensitive")
	}
	if _, ok := ParseLevel("Expert"); ok {
		t.Fatalf("unknown level should be rejected")
	}
}

func TestParseVerification(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		if _, ok := ParseVerification(s); !ok {
			t.Fatalf("expected %q to parse", s)
		}
	}
	if _, ok := ParseVerification("Approved"); ok {
		t.Fatalf("verification states are lowercase")
	}
}
