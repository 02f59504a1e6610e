package job

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name  string
		cur   AssignmentStatus
		next  AssignmentStatus
		actor Actor
		want  bool
	}{
		{"student accepts assigned", StatusAssigned, StatusAccepted, ActorStudent, true},
		{"student rejects assigned", StatusAssigned, StatusRejected, ActorStudent, true},
		{"student completes accepted", StatusAccepted, StatusCompleted, ActorStudent, true},
		{"employer verifies completed", StatusCompleted, StatusVerified, ActorEmployer, true},

		{"employer cannot accept", StatusAssigned, StatusAccepted, ActorEmployer, false},
		{"student cannot verify", StatusCompleted, StatusVerified, ActorStudent, false},
		{"cannot skip to completed", StatusAssigned, StatusCompleted, ActorStudent, false},
		{"cannot skip to verified", StatusAccepted, StatusVerified, ActorEmployer, false},
		{"rejected is terminal", StatusRejected, StatusAccepted, ActorStudent, false},
		{"verified is terminal", StatusVerified, StatusCompleted, ActorStudent, false},
		{"cannot reject after accept", StatusAccepted, StatusRejected, ActorStudent, false},
		{"repeat is not a transition", StatusAccepted, StatusAccepted, ActorStudent, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.cur, tc.next, tc.actor); got != tc.want {
				t.Fatalf("CanTransition(%s, %s, %v) = %v, want %v", tc.cur, tc.next, tc.actor, got, tc.want)
			}
		})
	}
}

func TestParseAssignmentStatus(t *testing.T) {
	for _, s := range []string{"assigned", "accepted", "rejected", "completed", "verified"} {
		if _, ok := ParseAssignmentStatus(s); !ok {
			t.Fatalf("expected %q to parse", s)
		}
	}
	if _, ok := ParseAssignmentStatus("pending"); ok {
		t.Fatalf("expected pending to be rejected")
	}
	if _, ok := ParseAssignmentStatus(""); ok {
		t.Fatalf("expected empty to be rejected")
	}
}

func TestLocked(t *testing.T) {
	j := Job{}

	if Locked(j, nil) {
		t.Fatalf("job with no assignments should not be locked")
	}
	if Locked(j, []Assignment{{Status: StatusRejected}}) {
		t.Fatalf("only rejected assignments should not lock the job")
	}
	if !Locked(j, []Assignment{{Status: StatusRejected}, {Status: StatusAssigned}}) {
		t.Fatalf("an assigned assignment should lock the job")
	}
	if !Locked(j, []Assignment{{Status: StatusCompleted}}) {
		t.Fatalf("a completed assignment should lock the job")
	}

	j.Verified = true
	if !Locked(j, nil) {
		t.Fatalf("a verified job is always locked")
	}
}
