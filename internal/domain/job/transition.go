package job

type AssignmentStatus string

const (
	StatusAssigned  AssignmentStatus = "assigned"
	StatusAccepted  AssignmentStatus = "accepted"
	StatusRejected  AssignmentStatus = "rejected"
	StatusCompleted AssignmentStatus = "completed"
	StatusVerified  AssignmentStatus = "verified"
)

func ParseAssignmentStatus(s string) (AssignmentStatus, bool) {
	switch AssignmentStatus(s) {
	case StatusAssigned, StatusAccepted, StatusRejected, StatusCompleted, StatusVerified:
		return AssignmentStatus(s), true
	}
	return "", false
}

// Actor distinguishes who drives a transition: the assigned student
// (accept, reject, complete) or the owning employer (verify).
type Actor int

const (
	ActorStudent Actor = iota
	ActorEmployer
)

// transitions is the full legality table:
//
//	assigned --accept(student)---> accepted
//	assigned --reject(student)---> rejected
//	accepted --complete(student)-> completed
//	completed --verify(employer)-> verified
var transitions = map[AssignmentStatus]map[AssignmentStatus]Actor{
	StatusAssigned:  {StatusAccepted: ActorStudent, StatusRejected: ActorStudent},
	StatusAccepted:  {StatusCompleted: ActorStudent},
	StatusCompleted: {StatusVerified: ActorEmployer},
}

// CanTransition reports whether actor may move an assignment from cur to
// next. A repeated identical transition is not legal here; callers detect
// cur == next and return the stored row unchanged instead.
func CanTransition(cur, next AssignmentStatus, actor Actor) bool {
	nexts, ok := transitions[cur]
	if !ok {
		return false
	}
	a, ok := nexts[next]
	return ok && a == actor
}
