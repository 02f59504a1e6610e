package cache

import (
	"context"
	"testing"
	"time"
)

func TestTransitionLockKey_DistinctPerTargetStatus(t *testing.T) {
	accept := TransitionLockKey("job-1", "student-1", "accepted")
	complete := TransitionLockKey("job-1", "student-1", "completed")
	if accept == complete {
		t.Fatalf("keys for different target statuses must differ, both %q", accept)
	}

	repeat := TransitionLockKey("job-1", "student-1", "accepted")
	if repeat != accept {
		t.Fatalf("same transition must map to the same key: %q vs %q", repeat, accept)
	}

	other := TransitionLockKey("job-1", "student-2", "accepted")
	if other == accept {
		t.Fatalf("keys for different students must differ, both %q", accept)
	}
}

func TestNilRedisIsNoOp(t *testing.T) {
	var r *Redis
	ctx := context.Background()

	acquired, err := r.SetIfNotExists(ctx, "k", "v", time.Second)
	if err != nil {
		t.Fatalf("nil cache SetIfNotExists: %v", err)
	}
	if !acquired {
		t.Fatalf("nil cache must report the lock as acquired so callers proceed")
	}
}
