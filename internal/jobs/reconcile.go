package jobs

import (
	"context"
	"log"
	"time"

	"credtrack/internal/domain/course"

	"github.com/robfig/cron/v3"
)

// Reconciler periodically recomputes course enrollment counters from the
// submitted skill records. The transactional increment on submission keeps
// the counter accurate in the common case; this job repairs drift after
// manual deletes or restores.
type Reconciler struct {
	courses  course.Repository
	logger   *log.Logger
	schedule string
	cron     *cron.Cron
}

func NewReconciler(courses course.Repository, schedule string, logger *log.Logger) *Reconciler {
	return &Reconciler{
		courses:  courses,
		logger:   logger,
		schedule: schedule,
	}
}

// Start registers and launches the cron schedule. An empty schedule
// disables the job.
func (r *Reconciler) Start() error {
	if r.schedule == "" {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(r.schedule, r.runOnce); err != nil {
		return err
	}
	c.Start()
	r.cron = c
	return nil
}

func (r *Reconciler) Stop() {
	if r.cron == nil {
		return
	}
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Reconciler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	updated, err := r.courses.ReconcileStudentCounts(ctx)
	if err != nil {
		if r.logger != nil {
			r.logger.Printf("course reconcile failed: %v", err)
		}
		return
	}
	if r.logger != nil {
		r.logger.Printf("course reconcile done updated=%d", updated)
	}
}
