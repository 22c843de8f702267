package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"selfcare-course-bot/internal/models"
)

// Start registers one daily job per slot at its configured local time
// and starts the scheduler. Times are "HH:MM" in the engine's timezone.
func Start(ctx context.Context, e *Engine, slotTimes map[models.Slot]string) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(e.loc))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	for _, slot := range models.Slots {
		hm, ok := slotTimes[slot]
		if !ok {
			return nil, fmt.Errorf("no trigger time for slot %s", slot)
		}
		at, err := time.Parse("15:04", hm)
		if err != nil {
			return nil, fmt.Errorf("slot %s time %q: %w", slot, hm, err)
		}

		slot := slot
		_, err = s.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(
				gocron.NewAtTime(uint(at.Hour()), uint(at.Minute()), 0),
			)),
			gocron.NewTask(func() {
				e.RunSlot(ctx, slot)
			}),
			gocron.WithName("slot-"+string(slot)),
		)
		if err != nil {
			return nil, fmt.Errorf("register job for slot %s: %w", slot, err)
		}
	}

	s.Start()
	return s, nil
}
