package jobs

import (
	"context"

	"staybook-backend/internal/logger"
	"staybook-backend/internal/utils"
)

// CompleteFinishedBookings moves confirmed bookings whose check-out has passed to completed.
func (jr *JobRunner) CompleteFinishedBookings() {
	jr.runWithRecovery("CompleteFinishedBookings", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := jr.bookings.CompleteFinished(ctx, jr.now())
		if err != nil {
			logger.Error("Failed to complete finished bookings", "error", err)
			return
		}
		logger.Info("Completed finished bookings", "count", n)
	})
}

// PurgePastOverrides deletes availability overrides older than the retention window.
func (jr *JobRunner) PurgePastOverrides() {
	jr.runWithRecovery("PurgePastOverrides", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		cutoff := utils.TruncateDay(jr.now()).AddDate(0, 0, -jr.config.Scheduler.OverrideRetentionDays)
		n, err := jr.overrides.DeleteBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge past overrides", "error", err, "cutoff", utils.FormatDay(cutoff))
			return
		}
		logger.Info("Purged past availability overrides", "count", n, "cutoff", utils.FormatDay(cutoff))
	})
}
