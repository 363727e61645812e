package utils

import (
	"artvista/config"
	"artvista/database"
	learningModels "artvista/models/learning"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logReconcile logs reconciliation events with timestamp
func logReconcile(message string) {
	log.Printf("[PROGRESS-RECONCILE %s] %s", time.Now().Format(time.RFC3339), message)
}

// CollectProgressDrift compares every stored percentage against one
// recomputed from the current catalog and returns a line per diverging
// record. Records are never mutated; reported progress must not regress.
func CollectProgressDrift() ([]string, error) {
	db := database.Database.Db

	var records []learningModels.Progress
	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}

	var driftLines []string
	for _, record := range records {
		var totalLessons int64
		db.Model(&learningModels.Lesson{}).Where("path_id = ?", record.PathID).Count(&totalLessons)

		var completedLessons int64
		db.Model(&learningModels.LessonCompletion{}).Where("progress_id = ?", record.ID).Count(&completedLessons)

		recomputed := learningModels.PercentComplete(completedLessons, totalLessons)
		if recomputed != record.Percent {
			line := fmt.Sprintf("user=%s path=%s stored=%d recomputed=%d", record.UserID, record.PathID, record.Percent, recomputed)
			logReconcile("Drift detected: " + line)
			driftLines = append(driftLines, line)
		}
	}

	return driftLines, nil
}

// reconcileProgress runs one sweep and reports the findings
func reconcileProgress() {
	driftLines, err := CollectProgressDrift()
	if err != nil {
		logReconcile("Error fetching progress records: " + err.Error())
		return
	}

	if len(driftLines) > 0 {
		if err := SendDriftReport(driftLines); err != nil {
			logReconcile("Error sending drift report: " + err.Error())
		}
	}

	logReconcile(fmt.Sprintf("Sweep finished: %d records drifted", len(driftLines)))
}

// StartReconcileScheduler starts the periodic drift sweep
func StartReconcileScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.ReconcileSpec, reconcileProgress); err != nil {
		log.Fatalf("Failed to schedule progress reconciliation: %v", err)
	}

	c.Start()
	logReconcile("Scheduler started with spec " + config.AppConfig.ReconcileSpec)
	return c
}
