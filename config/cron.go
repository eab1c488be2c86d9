package config

import (
	"kms.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"specialssnapshotjob": {Schedule: "0 3 * * *", Job: jobs.SnapshotJob},
	// Add more jobs here
}
