// Package job contains the background jobs run by the web server's cron scheduler.
package job

import (
	"github.com/cadastro/disciplinas/database"
	"github.com/cadastro/disciplinas/logger"

	"gorm.io/gorm"
)

// CheckpointJob flushes the sqlite write-ahead log into the database file.
type CheckpointJob struct {
	db *gorm.DB
}

func NewCheckpointJob(db *gorm.DB) *CheckpointJob {
	return &CheckpointJob{db: db}
}

// Run implements cron.Job.
func (j *CheckpointJob) Run() {
	if j.db.Dialector.Name() != "sqlite" {
		return
	}
	if err := database.Checkpoint(j.db); err != nil {
		logger.Warning("checkpoint job err:", err)
		return
	}
	logger.Debug("database checkpoint done")
}
