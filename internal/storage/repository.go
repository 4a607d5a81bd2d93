package storage

import "errors"

var ErrRecordNotFound = errors.New("record not found")

type Repository interface {
	// SaveBattleRecord inserts the record, or updates it when a record with
	// the same session ID exists.
	SaveBattleRecord(rec *BattleRecord) error
	GetBattleRecord(sessionID string) (*BattleRecord, error)
	// ListBattleRecords returns the trainer's most recent records first.
	ListBattleRecords(email string, limit int) ([]BattleRecord, error)

	UpsertTrainer(email, name string) error
	// GetStatsByEmail returns a zero profile for unknown trainers.
	GetStatsByEmail(email string) (*TrainerProfile, error)
	UpdateStatsOnBattleEnd(rec *BattleRecord) error
	// Leaderboard
	GetTopTrainers(limit int) ([]TrainerProfile, error)
}
