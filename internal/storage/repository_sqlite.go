package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultListLimit = 10

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveBattleRecord(rec *BattleRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"trainer_name", "kind", "opponent", "outcome", "rounds", "captured_species", "summary",
		}),
	}).Create(rec).Error
}

func (r *sqliteRepository) GetBattleRecord(sessionID string) (*BattleRecord, error) {
	var rec BattleRecord
	if err := r.db.Where("session_id = ?", sessionID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) ListBattleRecords(email string, limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var recs []BattleRecord
	if err := r.db.Where("trainer_email = ?", email).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) UpsertTrainer(email, name string) error {
	return upsertTrainer(r.db, email, name, nil)
}

// upsertTrainer loads or creates the profile for email, renames it when
// name is set, applies update and saves.
func upsertTrainer(tx *gorm.DB, email, name string, update func(p *TrainerProfile)) error {
	var p TrainerProfile
	if err := tx.Where("email = ?", email).First(&p).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		p = TrainerProfile{Email: email, Name: name}
	}
	if name != "" {
		p.Name = name
	}
	if update != nil {
		update(&p)
	}
	return tx.Save(&p).Error
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*TrainerProfile, error) {
	var p TrainerProfile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &TrainerProfile{Email: email}, nil
		}
		return nil, err
	}
	return &p, nil
}

// UpdateStatsOnBattleEnd counts the battle for its trainer. Abandoned
// battles only count as played.
func (r *sqliteRepository) UpdateStatsOnBattleEnd(rec *BattleRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return upsertTrainer(tx, rec.TrainerEmail, rec.TrainerName, func(p *TrainerProfile) {
			p.BattlesPlayed++
			switch rec.Outcome {
			case OutcomeWon:
				p.Wins++
			case OutcomeLost:
				p.Losses++
			case OutcomeCaptured:
				p.Wins++
				p.Captures++
			case OutcomeEscaped:
				p.Escapes++
			case OutcomeForfeited:
				p.Losses++
				p.Forfeits++
			}
		})
	})
}

// GetTopTrainers returns top N trainers ordered by wins, then captures,
// then battles played.
func (r *sqliteRepository) GetTopTrainers(limit int) ([]TrainerProfile, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []TrainerProfile
	if err := r.db.Model(&TrainerProfile{}).
		Where("battles_played > 0").
		Order("wins DESC").
		Order("captures DESC").
		Order("battles_played DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
