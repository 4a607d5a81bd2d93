package storage

import "time"

// Outcome values stored in BattleRecord.Outcome.
const (
	OutcomeWon       = "won"
	OutcomeLost      = "lost"
	OutcomeEscaped   = "escaped"
	OutcomeCaptured  = "captured"
	OutcomeForfeited = "forfeited"
	OutcomeAbandoned = "abandoned"
)

// BattleRecord is the persisted summary of a finished battle.
type BattleRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SessionID       string    `gorm:"uniqueIndex;size:36" json:"session_id"`
	TrainerEmail    string    `gorm:"index" json:"-"`
	TrainerName     string    `json:"trainer_name"`
	Kind            string    `json:"kind"`
	Opponent        string    `json:"opponent"`
	Outcome         string    `json:"outcome"`
	Rounds          int       `json:"rounds"`
	CapturedSpecies string    `json:"captured_species,omitempty"`
	Summary         string    `json:"summary"`
	CreatedAt       time.Time `json:"created_at"`
}

// TrainerProfile holds per-trainer aggregate stats.
type TrainerProfile struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Email         string    `gorm:"uniqueIndex" json:"-"`
	Name          string    `json:"name"`
	BattlesPlayed int       `json:"battles_played"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	Captures      int       `json:"captures"`
	Escapes       int       `json:"escapes"`
	Forfeits      int       `json:"forfeits"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"updated_at"`
}
