package game

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted for trainers.
const (
	GenderMale    = "Male"
	GenderFemale  = "Female"
	GenderUnknown = "Unknown"
)

// Trainer is a persisted player profile with its roster and battle record.
type Trainer struct {
	ID            string          `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Name          string          `json:"name" gorm:"size:20"`
	Gender        string          `json:"gender" gorm:"size:8"`
	Email         *string         `json:"-" gorm:"uniqueIndex"` // set only for Google sign-ins
	BattlesPlayed int             `json:"battles_played"`
	Wins          int             `json:"wins"`
	Creatures     []OwnedCreature `json:"pokemon" gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE;"`
}

func (Trainer) TableName() string { return "trainers" }

// BeforeCreate assigns a UUID when the caller did not provide one.
func (t *Trainer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// SortCreatures orders the roster by slot so the lead creature comes first.
func (t *Trainer) SortCreatures() {
	sort.SliceStable(t.Creatures, func(i, j int) bool { return t.Creatures[i].Slot < t.Creatures[j].Slot })
}

// OwnedCreature is the persisted form of a roster entry. Stats are not
// stored: they are recomputed from the species table whenever the creature
// is loaded into a battle.
type OwnedCreature struct {
	gorm.Model
	TrainerID string `json:"-" gorm:"index;size:36"`
	Slot      int    `json:"slot"`
	Species   string `json:"species" gorm:"size:32"`
	Name      string `json:"name" gorm:"size:32"`
	Level     int    `json:"level"`
}

func (OwnedCreature) TableName() string { return "trainer_pokemon" }
