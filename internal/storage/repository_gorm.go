package storage

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tyoppar01/pokemon-battle-v3/internal/game"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository wraps an opened database. The same implementation serves
// SQLite and PostgreSQL.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func bySlot(db *gorm.DB) *gorm.DB { return db.Order("slot ASC") }

func (r *gormRepository) CreateTrainer(t *game.Trainer) error {
	return r.db.Create(t).Error
}

func (r *gormRepository) GetTrainer(id string) (*game.Trainer, error) {
	var t game.Trainer
	if err := r.db.Preload("Creatures", bySlot).First(&t, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *gormRepository) ListTrainers() ([]game.Trainer, error) {
	var out []game.Trainer
	if err := r.db.Preload("Creatures", bySlot).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gormRepository) UpdateTrainer(t *game.Trainer) error {
	res := r.db.Model(&game.Trainer{}).Where("id = ?", t.ID).
		Updates(map[string]interface{}{"name": t.Name, "gender": t.Gender})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository) DeleteTrainer(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("trainer_id = ?", id).Delete(&game.OwnedCreature{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&game.Trainer{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *gormRepository) trainerExists(tx *gorm.DB, id string) (bool, error) {
	var n int64
	if err := tx.Model(&game.Trainer{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *gormRepository) AddCreature(trainerID string, c *game.OwnedCreature, limit int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ok, err := r.trainerExists(tx, trainerID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		var count int64
		if err := tx.Model(&game.OwnedCreature{}).Where("trainer_id = ?", trainerID).Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(limit) {
			return game.ErrTeamFull
		}
		c.TrainerID = trainerID
		c.Slot = int(count)
		return tx.Create(c).Error
	})
}

func (r *gormRepository) RemoveCreature(trainerID string, slot int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Where("trainer_id = ? AND slot = ?", trainerID, slot).Delete(&game.OwnedCreature{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&game.OwnedCreature{}).
			Where("trainer_id = ? AND slot > ?", trainerID, slot).
			UpdateColumn("slot", gorm.Expr("slot - 1")).Error
	})
}

func (r *gormRepository) ListCreatures(trainerID string) ([]game.OwnedCreature, error) {
	ok, err := r.trainerExists(r.db, trainerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	out := []game.OwnedCreature{}
	if err := bySlot(r.db).Where("trainer_id = ?", trainerID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gormRepository) CountCreaturesBySpecies() (map[string]int64, error) {
	var rows []struct {
		Species string
		Total   int64
	}
	if err := r.db.Model(&game.OwnedCreature{}).
		Select("species, count(*) AS total").
		Group("species").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Species] = row.Total
	}
	return out, nil
}

func (r *gormRepository) RecordBattleResult(winnerID, loserID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&game.Trainer{}).Where("id = ?", winnerID).Updates(map[string]interface{}{
			"battles_played": gorm.Expr("battles_played + ?", 1),
			"wins":           gorm.Expr("wins + ?", 1),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		res = tx.Model(&game.Trainer{}).Where("id = ?", loserID).
			Update("battles_played", gorm.Expr("battles_played + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetTopTrainers returns top N trainers ordered by wins desc, then battles played desc.
func (r *gormRepository) GetTopTrainers(limit int) ([]game.Trainer, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []game.Trainer
	if err := r.db.Model(&game.Trainer{}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "wins"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "battles_played"}, Desc: true}).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gormRepository) FindTrainerByEmail(email string) (*game.Trainer, error) {
	var t game.Trainer
	err := r.db.Preload("Creatures", bySlot).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&t).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *gormRepository) UpsertGoogleTrainer(email, name string) (*game.Trainer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	t := game.Trainer{Name: name, Gender: game.GenderUnknown, Email: &email}
	// A second sign-in hits the unique email index and keeps the existing row.
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&t).Error
	if err != nil {
		return nil, err
	}
	return r.FindTrainerByEmail(email)
}
