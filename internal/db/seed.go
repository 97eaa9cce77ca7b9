package db

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/frqgit/year-7-math/internal/domain"
	"github.com/frqgit/year-7-math/internal/platform/logger"
)

//go:embed achievements.yaml
var achievementsYAML []byte

type catalogFile struct {
	Achievements []catalogEntry `yaml:"achievements"`
}

type catalogEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	CoinReward  int    `yaml:"coin_reward"`
	Requirement int    `yaml:"requirement"`
	Category    string `yaml:"category"`
}

var validCategories = map[string]bool{
	domain.CategoryGames:       true,
	domain.CategoryCoins:       true,
	domain.CategoryStreak:      true,
	domain.CategoryAccuracy:    true,
	domain.CategoryDifficulty:  true,
	domain.CategorySpeed:       true,
	domain.CategoryPerfectGame: true,
	domain.CategoryConsistency: true,
	domain.CategoryDailyStreak: true,
}

// LoadCatalog parses the embedded achievement catalog.
func LoadCatalog() ([]*domain.Achievement, error) {
	var file catalogFile
	if err := yaml.Unmarshal(achievementsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse achievement catalog: %w", err)
	}
	out := make([]*domain.Achievement, 0, len(file.Achievements))
	for _, e := range file.Achievements {
		if e.Name == "" {
			return nil, fmt.Errorf("achievement catalog entry with empty name")
		}
		if !validCategories[e.Category] {
			return nil, fmt.Errorf("achievement %q has unknown category %q", e.Name, e.Category)
		}
		if e.Requirement <= 0 {
			return nil, fmt.Errorf("achievement %q has non-positive requirement", e.Name)
		}
		out = append(out, &domain.Achievement{
			ID:          uuid.New(),
			Name:        e.Name,
			Description: e.Description,
			Icon:        e.Icon,
			CoinReward:  e.CoinReward,
			Requirement: e.Requirement,
			Category:    e.Category,
		})
	}
	return out, nil
}

// SeedAchievements inserts the embedded catalog on an empty achievements
// table. The catalog is read-only at runtime, so a non-empty table is
// left untouched.
func SeedAchievements(gdb *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := gdb.Model(&domain.Achievement{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count achievements: %w", err)
	}
	if count > 0 {
		log.Debug("Achievement catalog already seeded", "count", count)
		return nil
	}
	catalog, err := LoadCatalog()
	if err != nil {
		return err
	}
	if err := gdb.Create(&catalog).Error; err != nil {
		return fmt.Errorf("seed achievements: %w", err)
	}
	log.Info("Achievement catalog seeded", "count", len(catalog))
	return nil
}
