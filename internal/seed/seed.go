// Package seed loads tournament fixture data from JSON files on startup.
// Loading is idempotent: records upsert on their stable tournament-data ids,
// so re-running against a populated database refreshes rather than
// duplicates.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/goalline/wc26/internal/tournament/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Loader reads fixture files from a directory. Missing files are skipped;
// a directory holding only teams.json seeds only teams.
type Loader struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewLoader(db *gorm.DB, log *zap.Logger, genID *snowflake.Node) *Loader {
	return &Loader{db: db, log: log.Named("seed"), genID: genID}
}

// Load seeds every recognized fixture file found in dir inside one
// transaction.
func (l *Loader) Load(ctx context.Context, dir string) error {
	if l.db == nil {
		return errors.New("seed database handle is required")
	}

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := l.loadTeams(ctx, tx, filepath.Join(dir, "teams.json")); err != nil {
			return err
		}
		if err := l.loadGroups(ctx, tx, filepath.Join(dir, "groups.json")); err != nil {
			return err
		}
		if err := l.loadStadiums(ctx, tx, filepath.Join(dir, "stadiums.json")); err != nil {
			return err
		}
		return l.loadGames(ctx, tx, filepath.Join(dir, "games.json"))
	})
}

func (l *Loader) loadTeams(ctx context.Context, tx *gorm.DB, path string) error {
	var teams []domain.Team
	ok, err := readFixture(path, &teams)
	if err != nil || !ok {
		return err
	}
	if len(teams) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range teams {
		teams[i].ID = l.genID.Generate()
		teams[i].CreatedAt = now
	}

	err = tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name_en", "name_fa", "flag", "fifa_code", "iso2", "group_name"}),
	}).Create(&teams).Error
	if err != nil {
		return fmt.Errorf("seed teams: %w", err)
	}

	l.log.Info("teams seeded", zap.Int("count", len(teams)))
	return nil
}

func (l *Loader) loadGroups(ctx context.Context, tx *gorm.DB, path string) error {
	var groups []domain.Group
	ok, err := readFixture(path, &groups)
	if err != nil || !ok {
		return err
	}
	if len(groups) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range groups {
		groups[i].ID = l.genID.Generate()
		groups[i].CreatedAt = now
		groups[i].UpdatedAt = now
	}

	err = tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"standings", "updated_at"}),
	}).Create(&groups).Error
	if err != nil {
		return fmt.Errorf("seed groups: %w", err)
	}

	l.log.Info("groups seeded", zap.Int("count", len(groups)))
	return nil
}

func (l *Loader) loadStadiums(ctx context.Context, tx *gorm.DB, path string) error {
	var stadiums []domain.Stadium
	ok, err := readFixture(path, &stadiums)
	if err != nil || !ok {
		return err
	}
	if len(stadiums) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range stadiums {
		stadiums[i].ID = l.genID.Generate()
		stadiums[i].CreatedAt = now
	}

	err = tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stadium_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name_en", "name_fa", "fifa_name", "city_en", "city_fa", "country_en", "country_fa", "capacity", "region"}),
	}).Create(&stadiums).Error
	if err != nil {
		return fmt.Errorf("seed stadiums: %w", err)
	}

	l.log.Info("stadiums seeded", zap.Int("count", len(stadiums)))
	return nil
}

func (l *Loader) loadGames(ctx context.Context, tx *gorm.DB, path string) error {
	var games []domain.Game
	ok, err := readFixture(path, &games)
	if err != nil || !ok {
		return err
	}
	if len(games) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range games {
		games[i].ID = l.genID.Generate()
		games[i].CreatedAt = now
		games[i].UpdatedAt = now
	}

	err = tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"home_team_id", "away_team_id", "home_score", "away_score",
			"home_scorers", "away_scorers", "group_name", "matchday", "stage",
			"stadium_id", "kickoff_at", "local_date", "persian_date",
			"finished", "time_elapsed", "updated_at",
		}),
	}).Create(&games).Error
	if err != nil {
		return fmt.Errorf("seed games: %w", err)
	}

	l.log.Info("games seeded", zap.Int("count", len(games)))
	return nil
}

// readFixture unmarshals path into out. Returns false without error when
// the file does not exist.
func readFixture(path string, out any) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
