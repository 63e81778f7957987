package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/goalline/wc26/internal/tournament/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListGroups(ctx context.Context, conn *gorm.DB) ([]domain.Group, error) {
	var groups []domain.Group
	err := conn.WithContext(ctx).Order("name asc").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *repo) FindGroupByName(ctx context.Context, conn *gorm.DB, name string) (*domain.Group, error) {
	var group domain.Group
	err := conn.WithContext(ctx).
		Where("name = ?", strings.ToUpper(strings.TrimSpace(name))).
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *repo) ListTeams(ctx context.Context, conn *gorm.DB, group string) ([]domain.Team, error) {
	stmt := conn.WithContext(ctx)
	if group != "" {
		stmt = stmt.Where("group_name = ?", strings.ToUpper(strings.TrimSpace(group)))
	}

	var teams []domain.Team
	err := stmt.Order("name_en asc").Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *repo) FindTeamByID(ctx context.Context, conn *gorm.DB, teamID string) (*domain.Team, error) {
	var team domain.Team
	err := conn.WithContext(ctx).
		Where("team_id = ?", teamID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *repo) FindTeamByName(ctx context.Context, conn *gorm.DB, name string) (*domain.Team, error) {
	var team domain.Team
	err := conn.WithContext(ctx).
		Where("LOWER(name_en) = LOWER(?)", strings.TrimSpace(name)).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *repo) ListGames(ctx context.Context, conn *gorm.DB) ([]domain.Game, error) {
	var games []domain.Game
	err := conn.WithContext(ctx).Order("kickoff_at asc").Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *repo) FindGameByID(ctx context.Context, conn *gorm.DB, gameID string) (*domain.Game, error) {
	var game domain.Game
	err := conn.WithContext(ctx).
		Where("game_id = ?", gameID).
		First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &game, nil
}

func (r *repo) ListStadiums(ctx context.Context, conn *gorm.DB) ([]domain.Stadium, error) {
	var stadiums []domain.Stadium
	err := conn.WithContext(ctx).Order("stadium_id asc").Find(&stadiums).Error
	if err != nil {
		return nil, err
	}
	return stadiums, nil
}

func (r *repo) FindStadiumByID(ctx context.Context, conn *gorm.DB, stadiumID string) (*domain.Stadium, error) {
	var stadium domain.Stadium
	err := conn.WithContext(ctx).
		Where("stadium_id = ?", stadiumID).
		First(&stadium).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stadium, nil
}
