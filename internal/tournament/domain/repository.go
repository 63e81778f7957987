package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListGroups(ctx context.Context, db *gorm.DB) ([]Group, error)
	FindGroupByName(ctx context.Context, db *gorm.DB, name string) (*Group, error)

	ListTeams(ctx context.Context, db *gorm.DB, group string) ([]Team, error)
	FindTeamByID(ctx context.Context, db *gorm.DB, teamID string) (*Team, error)
	FindTeamByName(ctx context.Context, db *gorm.DB, name string) (*Team, error)

	ListGames(ctx context.Context, db *gorm.DB) ([]Game, error)
	FindGameByID(ctx context.Context, db *gorm.DB, gameID string) (*Game, error)

	ListStadiums(ctx context.Context, db *gorm.DB) ([]Stadium, error)
	FindStadiumByID(ctx context.Context, db *gorm.DB, stadiumID string) (*Stadium, error)
}
