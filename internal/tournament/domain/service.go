package domain

import (
	"context"
	"errors"
)

// GroupDetail pairs a group with the teams drawn into it.
type GroupDetail struct {
	Group *Group `json:"group"`
	Teams []Team `json:"teams"`
}

type Service interface {
	Groups(ctx context.Context) ([]Group, error)
	// GroupByName returns the group plus its member teams. Name matching is
	// case-insensitive; groups are stored uppercase.
	GroupByName(ctx context.Context, name string) (*GroupDetail, error)

	// Teams lists all teams, optionally filtered by group name.
	Teams(ctx context.Context, group string) ([]Team, error)
	TeamByID(ctx context.Context, teamID string) (*Team, error)
	TeamByName(ctx context.Context, name string) (*Team, error)

	// Games lists every match enriched with denormalized team names.
	Games(ctx context.Context) ([]GameView, error)
	GameByID(ctx context.Context, gameID string) (*GameView, error)

	Stadiums(ctx context.Context) ([]Stadium, error)
	StadiumByID(ctx context.Context, stadiumID string) (*Stadium, error)
}

var ErrNotFound = errors.New("record_not_found")
