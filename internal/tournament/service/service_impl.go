package service

import (
	"context"
	"strings"
	"time"

	"github.com/goalline/wc26/internal/cache"
	"github.com/goalline/wc26/internal/tournament/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// teamNamesTTL bounds staleness of the team-name map used to enrich game
// listings. Team names are effectively static once the draw is done.
const teamNamesTTL = 5 * time.Minute

const teamNamesKey = "team_names"

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	names *cache.TTLCache[string, map[string]domain.TeamName]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tournament.service"),
		repo:  p.Repo,
		names: cache.NewTTLCache[string, map[string]domain.TeamName](),
	}
}

func (s *Service) Groups(ctx context.Context) ([]domain.Group, error) {
	return s.repo.ListGroups(ctx, s.db)
}

func (s *Service) GroupByName(ctx context.Context, name string) (*domain.GroupDetail, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrNotFound
	}

	group, err := s.repo.FindGroupByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrNotFound
	}

	teams, err := s.repo.ListTeams(ctx, s.db, group.Name)
	if err != nil {
		return nil, err
	}

	return &domain.GroupDetail{Group: group, Teams: teams}, nil
}

func (s *Service) Teams(ctx context.Context, group string) ([]domain.Team, error) {
	return s.repo.ListTeams(ctx, s.db, group)
}

func (s *Service) TeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	team, err := s.repo.FindTeamByID(ctx, s.db, strings.TrimSpace(teamID))
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	return team, nil
}

func (s *Service) TeamByName(ctx context.Context, name string) (*domain.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrNotFound
	}

	team, err := s.repo.FindTeamByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	return team, nil
}

func (s *Service) Games(ctx context.Context) ([]domain.GameView, error) {
	games, err := s.repo.ListGames(ctx, s.db)
	if err != nil {
		return nil, err
	}

	names, err := s.teamNames(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]domain.GameView, 0, len(games))
	for _, game := range games {
		views = append(views, s.enrich(game, names))
	}
	return views, nil
}

func (s *Service) GameByID(ctx context.Context, gameID string) (*domain.GameView, error) {
	game, err := s.repo.FindGameByID(ctx, s.db, strings.TrimSpace(gameID))
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, domain.ErrNotFound
	}

	names, err := s.teamNames(ctx)
	if err != nil {
		return nil, err
	}

	view := s.enrich(*game, names)
	return &view, nil
}

func (s *Service) Stadiums(ctx context.Context) ([]domain.Stadium, error) {
	return s.repo.ListStadiums(ctx, s.db)
}

func (s *Service) StadiumByID(ctx context.Context, stadiumID string) (*domain.Stadium, error) {
	stadium, err := s.repo.FindStadiumByID(ctx, s.db, strings.TrimSpace(stadiumID))
	if err != nil {
		return nil, err
	}
	if stadium == nil {
		return nil, domain.ErrNotFound
	}
	return stadium, nil
}

// teamNames returns the team-id to names map, refreshing it from the
// database after the cache TTL elapses.
func (s *Service) teamNames(ctx context.Context) (map[string]domain.TeamName, error) {
	if cached, ok := s.names.Get(teamNamesKey); ok {
		return cached, nil
	}

	teams, err := s.repo.ListTeams(ctx, s.db, "")
	if err != nil {
		return nil, err
	}

	names := make(map[string]domain.TeamName, len(teams))
	for _, team := range teams {
		names[team.TeamID] = domain.TeamName{NameEN: team.NameEN, NameFA: team.NameFA}
	}

	s.names.Set(teamNamesKey, names, teamNamesTTL)
	s.log.Debug("team name cache refreshed", zap.Int("teams", len(names)))
	return names, nil
}

func (s *Service) enrich(game domain.Game, names map[string]domain.TeamName) domain.GameView {
	view := domain.GameView{Game: game}
	if name, ok := names[game.HomeTeamID]; ok {
		view.HomeTeamNameEN = name.NameEN
		view.HomeTeamNameFA = name.NameFA
	}
	if name, ok := names[game.AwayTeamID]; ok {
		view.AwayTeamNameEN = name.NameEN
		view.AwayTeamNameFA = name.NameFA
	}
	return view
}
