package server_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	authdomain "github.com/goalline/wc26/internal/auth/domain"
	"github.com/goalline/wc26/internal/config"
	donationdomain "github.com/goalline/wc26/internal/donation/domain"
	"github.com/goalline/wc26/internal/donation/ipn"
	"github.com/goalline/wc26/internal/server"
	tournamentdomain "github.com/goalline/wc26/internal/tournament/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testIPNSecret = "test-ipn-secret"

type fakeDonationService struct {
	createFn     func(ctx context.Context, req donationdomain.CreateDonationRequest) (*donationdomain.CreateDonationResponse, error)
	reconcileFn  func(ctx context.Context, n donationdomain.Notification) error
	statusFn     func(ctx context.Context, orderID string) (*donationdomain.StatusView, error)
	recentFn     func(ctx context.Context) (*donationdomain.RecentDonationsResponse, error)
	currenciesFn func() []donationdomain.Currency
}

func (f *fakeDonationService) Create(ctx context.Context, req donationdomain.CreateDonationRequest) (*donationdomain.CreateDonationResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeDonationService) Reconcile(ctx context.Context, n donationdomain.Notification) error {
	return f.reconcileFn(ctx, n)
}

func (f *fakeDonationService) Status(ctx context.Context, orderID string) (*donationdomain.StatusView, error) {
	return f.statusFn(ctx, orderID)
}

func (f *fakeDonationService) Recent(ctx context.Context) (*donationdomain.RecentDonationsResponse, error) {
	return f.recentFn(ctx)
}

func (f *fakeDonationService) Currencies() []donationdomain.Currency {
	if f.currenciesFn != nil {
		return f.currenciesFn()
	}
	return []donationdomain.Currency{{Code: donationdomain.DefaultCurrency}}
}

type fakeTournamentService struct {
	groups   []tournamentdomain.Group
	teams    []tournamentdomain.Team
	games    []tournamentdomain.GameView
	stadiums []tournamentdomain.Stadium
}

func (f *fakeTournamentService) Groups(ctx context.Context) ([]tournamentdomain.Group, error) {
	return f.groups, nil
}

func (f *fakeTournamentService) GroupByName(ctx context.Context, name string) (*tournamentdomain.GroupDetail, error) {
	for i := range f.groups {
		if f.groups[i].Name == name {
			return &tournamentdomain.GroupDetail{Group: &f.groups[i], Teams: f.teams}, nil
		}
	}
	return nil, tournamentdomain.ErrNotFound
}

func (f *fakeTournamentService) Teams(ctx context.Context, group string) ([]tournamentdomain.Team, error) {
	return f.teams, nil
}

func (f *fakeTournamentService) TeamByID(ctx context.Context, teamID string) (*tournamentdomain.Team, error) {
	for i := range f.teams {
		if f.teams[i].TeamID == teamID {
			return &f.teams[i], nil
		}
	}
	return nil, tournamentdomain.ErrNotFound
}

func (f *fakeTournamentService) TeamByName(ctx context.Context, name string) (*tournamentdomain.Team, error) {
	for i := range f.teams {
		if f.teams[i].NameEN == name {
			return &f.teams[i], nil
		}
	}
	return nil, tournamentdomain.ErrNotFound
}

func (f *fakeTournamentService) Games(ctx context.Context) ([]tournamentdomain.GameView, error) {
	return f.games, nil
}

func (f *fakeTournamentService) GameByID(ctx context.Context, gameID string) (*tournamentdomain.GameView, error) {
	for i := range f.games {
		if f.games[i].GameID == gameID {
			return &f.games[i], nil
		}
	}
	return nil, tournamentdomain.ErrNotFound
}

func (f *fakeTournamentService) Stadiums(ctx context.Context) ([]tournamentdomain.Stadium, error) {
	return f.stadiums, nil
}

func (f *fakeTournamentService) StadiumByID(ctx context.Context, stadiumID string) (*tournamentdomain.Stadium, error) {
	for i := range f.stadiums {
		if f.stadiums[i].StadiumID == stadiumID {
			return &f.stadiums[i], nil
		}
	}
	return nil, tournamentdomain.ErrNotFound
}

type fakeAuthService struct {
	registerFn func(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.LoginResult, error)
	loginFn    func(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error)
	authFn     func(ctx context.Context, rawToken string) (*authdomain.User, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.LoginResult, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.User, error) {
	return f.authFn(ctx, rawToken)
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	return nil
}

type testServerOptions struct {
	donations  *fakeDonationService
	tournament *fakeTournamentService
	auth       *fakeAuthService
}

func newTestServer(t *testing.T, opts testServerOptions) *server.Server {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if opts.donations == nil {
		opts.donations = &fakeDonationService{}
	}
	if opts.tournament == nil {
		opts.tournament = &fakeTournamentService{}
	}
	if opts.auth == nil {
		opts.auth = &fakeAuthService{}
	}

	engine := server.NewEngine(zap.NewNop())
	return server.NewServer(server.ServerParams{
		Gin:           engine,
		Cfg:           config.Config{AppVersion: "test", Environment: "test", DBName: "test"},
		DB:            db,
		Log:           zap.NewNop(),
		DonationSvc:   opts.donations,
		TournamentSvc: opts.tournament,
		AuthSvc:       opts.auth,
		Verifier:      ipn.NewVerifier(testIPNSecret),
	})
}
