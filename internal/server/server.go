package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goalline/wc26/internal/auth"
	authdomain "github.com/goalline/wc26/internal/auth/domain"
	"github.com/goalline/wc26/internal/config"
	"github.com/goalline/wc26/internal/donation"
	donationdomain "github.com/goalline/wc26/internal/donation/domain"
	"github.com/goalline/wc26/internal/donation/ipn"
	obslogger "github.com/goalline/wc26/internal/observability/logger"
	obsmetrics "github.com/goalline/wc26/internal/observability/metrics"
	"github.com/goalline/wc26/internal/tournament"
	tournamentdomain "github.com/goalline/wc26/internal/tournament/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	donation.Module,
	tournament.Module,
	auth.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	log           *zap.Logger
	donationSvc   donationdomain.Service
	tournamentSvc tournamentdomain.Service
	authSvc       authdomain.Service
	verifier      *ipn.Verifier
	metrics       *obsmetrics.Metrics
	startedAt     time.Time
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	Log           *zap.Logger
	DonationSvc   donationdomain.Service
	TournamentSvc tournamentdomain.Service
	AuthSvc       authdomain.Service
	Verifier      *ipn.Verifier
	Metrics       *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		log:           p.Log.Named("http.server"),
		donationSvc:   p.DonationSvc,
		tournamentSvc: p.TournamentSvc,
		authSvc:       p.AuthSvc,
		verifier:      p.Verifier,
		metrics:       p.Metrics,
		startedAt:     time.Now(),
	}

	svc.registerHealthRoutes()
	svc.registerDonationRoutes()
	svc.registerTournamentRoutes()
	svc.registerAuthRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerHealthRoutes() {
	s.engine.GET("/health", s.Health)
}

func (s *Server) registerDonationRoutes() {
	donate := s.engine.Group("/donate")

	donate.POST("/create", s.CreateDonation)
	donate.POST("/ipn", s.HandleDonationIPN)
	donate.GET("/status/:orderId", s.GetDonationStatus)
	donate.GET("/recent", s.ListRecentDonations)
	donate.GET("/currencies", s.ListDonationCurrencies)
}

func (s *Server) registerTournamentRoutes() {
	get := s.engine.Group("/get")

	get.GET("/groups", s.ListGroups)
	get.GET("/group", s.GetGroupByName)
	get.GET("/teams", s.ListTeams)
	get.GET("/team", s.GetTeamByName)
	get.GET("/team/:idTeam", s.GetTeamByID)
	get.GET("/games", s.ListGames)
	get.GET("/game/:idGame", s.GetGameByID)
	get.GET("/stadiums", s.ListStadiums)
	get.GET("/stadium/:id", s.GetStadiumByID)
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")

	authGroup.POST("/register", s.Register)
	authGroup.POST("/authenticate", s.Authenticate)
	authGroup.POST("/logout", s.AuthRequired(), s.Logout)
	authGroup.GET("/me", s.AuthRequired(), s.Me)
}
