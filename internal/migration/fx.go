package migration

import (
	"context"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/goalline/wc26/internal/auth/domain"
	"github.com/goalline/wc26/internal/config"
	donationdomain "github.com/goalline/wc26/internal/donation/domain"
	"github.com/goalline/wc26/internal/seed"
	tournamentdomain "github.com/goalline/wc26/internal/tournament/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger, genID *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// The versioned SQL targets postgres; other dialects are for
			// local development and lean on gorm's schema sync.
			if err := conn.AutoMigrate(
				&donationdomain.Donation{},
				&donationdomain.IPNEvent{},
				&tournamentdomain.Team{},
				&tournamentdomain.Group{},
				&tournamentdomain.Stadium{},
				&tournamentdomain.Game{},
				&authdomain.User{},
				&authdomain.Session{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDir != "" {
			loader := seed.NewLoader(conn, log, genID)
			if err := loader.Load(context.Background(), cfg.SeedDir); err != nil {
				return err
			}
		}
		return nil
	}),
)
