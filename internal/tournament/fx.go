package tournament

import (
	"github.com/goalline/wc26/internal/tournament/repository"
	"github.com/goalline/wc26/internal/tournament/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tournament.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
