package auth

import (
	"github.com/goalline/wc26/internal/auth/repository"
	"github.com/goalline/wc26/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
