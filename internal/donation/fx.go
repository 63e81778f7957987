package donation

import (
	"github.com/goalline/wc26/internal/config"
	"github.com/goalline/wc26/internal/donation/ipn"
	"github.com/goalline/wc26/internal/donation/nowpayments"
	"github.com/goalline/wc26/internal/donation/repository"
	"github.com/goalline/wc26/internal/donation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("donation.service",
	fx.Provide(repository.Provide),
	fx.Provide(provideVerifier),
	fx.Provide(provideGateway),
	fx.Provide(service.New),
)

func provideVerifier(cfg config.Config) *ipn.Verifier {
	return ipn.NewVerifier(cfg.NowPaymentsIPNSecret)
}

func provideGateway(cfg config.Config) service.Gateway {
	return nowpayments.NewClient(cfg.NowPaymentsAPIURL, cfg.NowPaymentsAPIKey)
}
