package fx

import (
	"database/sql"

	"beemo-api/internal/api"
	"beemo-api/internal/config"
	"beemo-api/internal/database"
	"beemo-api/internal/logger"
	"beemo-api/internal/repository"
	"beemo-api/internal/server"
	"beemo-api/internal/service"

	"go.uber.org/fx"
)

func ProvidePinger(sqlDB *sql.DB) server.Pinger {
	return sqlDB
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvidePinger),
	// repos
	fx.Provide(
		fx.Annotate(repository.NewUserRepository, fx.As(new(service.UserStore))),
		fx.Annotate(repository.NewAccessTokenRepository, fx.As(new(service.TokenStore))),
		fx.Annotate(repository.NewAwardRepository, fx.As(new(service.AwardStore))),
	),
	// api clients
	fx.Provide(
		fx.Annotate(api.NewRiotClient, fx.As(new(service.RiotAPI))),
		fx.Annotate(api.NewDDragonClient, fx.As(new(service.StaticDataAPI))),
		fx.Annotate(api.NewDiscordClient, fx.As(new(service.DiscordAPI))),
	),
	// svc
	fx.Provide(
		service.NewSummonerService,
		fx.Annotate(service.NewCatalogService, fx.As(fx.Self()), fx.As(new(server.CatalogService))),
		fx.Annotate(service.NewLolService, fx.As(new(server.LolService))),
		fx.Annotate(service.NewGameService, fx.As(new(server.GameService))),
		fx.Annotate(service.NewAuthService, fx.As(new(server.AuthService))),
	),
	// server
	fx.Provide(
		server.NewHealthHandler,
		server.NewLolHandler,
		server.NewGameHandler,
		server.NewAuthHandler,
		server.NewRouter,
	),
)
