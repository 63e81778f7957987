package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/goalline/wc26/internal/config"
	"github.com/goalline/wc26/internal/migration"
	"github.com/goalline/wc26/internal/observability"
	"github.com/goalline/wc26/internal/server"
	"github.com/goalline/wc26/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
