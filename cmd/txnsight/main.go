package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/txnsight/internal/analytics"
	"github.com/smallbiznis/txnsight/internal/config"
	"github.com/smallbiznis/txnsight/internal/ingest"
	"github.com/smallbiznis/txnsight/internal/logger"
	"github.com/smallbiznis/txnsight/internal/migration"
	"github.com/smallbiznis/txnsight/internal/server"
	"github.com/smallbiznis/txnsight/internal/transaction"
	"github.com/smallbiznis/txnsight/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional Domains
		transaction.Module,
		analytics.Module,
		ingest.Module,

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
