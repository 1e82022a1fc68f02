package ingest

import (
	"github.com/smallbiznis/txnsight/internal/ingest/service"
	"github.com/smallbiznis/txnsight/internal/ingest/spreadsheet"
	"go.uber.org/fx"
)

var Module = fx.Module("ingest.service",
	fx.Provide(spreadsheet.Provide),
	fx.Provide(service.New),
)
