package migration

import (
	txndomain "github.com/smallbiznis/txnsight/internal/transaction/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		return conn.AutoMigrate(&txndomain.TransactionRecord{})
	}),
)
