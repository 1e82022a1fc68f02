package service

import (
	"context"

	"github.com/smallbiznis/txnsight/internal/analytics/domain"
	txndomain "github.com/smallbiznis/txnsight/internal/transaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo txndomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo txndomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("analytics.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListMerchantAnalytics(ctx context.Context, req domain.ListMerchantAnalyticsRequest) ([]domain.MerchantAnalytics, error) {
	filter := txndomain.Filter{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		MerchantName: req.MerchantName,
		MID:          req.MID,
		TID:          req.TID,
	}

	records, err := s.repo.Query(ctx, s.db, filter)
	if err != nil {
		s.log.Error("query transactions",
			zap.String("merchant_name", req.MerchantName),
			zap.String("mid", req.MID),
			zap.String("tid", req.TID),
			zap.Error(err),
		)
		return nil, domain.ErrQueryFailed
	}

	result := Aggregate(records)
	SortAnalytics(result, req.SortBy, req.SortOrder)
	return result, nil
}
