package repository

import (
	"context"

	"github.com/smallbiznis/txnsight/internal/transaction/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Query(ctx context.Context, db *gorm.DB, filter domain.Filter) ([]domain.TransactionRecord, error) {
	var records []domain.TransactionRecord
	stmt := db.WithContext(ctx).Model(&domain.TransactionRecord{})
	if filter.StartDate != nil {
		stmt = stmt.Where("txn_date_time >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		stmt = stmt.Where("txn_date_time <= ?", *filter.EndDate)
	}
	if filter.MerchantName != "" {
		stmt = stmt.Where("LOWER(merchant_name) LIKE LOWER(?)", "%"+filter.MerchantName+"%")
	}
	if filter.MID != "" {
		stmt = stmt.Where("mid = ?", filter.MID)
	}
	if filter.TID != "" {
		stmt = stmt.Where("tid = ?", filter.TID)
	}
	err := stmt.
		Order("txn_date_time asc, id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, batch []domain.TransactionRecord) error {
	if len(batch) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&batch).Error
}
