package service

import (
	"context"
	"math"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/smallbiznis/txnsight/internal/config"
	"github.com/smallbiznis/txnsight/internal/ingest/domain"
	txndomain "github.com/smallbiznis/txnsight/internal/transaction/domain"
	"github.com/smallbiznis/txnsight/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	rowsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "txnsight_upload_rows_saved_total",
		Help: "Rows persisted by upload batches.",
	})
	rowsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "txnsight_upload_rows_failed_total",
		Help: "Rows lost to failed upload batches.",
	})
)

type Params struct {
	fx.In

	Cfg   config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  txndomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      txndomain.Repository
	batchSize int
}

func New(p Params) domain.Service {
	batchSize := p.Cfg.UploadBatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("ingest.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		batchSize: batchSize,
	}
}

func (s *Service) Upload(ctx context.Context, rows []domain.RawRow, onProgress domain.ProgressFunc) (domain.Summary, error) {
	total := len(rows)
	log := s.log.With(
		zap.String("upload_id", uuid.NewString()),
		zap.Int("total", total),
		zap.Int("batch_size", s.batchSize),
	)

	records := make([]txndomain.TransactionRecord, 0, total)
	for _, row := range rows {
		records = append(records, s.normalizeRow(row))
	}

	var processed, saved, failed int
	var batches, failedBatches int
	for start := 0; start < len(records); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			log.Warn("upload cancelled", zap.Int("processed", processed), zap.Error(err))
			return domain.Summary{TotalRecords: total, SavedRecords: saved, Errors: failed}, err
		}

		end := min(start+s.batchSize, len(records))
		batch := records[start:end]
		batches++

		// A failed batch is counted and skipped; siblings keep going.
		if err := s.repo.InsertBatch(ctx, s.db, batch); err != nil {
			failed += len(batch)
			failedBatches++
			rowsFailed.Add(float64(len(batch)))
			log.Warn("insert batch",
				zap.Int("offset", start),
				zap.Int("size", len(batch)),
				zap.Bool("duplicate_key", db.IsDuplicateKeyErr(err)),
				zap.Error(err),
			)
		} else {
			saved += len(batch)
			rowsSaved.Add(float64(len(batch)))
		}
		processed += len(batch)

		if onProgress != nil {
			onProgress(domain.Progress{
				Processed:  processed,
				Saved:      saved,
				Errors:     failed,
				Total:      total,
				Percentage: int(math.Round(float64(processed) / float64(total) * 100)),
			})
		}
	}

	summary := domain.Summary{TotalRecords: total, SavedRecords: saved, Errors: failed}
	if batches > 0 && failedBatches == batches {
		log.Error("upload failed", zap.Int("batches", batches))
		return summary, domain.ErrAllBatchesFail
	}

	log.Info("upload completed", zap.Int("saved", saved), zap.Int("errors", failed))
	return summary, nil
}
