package usecase

import (
	"context"
	"fmt"
	"time"

	"BasketNa/internal/domain/models"
	domrepo "BasketNa/internal/domain/repository"
	"BasketNa/internal/service/synth"
	"BasketNa/pkg/logger"
	"BasketNa/pkg/queue"
	"BasketNa/pkg/util"
)

// PriceRefreshType is the queue message type for price backfills.
const PriceRefreshType = "price_refresh"

// PriceRefreshPayload identifies the product to backfill.
type PriceRefreshPayload struct {
	ProductID string `json:"product_id"`
}

// PriceRefreshJob regenerates the synthetic daily series for a product
// across all retailers and writes it to the price store. Tracking a
// product enqueues one of these so history exists before the first
// forecast request.
type PriceRefreshJob struct {
	logger      *logger.Logger
	catalog     domrepo.Catalog
	gen         *synth.Generator
	store       domrepo.PriceStore
	historyDays int
}

func NewPriceRefreshJob(lgr *logger.Logger, catalog domrepo.Catalog, gen *synth.Generator, store domrepo.PriceStore, historyDays int) *PriceRefreshJob {
	if historyDays <= 0 {
		historyDays = domrepo.MaxHorizonDays
	}
	return &PriceRefreshJob{
		logger:      lgr,
		catalog:     catalog,
		gen:         gen,
		store:       store,
		historyDays: historyDays,
	}
}

func (j *PriceRefreshJob) Name() string { return "price_refresh_worker" }

func (j *PriceRefreshJob) Type() string { return PriceRefreshType }

func (j *PriceRefreshJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[PriceRefreshPayload](payload)
	if err != nil {
		return fmt.Errorf("parse refresh payload: %w", err)
	}
	product, ok := j.catalog.Get(p.ProductID)
	if !ok {
		return fmt.Errorf("refresh %s: %w", p.ProductID, ErrProductNotFound)
	}

	today := util.Day(time.Now())
	var ticks []*models.PriceTick
	for _, retailer := range models.KnownRetailers() {
		for _, pt := range j.gen.Series(product, retailer, today, j.historyDays) {
			ticks = append(ticks, &models.PriceTick{
				ProductID: product.ID,
				Retailer:  retailer,
				Price:     pt.Price,
				Timestamp: pt.Day.Unix(),
			})
		}
	}
	if err := j.store.StoreBatch(ctx, ticks); err != nil {
		return fmt.Errorf("store refresh batch: %w", err)
	}
	j.logger.Info("price series refreshed",
		logger.String("product_id", product.ID),
		logger.Int("days", j.historyDays),
		logger.Int("ticks", len(ticks)))
	return nil
}

var _ queue.Job = (*PriceRefreshJob)(nil)
