package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/infra"
)

// LowStockPayload is emitted when a sale drops a product to or below its
// minimum stock level.
type LowStockPayload struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	StockMin int    `json:"stock_min"`
}

// LowStockWorker emails an alert when a product crosses its minimum stock.
type LowStockWorker struct {
	mailer *infra.Mailer
	to     string
}

func NewLowStockWorker(mailer *infra.Mailer, to string) *LowStockWorker {
	return &LowStockWorker{mailer: mailer, to: to}
}

func (w *LowStockWorker) Process(ctx context.Context, payload json.RawMessage) {
	var p LowStockPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Error().Err(err).Msg("lowstock job: invalid payload")
		return
	}
	if w.mailer == nil || w.to == "" {
		log.Warn().Str("sku", p.SKU).Int("stock", p.Stock).Msg("low stock detected, no mailer configured")
		return
	}
	subject := fmt.Sprintf("Estoque baixo: %s", p.Name)
	body := fmt.Sprintf(
		"O produto %s (SKU %s) atingiu o estoque mínimo.\n\nEstoque atual: %d\nEstoque mínimo: %d\n",
		p.Name, p.SKU, p.Stock, p.StockMin,
	)
	if err := w.mailer.Send(w.to, subject, body); err != nil {
		log.Error().Str("sku", p.SKU).Err(err).Msg("lowstock job: email send failed")
		return
	}
	log.Info().Str("sku", p.SKU).Int("stock", p.Stock).Msg("low stock alert sent")
}
