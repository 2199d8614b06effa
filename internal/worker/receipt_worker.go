package worker

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/peegflow-code/PeegFlow-Piloto/internal/dto"
	"github.com/peegflow-code/PeegFlow-Piloto/internal/infra"
)

// ReceiptWorker renders a PDF receipt for a finished checkout.
type ReceiptWorker struct {
	pdf *infra.PDFGenerator
}

func NewReceiptWorker(pdf *infra.PDFGenerator) *ReceiptWorker {
	return &ReceiptWorker{pdf: pdf}
}

func (w *ReceiptWorker) Process(ctx context.Context, payload json.RawMessage) {
	var receipt dto.Receipt
	if err := json.Unmarshal(payload, &receipt); err != nil {
		log.Error().Err(err).Msg("receipt job: invalid payload")
		return
	}
	path, err := w.pdf.GenerateReceipt(&receipt)
	if err != nil {
		log.Error().Str("receipt_id", receipt.ReceiptID).Err(err).Msg("receipt job: pdf generation failed")
		return
	}
	log.Info().Str("receipt_id", receipt.ReceiptID).Str("path", path).Msg("receipt pdf generated")
}
