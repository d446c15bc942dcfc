package llm

import (
	"context"

	"github.com/rateio-app/rateio/internal/entity"
)

// SettlementExtractor is the interface the rest of the system depends on for
// turning a spreadsheet image into structured settlement figures. The second
// return value is the raw JSON the model produced, kept for logging.
type SettlementExtractor interface {
	ExtractSettlement(ctx context.Context, image []byte, mimeType string) (entity.ExtractedRecord, []byte, error)
}
