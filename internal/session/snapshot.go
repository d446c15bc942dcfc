package session

import (
	"time"

	"github.com/rateio-app/rateio/internal/allocation"
	"github.com/rateio-app/rateio/internal/entity"
	"github.com/rateio-app/rateio/internal/projection"
)

// Snapshot is a consistent, copy-safe view of a session for rendering and
// export.
type Snapshot struct {
	ID            string                   `json:"id"`
	Record        *entity.ExtractedRecord  `json:"registro,omitempty"`
	Deposits      []entity.Deposit         `json:"depositos"`
	TotalDeposits float64                  `json:"total_depositos"`
	FeeConfig     projection.FeeConfig     `json:"honorarios_contratuais"`
	Items         []entity.Item            `json:"itens"`
	VisibleItems  []entity.Item            `json:"itens_visiveis"`
	Result        allocation.Result        `json:"resultado"`
	Totals        allocation.Totals        `json:"totais"`
	FeeShareIDs   []string                 `json:"honorarios_selecionados"`
	FeeShare      allocation.FeeShare      `json:"divisao_honorarios"`
	HideZeroPaid  bool                     `json:"ocultar_nao_pagos"`
	UpdatedAt     time.Time                `json:"atualizado_em"`
}

// Snapshot captures the current state under the session lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalDeposits := allocation.TotalDeposits(s.deposits)

	snap := Snapshot{
		ID:            s.id.String(),
		Deposits:      append([]entity.Deposit(nil), s.deposits...),
		TotalDeposits: totalDeposits,
		FeeConfig:     s.fee,
		Items:         append([]entity.Item(nil), s.items...),
		VisibleItems:  allocation.Visible(s.items, s.result, s.hideZero),
		Result:        make(allocation.Result, len(s.result)),
		Totals:        allocation.Summarize(s.items, s.result, totalDeposits),
		FeeShareIDs:   append([]string(nil), s.feeShare...),
		FeeShare:      allocation.ShareFees(s.result, s.feeShare, s.lawyers),
		HideZeroPaid:  s.hideZero,
		UpdatedAt:     s.updatedAt,
	}
	for id, e := range s.result {
		snap.Result[id] = e
	}
	if s.record != nil {
		rec := *s.record
		rec.Discounts = append([]entity.Discount(nil), rec.Discounts...)
		rec.Debits = append([]entity.Debit(nil), rec.Debits...)
		snap.Record = &rec
	}
	return snap
}
