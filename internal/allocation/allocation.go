// Package allocation distributes a finite deposit pool across the selected
// items proportionally to their face value (the rateio proper), with manual
// per-item overrides and a lawyer fee-sharing aggregate on top.
package allocation

import (
	"errors"

	"github.com/rateio-app/rateio/constants"
	"github.com/rateio-app/rateio/internal/entity"
)

// ErrUnknownItem is returned when an override targets an item that is not in
// the current list.
var ErrUnknownItem = errors.New("allocation: unknown item")

// Entry is one item's share of the pool. Remaining is always recomputed as
// faceValue - paid, never edited independently.
type Entry struct {
	Paid      float64 `json:"pago"`
	Remaining float64 `json:"restante"`
}

// Result maps item ID to its paid/remaining split.
type Result map[string]Entry

// zeroPaidThreshold hides rounding dust when filtering unpaid items from a
// rendered list.
const zeroPaidThreshold = 0.005

// TotalDeposits sums the deposit pool.
func TotalDeposits(deposits []entity.Deposit) float64 {
	var sum float64
	for _, d := range deposits {
		sum += d.Amount
	}
	return sum
}

// Compute runs the proportional rateio. Every item gets a default entry of
// {0, faceValue}; when both the eligible total and the pool are positive,
// each selected item with a positive face value is paid
// faceValue * min(1, pool/totalEligible).
func Compute(items []entity.Item, totalPool float64) Result {
	res := make(Result, len(items))
	var totalEligible float64
	for _, it := range items {
		res[it.ID] = Entry{Paid: 0, Remaining: it.FaceValue}
		if it.Selected && it.FaceValue > 0 {
			totalEligible += it.FaceValue
		}
	}
	if totalEligible <= 0 || totalPool <= 0 {
		return res
	}

	factor := 1.0
	if totalPool < totalEligible {
		factor = totalPool / totalEligible
	}
	for _, it := range items {
		if !it.Selected || it.FaceValue <= 0 {
			continue
		}
		paid := it.FaceValue * factor
		res[it.ID] = Entry{Paid: paid, Remaining: it.FaceValue - paid}
	}
	return res
}

// Override sets one item's paid value directly, clamped to [0, faceValue].
// It touches no other entry and does not rebalance the factor; the next full
// Compute discards it.
func Override(res Result, items []entity.Item, itemID string, paid float64) error {
	var face float64
	found := false
	for _, it := range items {
		if it.ID == itemID {
			face = it.FaceValue
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownItem
	}
	if paid < 0 {
		paid = 0
	}
	if paid > face {
		paid = face
	}
	res[itemID] = Entry{Paid: paid, Remaining: face - paid}
	return nil
}

// FeeShare is the division of paid-out lawyer fees among the beneficiaries.
type FeeShare struct {
	Total          float64 `json:"total"`
	PerBeneficiary float64 `json:"por_advogado"`
	Beneficiaries  int     `json:"numero_advogados"`
}

// ShareFees sums the paid amounts of the flagged items and divides them by
// the beneficiary count, clamped upward to one.
func ShareFees(res Result, itemIDs []string, beneficiaries int) FeeShare {
	if beneficiaries < 1 {
		beneficiaries = 1
	}
	var total float64
	for _, id := range itemIDs {
		total += res[id].Paid
	}
	return FeeShare{
		Total:          total,
		PerBeneficiary: total / float64(beneficiaries),
		Beneficiaries:  beneficiaries,
	}
}

// DefaultFeeShareIDs pre-selects every item whose description looks like a
// lawyer fee. Re-evaluated whenever the item list changes shape.
func DefaultFeeShareIDs(items []entity.Item) []string {
	var ids []string
	for _, it := range items {
		if constants.IsFeeShareCandidate(it.Description) {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// Totals aggregates the simulation for display.
type Totals struct {
	SelectedDebt   float64 `json:"divida_selecionada"`
	TotalDebt      float64 `json:"divida_total"`
	TotalPaid      float64 `json:"total_pago"`
	TotalRemaining float64 `json:"total_restante"`
	Balance        float64 `json:"saldo_final"`
}

// Summarize computes the footer totals: the remaining balance is the pool
// minus everything paid out.
func Summarize(items []entity.Item, res Result, totalPool float64) Totals {
	var t Totals
	for _, it := range items {
		t.TotalDebt += it.FaceValue
		if it.Selected {
			t.SelectedDebt += it.FaceValue
		}
		t.TotalPaid += res[it.ID].Paid
	}
	t.TotalRemaining = t.TotalDebt - t.TotalPaid
	t.Balance = totalPool - t.TotalPaid
	return t
}

// Visible filters out items with no meaningful payout when the hide-unpaid
// view toggle is on. Purely a display concern; underlying entries and totals
// are untouched.
func Visible(items []entity.Item, res Result, hideZeroPaid bool) []entity.Item {
	if !hideZeroPaid {
		return items
	}
	out := make([]entity.Item, 0, len(items))
	for _, it := range items {
		if res[it.ID].Paid > zeroPaidThreshold {
			out = append(out, it)
		}
	}
	return out
}
