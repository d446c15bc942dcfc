// Package projection flattens a canonical settlement record into the list of
// allocatable items the rateio engine distributes over. The projection is a
// pure function of the record plus the fee configuration; it re-runs after
// every relevant state change and must be idempotent.
package projection

import (
	"sort"
	"strings"

	"github.com/rateio-app/rateio/constants"
	"github.com/rateio-app/rateio/internal/entity"
)

// FeeConfig controls the optional contractual-fee item.
type FeeConfig struct {
	Enabled bool    `json:"calcular"`
	Percent float64 `json:"percentual"`
	// DeductibleIDs lists the discounts subtracted from the gross credit
	// before applying the percentage.
	DeductibleIDs []string `json:"descontos_base_ids"`
}

// DefaultFeeConfig mirrors the simulator defaults: disabled, 30%, every
// discount deductible.
func DefaultFeeConfig(discounts []entity.Discount) FeeConfig {
	ids := make([]string, 0, len(discounts))
	for _, d := range discounts {
		ids = append(ids, d.ID)
	}
	return FeeConfig{Percent: 30, DeductibleIDs: ids}
}

// DeductibleBase is the gross credit minus the deductible discounts, floored
// at zero.
func (f FeeConfig) DeductibleBase(rec entity.ExtractedRecord) float64 {
	deductible := make(map[string]struct{}, len(f.DeductibleIDs))
	for _, id := range f.DeductibleIDs {
		deductible[id] = struct{}{}
	}
	var sum float64
	for _, d := range rec.Discounts {
		if _, ok := deductible[d.ID]; ok {
			sum += d.Amount
		}
	}
	base := rec.GrossClaimantCredit - sum
	if base < 0 {
		return 0
	}
	return base
}

// FeeAmount is the contractual fee computed over the deductible base.
func (f FeeConfig) FeeAmount(rec entity.ExtractedRecord) float64 {
	if !f.Enabled {
		return 0
	}
	return f.DeductibleBase(rec) * f.Percent / 100
}

func hasSocialContributionMarker(desc string) bool {
	return constants.HasSocialContributionMarker(desc)
}

// Build projects the record into allocatable items.
//
// Ordering: the principal item always comes first, everything else descends
// by face value. Selection flags and user-edited descriptions survive
// regeneration via prev, matched by item ID; new items default to selected.
func Build(rec entity.ExtractedRecord, fee FeeConfig, prev []entity.Item) []entity.Item {
	debits := make([]entity.Debit, len(rec.Debits))
	copy(debits, rec.Debits)

	var extras []entity.Item
	insured := findInsuredDiscount(rec.Discounts)
	if rec.TotalSocialContribution > 0 && insured != nil {
		// The spreadsheet reported the combined figure: replace the
		// respondent's total-contribution debit with the derived
		// employer share.
		if idx := findSocialContributionDebit(debits); idx >= 0 {
			employer := debits[idx].Amount - insured.Amount
			debits = append(debits[:idx], debits[idx+1:]...)
			if employer > 0 {
				extras = append(extras, entity.Item{
					ID:          constants.EmployerShareItemID,
					Description: constants.LabelEmployerContribution,
					FaceValue:   employer,
					Selected:    true,
					Origin:      constants.OriginRespondent,
				})
			}
		}
	} else {
		// No combined figure: the respondent-side contribution debit is
		// already the employer share, only its label changes.
		for i, d := range debits {
			if hasSocialContributionMarker(d.Description) {
				debits[i].Description = constants.LabelEmployerContribution
			}
		}
	}

	items := make([]entity.Item, 0, len(debits)+len(extras)+len(rec.Discounts)+2)
	for _, d := range debits {
		items = append(items, entity.Item{
			ID:          d.ID,
			Description: d.Description,
			FaceValue:   d.Amount,
			Selected:    true,
			Origin:      constants.OriginRespondent,
		})
	}
	items = append(items, extras...)
	for _, d := range rec.Discounts {
		items = append(items, entity.Item{
			ID:          d.ID,
			Description: d.Description,
			FaceValue:   d.Amount,
			Selected:    true,
			Origin:      constants.OriginClaimant,
		})
	}

	principal := entity.Item{
		ID:          constants.PrincipalItemID,
		Description: constants.LabelNetCredit,
		FaceValue:   rec.GrossClaimantCredit - rec.TotalDiscounts(),
		Selected:    true,
		Origin:      constants.OriginPrincipal,
	}

	if feeAmount := fee.FeeAmount(rec); feeAmount > 0 {
		principal.FaceValue -= feeAmount
		if principal.FaceValue < 0 {
			principal.FaceValue = 0
		}
		items = append(items, entity.Item{
			ID:          constants.ContractualFeeID,
			Description: constants.LabelContractualFee,
			FaceValue:   feeAmount,
			Selected:    true,
			Origin:      constants.OriginRespondent,
		})
	}
	items = append(items, principal)

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ID == constants.PrincipalItemID {
			return true
		}
		if items[j].ID == constants.PrincipalItemID {
			return false
		}
		return items[i].FaceValue > items[j].FaceValue
	})

	carryUserEdits(items, prev)
	return items
}

func findInsuredDiscount(discounts []entity.Discount) *entity.Discount {
	for i, d := range discounts {
		if strings.Contains(strings.ToUpper(d.Description), strings.ToUpper(constants.LabelInsuredContribution)) {
			return &discounts[i]
		}
	}
	return nil
}

func findSocialContributionDebit(debits []entity.Debit) int {
	for i, d := range debits {
		if hasSocialContributionMarker(d.Description) {
			return i
		}
	}
	return -1
}

func carryUserEdits(items []entity.Item, prev []entity.Item) {
	if len(prev) == 0 {
		return
	}
	selected := make(map[string]bool, len(prev))
	descs := make(map[string]string, len(prev))
	for _, p := range prev {
		selected[p.ID] = p.Selected
		descs[p.ID] = p.Description
	}
	for i := range items {
		if sel, ok := selected[items[i].ID]; ok {
			items[i].Selected = sel
		}
		if d, ok := descs[items[i].ID]; ok {
			items[i].Description = d
		}
	}
}
