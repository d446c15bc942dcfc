package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rateio-app/rateio/constants"
	"github.com/rateio-app/rateio/internal/entity"
)

func sampleRecord() entity.ExtractedRecord {
	return entity.ExtractedRecord{
		GrossClaimantCredit: 10000,
		Discounts: []entity.Discount{
			{ID: "d1", Description: constants.LabelInsuredContribution, Amount: 1000},
			{ID: "d2", Description: "Irpf", Amount: 500},
		},
		Debits: []entity.Debit{
			{ID: "b1", Description: "Custas Processuais", Amount: 300},
			{ID: "b2", Description: "INSS Cota Empresa", Amount: 1500},
		},
	}
}

func itemByID(t *testing.T, items []entity.Item, id string) entity.Item {
	t.Helper()
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("item %q not found", id)
	return entity.Item{}
}

func TestBuildDerivesEmployerShare(t *testing.T) {
	rec := sampleRecord()
	rec.TotalSocialContribution = 2500

	items := Build(rec, FeeConfig{}, nil)

	// The 1.500 contribution debit is replaced by the derived employer
	// share: 1.500 - 1.000 = 500.
	employer := itemByID(t, items, constants.EmployerShareItemID)
	assert.Equal(t, 500.0, employer.FaceValue)
	assert.Equal(t, constants.OriginRespondent, employer.Origin)
	for _, it := range items {
		assert.NotEqual(t, "b2", it.ID, "original contribution debit must be removed")
	}
}

func TestBuildSkipsNonPositiveEmployerShare(t *testing.T) {
	rec := sampleRecord()
	rec.TotalSocialContribution = 2500
	rec.Debits[1].Amount = 900 // below the insured share of 1000

	items := Build(rec, FeeConfig{}, nil)

	for _, it := range items {
		assert.NotEqual(t, constants.EmployerShareItemID, it.ID)
		assert.NotEqual(t, "b2", it.ID)
	}
}

func TestBuildRelabelsContributionDebitInPlace(t *testing.T) {
	rec := sampleRecord() // no TotalSocialContribution

	items := Build(rec, FeeConfig{}, nil)

	relabeled := itemByID(t, items, "b2")
	assert.Equal(t, constants.LabelEmployerContribution, relabeled.Description)
	assert.Equal(t, 1500.0, relabeled.FaceValue)
}

func TestBuildPrincipalAndSorting(t *testing.T) {
	items := Build(sampleRecord(), FeeConfig{}, nil)

	require.NotEmpty(t, items)
	principal := items[0]
	assert.Equal(t, constants.PrincipalItemID, principal.ID)
	assert.Equal(t, constants.LabelNetCredit, principal.Description)
	assert.Equal(t, 8500.0, principal.FaceValue) // 10.000 - 1.500 discounts

	for i := 2; i < len(items); i++ {
		assert.LessOrEqual(t, items[i].FaceValue, items[i-1].FaceValue)
	}
}

func TestBuildContractualFee(t *testing.T) {
	rec := sampleRecord()
	fee := FeeConfig{Enabled: true, Percent: 30, DeductibleIDs: []string{"d1", "d2"}}

	items := Build(rec, fee, nil)

	// base = 10.000 - 1.500 = 8.500, fee = 2.550
	feeItem := itemByID(t, items, constants.ContractualFeeID)
	assert.InDelta(t, 2550.0, feeItem.FaceValue, 1e-9)
	assert.Equal(t, constants.OriginRespondent, feeItem.Origin)

	principal := itemByID(t, items, constants.PrincipalItemID)
	assert.InDelta(t, 8500.0-2550.0, principal.FaceValue, 1e-9)
}

func TestBuildFeeFloorsPrincipalAtZero(t *testing.T) {
	rec := entity.ExtractedRecord{GrossClaimantCredit: 100}
	fee := FeeConfig{Enabled: true, Percent: 200}

	items := Build(rec, fee, nil)

	principal := itemByID(t, items, constants.PrincipalItemID)
	assert.Equal(t, 0.0, principal.FaceValue)
	feeItem := itemByID(t, items, constants.ContractualFeeID)
	assert.InDelta(t, 200.0, feeItem.FaceValue, 1e-9)
}

func TestBuildPreservesUserEdits(t *testing.T) {
	rec := sampleRecord()
	first := Build(rec, FeeConfig{}, nil)

	edited := make([]entity.Item, len(first))
	copy(edited, first)
	for i := range edited {
		if edited[i].ID == "b1" {
			edited[i].Selected = false
			edited[i].Description = "Custas (ajustado)"
		}
	}

	second := Build(rec, FeeConfig{}, edited)

	b1 := itemByID(t, second, "b1")
	assert.False(t, b1.Selected)
	assert.Equal(t, "Custas (ajustado)", b1.Description)
}

func TestBuildIsIdempotent(t *testing.T) {
	rec := sampleRecord()
	rec.TotalSocialContribution = 2500
	fee := FeeConfig{Enabled: true, Percent: 30, DeductibleIDs: []string{"d1"}}

	first := Build(rec, fee, nil)
	second := Build(rec, fee, first)

	assert.Equal(t, first, second)
}

func TestDefaultFeeConfig(t *testing.T) {
	cfg := DefaultFeeConfig(sampleRecord().Discounts)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 30.0, cfg.Percent)
	assert.Equal(t, []string{"d1", "d2"}, cfg.DeductibleIDs)
}
