package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rateio-app/rateio/constants"
	"github.com/rateio-app/rateio/internal/entity"
)

func TestIsLawyerFee(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		desc string
		want bool
	}{
		{"Honorários de Sucumbência devidos para Dr. João", true},
		{"HONORÁRIOS ADVOCATÍCIOS", true},
		{"honorarios contratuais", true},
		{"Honorários Periciais", false},
		{"HONORÁRIOS DO PERITO", false},
		{"Honorários pericial contábil", false},
		{"Custas Processuais", false},
		{"INSS - Cota Empresa", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.IsLawyerFee(tt.desc), "IsLawyerFee(%q)", tt.desc)
	}
}

func TestBeneficiary(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		desc string
		want string
	}{
		{"Honorários devidos para Dr. João", "Dr. João"},
		{"Honorários para Maria Souza (OAB 123)", "Maria Souza"},
		{"Honorários devidos para Dr. Pedro 20%", "Dr. Pedro"},
		{"Honorários de Sucumbência", "Advogado"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Beneficiary(tt.desc), "Beneficiary(%q)", tt.desc)
	}
}

func TestClassifyRelabelsSocialContributionDiscounts(t *testing.T) {
	c := New(DefaultConfig())

	rec := c.Classify(entity.ExtractedRecord{
		GrossClaimantCredit: 10000,
		Discounts: []entity.Discount{
			{Description: "INSS", Amount: 1000},
			{Description: "IRPF S/ RRA", Amount: 200},
		},
	})

	require.Len(t, rec.Discounts, 2)
	assert.Equal(t, constants.LabelInsuredContribution, rec.Discounts[0].Description)
	assert.Equal(t, 1000.0, rec.Discounts[0].Amount)
	assert.Equal(t, "Irpf s/ Rra", rec.Discounts[1].Description)
	assert.NotEmpty(t, rec.Discounts[0].ID)
	assert.NotEqual(t, rec.Discounts[0].ID, rec.Discounts[1].ID)
}

func TestClassifyConsolidatesFeesByBeneficiary(t *testing.T) {
	c := New(DefaultConfig())

	rec := c.Classify(entity.ExtractedRecord{
		Debits: []entity.Debit{
			{Description: "Honorários de Sucumbência devidos para Dr. João", Amount: 2000},
			{Description: "Honorários de Sucumbência devidos para Dr. João", Amount: 1000},
			{Description: "CUSTAS PROCESSUAIS", Amount: 300},
		},
	})

	require.Len(t, rec.Debits, 2)
	assert.Equal(t, "Custas Processuais", rec.Debits[0].Description)
	assert.Equal(t, "Honorários de Sucumbência - Dr. João", rec.Debits[1].Description)
	assert.Equal(t, 3000.0, rec.Debits[1].Amount)
}

func TestClassifyKeepsExpertFeesSeparate(t *testing.T) {
	c := New(DefaultConfig())

	rec := c.Classify(entity.ExtractedRecord{
		Debits: []entity.Debit{
			{Description: "HONORÁRIOS PERICIAIS", Amount: 500},
			{Description: "Honorários devidos para Dra. Ana", Amount: 700},
		},
	})

	require.Len(t, rec.Debits, 2)
	assert.Equal(t, "Honorários Periciais", rec.Debits[0].Description)
	assert.Equal(t, "Honorários de Sucumbência - Dra. Ana", rec.Debits[1].Description)
}

func TestClassifyMintsFreshIdentities(t *testing.T) {
	c := New(DefaultConfig())

	rec := c.Classify(entity.ExtractedRecord{
		Discounts: []entity.Discount{{ID: "raw-1", Description: "INSS", Amount: 10}},
		Debits:    []entity.Debit{{ID: "raw-2", Description: "Custas", Amount: 20}},
	})

	assert.NotEqual(t, "raw-1", rec.Discounts[0].ID)
	assert.NotEqual(t, "raw-2", rec.Debits[0].ID)
}
