package entity

import "github.com/rateio-app/rateio/constants"

// Discount is a deduction applied to the claimant's gross credit
// (INSS, income tax, and similar).
type Discount struct {
	ID          string  `json:"id"`
	Description string  `json:"descricao"`
	Amount      float64 `json:"valor"`
}

// Debit is an amount the respondent owes to a third party
// (court costs, fees, contributions).
type Debit struct {
	ID          string  `json:"id"`
	Description string  `json:"descricao"`
	Amount      float64 `json:"valor"`
}

// ExtractedRecord is the root of all derived state. It is produced once per
// successful extraction call and replaced wholesale on the next one.
// TotalSocialContribution is only set when the source spreadsheet reports the
// combined insured+employer figure.
type ExtractedRecord struct {
	GrossClaimantCredit     float64    `json:"valorBrutoReclamante"`
	Discounts               []Discount `json:"descontosReclamante"`
	Debits                  []Debit    `json:"reclamadaDebitos"`
	TotalSocialContribution float64    `json:"contribuicaoSocialTotal,omitempty"`
}

// TotalDiscounts sums all claimant discounts.
func (r ExtractedRecord) TotalDiscounts() float64 {
	var sum float64
	for _, d := range r.Discounts {
		sum += d.Amount
	}
	return sum
}

// Item is one allocatable line in the rateio simulation: a flattened debit,
// discount, or synthetic entry with a face value and a user-togglable
// selection flag.
type Item struct {
	ID          string           `json:"id"`
	Description string           `json:"descricao"`
	FaceValue   float64          `json:"valorOriginal"`
	Selected    bool             `json:"selecionado"`
	Origin      constants.Origin `json:"origem"`
}

// Deposit is one judicial deposit feeding the allocation pool.
type Deposit struct {
	ID     string  `json:"id"`
	Amount float64 `json:"valor"`
}
