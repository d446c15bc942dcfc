// Package classify turns one raw extracted settlement record into the
// canonical form the simulation works on. It runs exactly once, right after
// a successful extraction; later user edits never re-trigger it.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/rateio-app/rateio/constants"
	"github.com/rateio-app/rateio/internal/entity"
	"github.com/rateio-app/rateio/internal/normalize"
)

// beneficiaryPattern captures the fee beneficiary: the text following
// "para" / "devidos para", up to an opening parenthesis, a percentage
// figure, or end of string.
var beneficiaryPattern = regexp.MustCompile(`(?i)(?:para|devidos para)\s(.*?)(?:\(|\d+%|$)`)

// Config carries the marker-word lists so the classification predicates can
// be exercised independently of the canonical Brazilian defaults.
type Config struct {
	SocialContributionMarkers []string
	FeeMarkers                []string
	ExpertMarkers             []string
	BeneficiaryPattern        *regexp.Regexp
	DefaultBeneficiary        string
}

// DefaultConfig returns the marker sets for Brazilian labor-court
// settlement spreadsheets.
func DefaultConfig() Config {
	return Config{
		SocialContributionMarkers: constants.SocialContributionMarkers,
		FeeMarkers:                constants.FeeMarkers,
		ExpertMarkers:             constants.ExpertMarkers,
		BeneficiaryPattern:        beneficiaryPattern,
		DefaultBeneficiary:        constants.DefaultBeneficiary,
	}
}

type Classifier struct {
	cfg Config
}

func New(cfg Config) *Classifier {
	if cfg.BeneficiaryPattern == nil {
		cfg.BeneficiaryPattern = beneficiaryPattern
	}
	if cfg.DefaultBeneficiary == "" {
		cfg.DefaultBeneficiary = constants.DefaultBeneficiary
	}
	return &Classifier{cfg: cfg}
}

func (c *Classifier) containsAny(desc string, markers []string) bool {
	u := strings.ToUpper(desc)
	for _, m := range markers {
		if strings.Contains(u, strings.ToUpper(m)) {
			return true
		}
	}
	return false
}

// IsSocialContribution reports whether desc names a social-contribution entry.
func (c *Classifier) IsSocialContribution(desc string) bool {
	return c.containsAny(desc, c.cfg.SocialContributionMarkers)
}

// IsLawyerFee reports whether a respondent debit is a lawyer-fee candidate:
// it must carry a fee marker and no expert marker (court-appointed expert
// fees are not lawyer fees).
func (c *Classifier) IsLawyerFee(desc string) bool {
	if c.containsAny(desc, c.cfg.ExpertMarkers) {
		return false
	}
	return c.containsAny(desc, c.cfg.FeeMarkers)
}

// Beneficiary extracts the fee beneficiary name from a debit description,
// falling back to the configured placeholder when no name is found.
func (c *Classifier) Beneficiary(desc string) string {
	m := c.cfg.BeneficiaryPattern.FindStringSubmatch(desc)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return c.cfg.DefaultBeneficiary
	}
	return normalize.TitleCase(strings.TrimSpace(m[1]))
}

// Classify rewrites discounts, consolidates lawyer fees by beneficiary, and
// assigns fresh identities throughout. Identities are newly minted because
// consolidation may merge several source records into one.
func (c *Classifier) Classify(rec entity.ExtractedRecord) entity.ExtractedRecord {
	out := entity.ExtractedRecord{
		GrossClaimantCredit:     rec.GrossClaimantCredit,
		TotalSocialContribution: rec.TotalSocialContribution,
	}

	out.Discounts = make([]entity.Discount, 0, len(rec.Discounts))
	for _, d := range rec.Discounts {
		desc := normalize.TitleCase(d.Description)
		if c.IsSocialContribution(d.Description) {
			desc = constants.LabelInsuredContribution
		}
		out.Discounts = append(out.Discounts, entity.Discount{
			ID:          uuid.NewString(),
			Description: desc,
			Amount:      d.Amount,
		})
	}

	// Partition debits, then consolidate lawyer fees per beneficiary,
	// keeping first-seen beneficiary order.
	var feeOrder []string
	feeTotals := make(map[string]float64)
	out.Debits = make([]entity.Debit, 0, len(rec.Debits))
	for _, d := range rec.Debits {
		if !c.IsLawyerFee(d.Description) {
			out.Debits = append(out.Debits, entity.Debit{
				ID:          uuid.NewString(),
				Description: normalize.TitleCase(d.Description),
				Amount:      d.Amount,
			})
			continue
		}
		name := c.Beneficiary(d.Description)
		if _, seen := feeTotals[name]; !seen {
			feeOrder = append(feeOrder, name)
		}
		feeTotals[name] += d.Amount
	}
	for _, name := range feeOrder {
		out.Debits = append(out.Debits, entity.Debit{
			ID:          uuid.NewString(),
			Description: fmt.Sprintf(constants.SuccessFeeFormat, name),
			Amount:      feeTotals[name],
		})
	}

	return out
}
