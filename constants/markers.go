package constants

import "strings"

// Marker word lists used to classify extracted line items. Matching is
// case-insensitive substring containment; accented and unaccented spellings
// are both listed because the extraction output is not normalized.

// SocialContributionMarkers flag a line item as a social-contribution
// (INSS) entry, on either the discount or the debit side.
var SocialContributionMarkers = []string{
	"CONTRIBUIÇÃO SOCIAL",
	"INSS",
}

// FeeMarkers flag a respondent debit as a lawyer-fee candidate during the
// one-time consolidation pass.
var FeeMarkers = []string{
	"HONORÁRIO",
	"HONORARIO",
}

// ExpertMarkers exclude court-appointed expert fees from the lawyer-fee
// classification.
var ExpertMarkers = []string{
	"PERICIAL",
	"PERICIAIS",
	"PERITO",
}

// FeeShareKeywords is the broader heuristic used only to pre-select which
// items enter the lawyer fee-sharing aggregate. Intentionally wider than
// FeeMarkers: it also catches contractual and generic attorney entries.
var FeeShareKeywords = []string{
	"honorário",
	"honorario",
	"sucumbência",
	"sucumbencia",
	"advocatício",
	"advocaticio",
	"contratual",
	"contratuais",
	"advogado",
}

// Canonical labels for items minted or relabeled by the pipeline.
const (
	LabelInsuredContribution  = "Contribuição Social - Segurado"
	LabelEmployerContribution = "Contribuição Social - Empresa"
	LabelNetCredit            = "Crédito Líquido do Reclamante"
	LabelContractualFee       = "Honorários Contratuais"

	// SuccessFeeFormat is completed with the consolidated beneficiary name.
	SuccessFeeFormat = "Honorários de Sucumbência - %s"

	// DefaultBeneficiary is used when no beneficiary name can be extracted
	// from a lawyer-fee description.
	DefaultBeneficiary = "Advogado"
)

// Reserved item IDs. Synthetic items keep stable IDs so user selection and
// description edits survive regeneration of the item list.
const (
	PrincipalItemID     = "principal"
	ContractualFeeID    = "honorarios_contratuais"
	EmployerShareItemID = "reclamada_cs_empresa"
)

func containsAny(desc string, markers []string) bool {
	u := strings.ToUpper(desc)
	for _, m := range markers {
		if strings.Contains(u, strings.ToUpper(m)) {
			return true
		}
	}
	return false
}

// HasSocialContributionMarker reports whether desc names a social
// contribution.
func HasSocialContributionMarker(desc string) bool {
	return containsAny(desc, SocialContributionMarkers)
}

// HasExpertMarker reports whether desc refers to expert (perito) fees.
func HasExpertMarker(desc string) bool {
	return containsAny(desc, ExpertMarkers)
}

// IsLawyerFee is the narrow predicate used by the consolidation pass: a fee
// marker must be present and no expert marker may be.
func IsLawyerFee(desc string) bool {
	return containsAny(desc, FeeMarkers) && !HasExpertMarker(desc)
}

// IsFeeShareCandidate is the broad predicate used to default the fee-sharing
// selection. Expert fees are never candidates.
func IsFeeShareCandidate(desc string) bool {
	if HasExpertMarker(desc) {
		return false
	}
	return containsAny(desc, FeeShareKeywords)
}
