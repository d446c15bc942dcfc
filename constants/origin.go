package constants

// Origin tags an allocatable item with the side of the settlement it came
// from. Stable values (they appear on the wire).
type Origin string

const (
	// OriginPrincipal is the single synthetic item for the claimant's net credit.
	OriginPrincipal Origin = "principal"
	// OriginClaimant marks discounts applied to the claimant's gross credit.
	OriginClaimant Origin = "reclamante"
	// OriginRespondent marks amounts the respondent owes to third parties.
	OriginRespondent Origin = "reclamada"
)
