package analysis

import "strings"

// Kind is the closed set of analysis procedures the provider understands.
// Unrecognized raw kinds are not an error: ParseKind reports them unknown and
// the dispatcher runs them as KindDescriptive (graceful degradation).
type Kind string

const (
	KindDescriptive Kind = "descriptive"
	KindChiSquare   Kind = "chi-square"
	KindCorrelation Kind = "correlation"
	KindMissingData Kind = "missing-data"
	KindDemographic Kind = "demographic"
)

// Kinds lists every known kind in presentation order.
func Kinds() []Kind {
	return []Kind{KindDescriptive, KindChiSquare, KindCorrelation, KindMissingData, KindDemographic}
}

// ParseKind resolves a raw kind string. ok is false for unknown kinds, in
// which case the returned Kind is the descriptive fallback.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindDescriptive:
		return KindDescriptive, true
	case KindChiSquare:
		return KindChiSquare, true
	case KindCorrelation:
		return KindCorrelation, true
	case KindMissingData:
		return KindMissingData, true
	case KindDemographic:
		return KindDemographic, true
	}
	return KindDescriptive, false
}

func (k Kind) String() string { return string(k) }
