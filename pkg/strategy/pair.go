package strategy

import "github.com/leapstack-labs/sqlparity/pkg/dialect"

// New returns the named family's native instance for the primary engine.
func New(family string, adj dialect.Adjuster) (Strategy, error) {
	switch family {
	case FamilyDataflowRendering:
		return NewDataflowRendering(adj), nil
	case FamilyConstantFolding:
		return NewConstantFolding(adj), nil
	default:
		return nil, &UnknownFamilyError{Family: family}
	}
}

// NewPair builds both instances of a strategy family used for cross-engine
// comparison: the native instance with the family's own key and the primary
// adjuster, and its twin with the matching other-database key and the
// comparison engine's adjuster. Both are fully formed at construction; no
// field is reassigned afterwards.
func NewPair(family string, primary, other dialect.Adjuster) (native, twin Strategy, err error) {
	switch family {
	case FamilyDataflowRendering:
		return newDataflowRendering(KeyDataflowRendering, primary),
			newDataflowRendering(KeyDataflowRenderingOtherDB, other), nil
	case FamilyConstantFolding:
		return newConstantFolding(KeyConstantFolding, primary),
			newConstantFolding(KeyConstantFoldingOtherDB, other), nil
	default:
		return nil, nil, &UnknownFamilyError{Family: family}
	}
}
