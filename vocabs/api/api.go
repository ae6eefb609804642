// Package api defines the Vocab capability contract.
// It's a separate package so that variant implementations and the shared
// utilities in `vocabs` can both depend on it without cycles.
package api

// Role identifies a reserved token by its structural function in a
// sequence (sequence boundaries, padding, masking and so on), as opposed
// to a content token. Which roles a vocabulary defines, and the literal
// token each one maps to, is a property of the variant.
type Role int

const (
	RoleUnknown Role = iota
	RoleBeginningOfSequence
	RoleEndOfSequence
	RoleSeparator
	RoleClassification
	RoleMask
	RolePadding
	roleCount
)

var roleNames = [roleCount]string{
	"unknown",
	"beginning_of_sequence",
	"end_of_sequence",
	"separator",
	"classification",
	"mask",
	"padding",
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return "invalid_role"
	}
	return roleNames[r]
}

// Vocab is the bidirectional mapping between textual tokens and the integer
// ids a model consumes. A Vocab is fully built by its variant's constructor
// and immutable afterwards, so it is safe for unsynchronized concurrent
// reads.
//
// The special mappings are always a subset of the full mappings: every
// special entry appears identically in Values/Indices. The unknown sentinel
// is registered as a special token during construction, which is what makes
// both lookups total.
type Vocab interface {
	// TokenToID resolves token through the special mapping first, then the
	// full mapping. Unseen tokens resolve to the id of the unknown
	// sentinel; TokenToID never fails.
	TokenToID(token string) int

	// IDToToken resolves id through the special backward mapping first,
	// then the full backward mapping. Unassigned ids resolve to the
	// unknown sentinel literal; IDToToken never fails.
	IDToToken(id int) string

	// Values returns the forward token-to-id mapping.
	Values() map[string]int

	// Indices returns the backward id-to-token mapping.
	Indices() map[int]string

	// SpecialValues returns the forward mapping restricted to the
	// variant's reserved tokens.
	SpecialValues() map[string]int

	// SpecialIndices returns the backward mapping restricted to the
	// variant's reserved tokens.
	SpecialIndices() map[int]string

	// UnknownValue returns the out-of-vocabulary sentinel literal.
	UnknownValue() string

	// RoleValue returns the literal token the variant assigns to role.
	// ok is false when the variant does not define the role; that is a
	// normal answer, not an error.
	RoleValue(role Role) (token string, ok bool)

	// Size returns the number of tokens in the vocabulary.
	Size() int
}
