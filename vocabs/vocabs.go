// Package vocabs provides the shared building blocks every vocabulary
// variant is assembled from: bijection inversion, special-token
// registration, and the Mappings storage the variants embed.
//
// The variants themselves live in sub-packages (albert, m2m100, bert), each
// implementing the api.Vocab capability for one on-disk vocabulary format.
package vocabs

import (
	"github.com/pkg/errors"

	"github.com/vocably/go-vocab/vocabs/api"
)

var (
	// ErrMissingSpecialToken reports a reserved token that is absent from
	// the vocabulary it must be registered in.
	ErrMissingSpecialToken = errors.New("special token not found in vocabulary")

	// ErrUnknownNotRegistered reports a vocabulary built without its
	// unknown sentinel, which would leave lookups with nothing to fall
	// back to.
	ErrUnknownNotRegistered = errors.New("unknown token not registered in vocabulary")
)

// Invert returns the id-to-token mapping for values.
//
// If two distinct tokens share an id, the write that happens last (in map
// iteration order) wins and the other token becomes unreachable through the
// result. Callers that need a true bijection must hand in a collision-free
// forward mapping.
func Invert(values map[string]int) map[int]string {
	indices := make(map[int]string, len(values))
	for token, id := range values {
		indices[id] = token
	}
	return indices
}

// RegisterSpecial copies the entry for token from values into special.
// It reports ErrMissingSpecialToken when values holds no such token.
// Whether absence is fatal, or prevented by synthesizing the token into
// values beforehand, is the calling loader's policy, not RegisterSpecial's.
func RegisterSpecial(token string, values, special map[string]int) error {
	id, ok := values[token]
	if !ok {
		return errors.Wrapf(ErrMissingSpecialToken, "token %q", token)
	}
	special[token] = id
	return nil
}

// Mappings holds the four mappings and the unknown sentinel shared by every
// vocabulary variant. It implements all of api.Vocab except RoleValue,
// which stays with the variant; variants embed a Mappings and add only
// their role table and any format-specific extras.
type Mappings struct {
	values         map[string]int
	indices        map[int]string
	specialValues  map[string]int
	specialIndices map[int]string
	unknown        string
}

// NewMappings builds the backward mappings for values and specialValues and
// verifies that unknown is registered as a special token. That check is the
// construction-time invariant backing TokenToID and IDToToken: there is
// always an entry to fall back to, so lookups never fail.
func NewMappings(values, specialValues map[string]int, unknown string) (Mappings, error) {
	if _, ok := specialValues[unknown]; !ok {
		return Mappings{}, errors.Wrapf(ErrUnknownNotRegistered, "token %q", unknown)
	}
	return Mappings{
		values:         values,
		indices:        Invert(values),
		specialValues:  specialValues,
		specialIndices: Invert(specialValues),
		unknown:        unknown,
	}, nil
}

// TokenToID resolves token through the special mapping first, then the full
// mapping, and falls back to the id of the unknown sentinel.
func (m *Mappings) TokenToID(token string) int {
	if id, ok := m.specialValues[token]; ok {
		return id
	}
	if id, ok := m.values[token]; ok {
		return id
	}
	return m.specialValues[m.unknown]
}

// IDToToken resolves id through the special backward mapping first, then
// the full backward mapping, and falls back to the unknown sentinel
// literal.
func (m *Mappings) IDToToken(id int) string {
	if token, ok := m.specialIndices[id]; ok {
		return token
	}
	if token, ok := m.indices[id]; ok {
		return token
	}
	return m.unknown
}

// Values returns the forward token-to-id mapping.
func (m *Mappings) Values() map[string]int { return m.values }

// Indices returns the backward id-to-token mapping.
func (m *Mappings) Indices() map[int]string { return m.indices }

// SpecialValues returns the forward mapping of the reserved tokens.
func (m *Mappings) SpecialValues() map[string]int { return m.specialValues }

// SpecialIndices returns the backward mapping of the reserved tokens.
func (m *Mappings) SpecialIndices() map[int]string { return m.specialIndices }

// UnknownValue returns the out-of-vocabulary sentinel literal.
func (m *Mappings) UnknownValue() string { return m.unknown }

// Size returns the number of tokens in the forward mapping.
func (m *Mappings) Size() int { return len(m.values) }

// RoleID resolves a reserved role to its id through v's special mappings.
// ok is false when the variant does not define the role.
func RoleID(v api.Vocab, role api.Role) (int, bool) {
	token, ok := v.RoleValue(role)
	if !ok {
		return 0, false
	}
	id, ok := v.SpecialValues()[token]
	return id, ok
}
