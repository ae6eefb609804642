// Package albert implements the vocabulary of ALBERT-style models, backed
// by a SentencePiece model file. The id of every token is the position of
// its piece record in the model's piece list.
package albert

import (
	"github.com/pkg/errors"

	"github.com/vocably/go-vocab/models/spm"
	"github.com/vocably/go-vocab/vocabs"
	"github.com/vocably/go-vocab/vocabs/api"
)

// Reserved token literals. All of them must be present in the model file;
// a model missing any of them cannot drive the tokenizer and fails to load.
const (
	UnknownToken = "<unk>"
	BOSToken     = "[CLS]"
	EOSToken     = "[SEP]"
	SepToken     = "[SEP]"
	ClsToken     = "[CLS]"
	MaskToken    = "[MASK]"
	PadToken     = "<pad>"
)

// Vocab is the ALBERT vocabulary. Create one with FromFile; it is
// immutable afterwards and safe for concurrent reads.
type Vocab struct {
	vocabs.Mappings
}

// Compile time assert that *Vocab implements api.Vocab.
var _ api.Vocab = &Vocab{}

// FromFile reads and parses the SentencePiece model file at path and
// builds the vocabulary from its piece list.
func FromFile(path string) (*Vocab, error) {
	model, err := spm.Open(path)
	if err != nil {
		return nil, err
	}

	values := make(map[string]int, len(model.Pieces))
	for id, piece := range model.Pieces {
		values[piece.Text] = id
	}

	special := make(map[string]int)
	for _, token := range []string{
		UnknownToken, BOSToken, EOSToken, SepToken, ClsToken, MaskToken, PadToken,
	} {
		if err := vocabs.RegisterSpecial(token, values, special); err != nil {
			return nil, errors.Wrapf(err, "albert vocabulary %s", path)
		}
	}

	mappings, err := vocabs.NewMappings(values, special, UnknownToken)
	if err != nil {
		return nil, errors.Wrapf(err, "albert vocabulary %s", path)
	}
	return &Vocab{Mappings: mappings}, nil
}

// RoleValue returns the literal token for role. ALBERT defines all roles;
// BOS doubles as the classification token and EOS as the separator.
func (v *Vocab) RoleValue(role api.Role) (string, bool) {
	switch role {
	case api.RoleUnknown:
		return UnknownToken, true
	case api.RoleBeginningOfSequence:
		return BOSToken, true
	case api.RoleEndOfSequence:
		return EOSToken, true
	case api.RoleSeparator:
		return SepToken, true
	case api.RoleClassification:
		return ClsToken, true
	case api.RoleMask:
		return MaskToken, true
	case api.RolePadding:
		return PadToken, true
	}
	return "", false
}
