// Package bert implements the vocabulary of BERT-style models, backed by a
// plain text file with one token per line. The id of every token is its
// 0-based line number.
package bert

import (
	"bufio"
	"os"

	"github.com/pkg/errors"

	"github.com/vocably/go-vocab/vocabs"
	"github.com/vocably/go-vocab/vocabs/api"
)

// Reserved token literals. All of them must be present in the vocabulary
// file.
const (
	UnknownToken = "[UNK]"
	SepToken     = "[SEP]"
	ClsToken     = "[CLS]"
	MaskToken    = "[MASK]"
	PadToken     = "[PAD]"
)

// Vocab is the BERT vocabulary. Create one with FromFile; it is immutable
// afterwards and safe for concurrent reads.
type Vocab struct {
	vocabs.Mappings
}

// Compile time assert that *Vocab implements api.Vocab.
var _ api.Vocab = &Vocab{}

// FromFile reads the line-per-token vocabulary file at path and builds the
// vocabulary.
func FromFile(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "bert vocabulary file %s", path)
	}
	defer f.Close()

	values := make(map[string]int)
	scanner := bufio.NewScanner(f)
	for line := 0; scanner.Scan(); line++ {
		values[scanner.Text()] = line
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "bert vocabulary file %s", path)
	}

	special := make(map[string]int)
	for _, token := range []string{UnknownToken, SepToken, ClsToken, MaskToken, PadToken} {
		if err := vocabs.RegisterSpecial(token, values, special); err != nil {
			return nil, errors.Wrapf(err, "bert vocabulary %s", path)
		}
	}

	mappings, err := vocabs.NewMappings(values, special, UnknownToken)
	if err != nil {
		return nil, errors.Wrapf(err, "bert vocabulary %s", path)
	}
	return &Vocab{Mappings: mappings}, nil
}

// RoleValue returns the literal token for role. BERT defines no sequence
// boundary tokens of its own; sentence structure comes from CLS/SEP.
func (v *Vocab) RoleValue(role api.Role) (string, bool) {
	switch role {
	case api.RoleUnknown:
		return UnknownToken, true
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
