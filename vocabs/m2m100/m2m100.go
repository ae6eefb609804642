// Package m2m100 implements the vocabulary of M2M100 translation models,
// backed by a plain JSON token-to-id map. On top of the artifact's tokens
// it synthesizes one target-language marker per supported language; the
// markers are appended after all artifact tokens, in the fixed order of
// FairseqLanguageCodes, so their ids are stable and contiguous at the tail
// of the id space.
package m2m100

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/vocably/go-vocab/vocabs"
	"github.com/vocably/go-vocab/vocabs/api"
)

// Reserved token literals. Unlike the language markers, these must already
// be present in the artifact.
const (
	UnknownToken = "<unk>"
	SepToken     = "</s>"
	BOSToken     = "<s>"
	EOSToken     = "</s>"
	PadToken     = "<pad>"
)

// ErrLanguageCode reports a language code whose length the marker scheme
// does not support.
var ErrLanguageCode = errors.New("language codes must be 2 or 3 characters")

// FairseqLanguageCodes is the fixed, ordered list of the 100 languages
// M2M100 translates between. The order determines the ids of the
// synthesized language markers.
var FairseqLanguageCodes = [100]string{
	"af", "am", "ar", "ast", "az", "ba", "be", "bg", "bn", "br", "bs", "ca", "ceb", "cs", "cy",
	"da", "de", "el", "en", "es", "et", "fa", "ff", "fi", "fr", "fy", "ga", "gd", "gl", "gu", "ha",
	"he", "hi", "hr", "ht", "hu", "hy", "id", "ig", "ilo", "is", "it", "ja", "jv", "ka", "kk",
	"km", "kn", "ko", "lb", "lg", "ln", "lo", "lt", "lv", "mg", "mk", "ml", "mn", "mr", "ms", "my",
	"ne", "nl", "no", "ns", "oc", "or", "pa", "pl", "ps", "pt", "ro", "ru", "sd", "si", "sk", "sl",
	"so", "sq", "sr", "ss", "su", "sv", "sw", "ta", "th", "tl", "tn", "tr", "uk", "ur", "uz", "vi",
	"wo", "xh", "yi", "yo", "zh", "zu",
}

// Vocab is the M2M100 vocabulary. Create one with FromFile or FromContent;
// it is immutable afterwards and safe for concurrent reads.
type Vocab struct {
	vocabs.Mappings

	// Synthesized language markers, keyed by their raw bytes. Kept for
	// downstream prefix stripping of input sequences; not used internally.
	languageMarkers map[string]struct{}
}

// Compile time assert that *Vocab implements api.Vocab.
var _ api.Vocab = &Vocab{}

// FromFile reads the JSON vocabulary file at path and builds the
// vocabulary.
func FromFile(path string) (*Vocab, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "m2m100 vocabulary file %s", path)
	}
	v, err := FromContent(content)
	if err != nil {
		return nil, errors.Wrapf(err, "m2m100 vocabulary %s", path)
	}
	return v, nil
}

// FromContent builds the vocabulary from raw JSON content: a single object
// mapping token strings to integer ids.
func FromContent(content []byte) (*Vocab, error) {
	var values map[string]int
	if err := json.Unmarshal(content, &values); err != nil {
		return nil, errors.Wrapf(err, "parse vocabulary")
	}

	markers := make(map[string]struct{}, len(FairseqLanguageCodes))
	for _, code := range FairseqLanguageCodes {
		marker, err := LanguageMarker(code)
		if err != nil {
			return nil, err
		}
		values[marker] = len(values)
		markers[marker] = struct{}{}
	}

	special := make(map[string]int)
	for _, token := range []string{UnknownToken, SepToken, BOSToken, EOSToken, PadToken} {
		if err := vocabs.RegisterSpecial(token, values, special); err != nil {
			return nil, err
		}
	}

	mappings, err := vocabs.NewMappings(values, special, UnknownToken)
	if err != nil {
		return nil, err
	}
	return &Vocab{Mappings: mappings, languageMarkers: markers}, nil
}

// LanguageMarker returns the vocabulary token marking a target language:
// ">>xx.<<" for 2-character codes, ">>xxx<<" for 3-character ones.
func LanguageMarker(code string) (string, error) {
	switch len(code) {
	case 2:
		return ">>" + code + ".<<", nil
	case 3:
		return ">>" + code + "<<", nil
	}
	return "", errors.Wrapf(ErrLanguageCode, "code %q", code)
}

// LanguageMarkers returns the set of synthesized language-marker tokens,
// keyed by their raw bytes, for prefix stripping by segmentation code.
func (v *Vocab) LanguageMarkers() map[string]struct{} {
	return v.languageMarkers
}

// RoleValue returns the literal token for role. M2M100 defines no
// classification or mask token; EOS doubles as the separator.
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
	case api.RolePadding:
		return PadToken, true
	}
	return "", false
}
