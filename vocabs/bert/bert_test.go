package bert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vocably/go-vocab/vocabs"
	"github.com/vocably/go-vocab/vocabs/api"
)

var testVocabLines = []string{
	"[PAD]", "[UNK]", "[CLS]", "[SEP]", "[MASK]", "hello", "world", "##ing",
}

func writeVocabFile(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocab.txt")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromFile(t *testing.T) {
	v, err := FromFile(writeVocabFile(t, testVocabLines))
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}

	if v.Size() != len(testVocabLines) {
		t.Errorf("Size() = %d, want %d", v.Size(), len(testVocabLines))
	}
	// Ids are 0-based line numbers.
	for id, token := range testVocabLines {
		if got := v.TokenToID(token); got != id {
			t.Errorf("TokenToID(%q) = %d, want %d", token, got, id)
		}
		if got := v.IDToToken(id); got != token {
			t.Errorf("IDToToken(%d) = %q, want %q", id, got, token)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	v, err := FromFile(writeVocabFile(t, testVocabLines))
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}

	for token := range v.Values() {
		if got := v.IDToToken(v.TokenToID(token)); got != token {
			t.Errorf("round trip of %q = %q", token, got)
		}
	}
	if len(v.Values()) != len(v.Indices()) {
		t.Errorf("|values| = %d, |indices| = %d", len(v.Values()), len(v.Indices()))
	}
}

func TestUnknownFallback(t *testing.T) {
	v, err := FromFile(writeVocabFile(t, testVocabLines))
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}

	unkID := v.TokenToID(UnknownToken)
	if got := v.TokenToID("this-token-does-not-exist-xyz"); got != unkID {
		t.Errorf("TokenToID(unseen) = %d, want %d", got, unkID)
	}
	if got := v.IDToToken(99999999); got != UnknownToken {
		t.Errorf("IDToToken(99999999) = %q, want %q", got, UnknownToken)
	}
}

func TestRoles(t *testing.T) {
	v, err := FromFile(writeVocabFile(t, testVocabLines))
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}

	tests := []struct {
		role api.Role
		want string
		ok   bool
	}{
		{api.RoleUnknown, "[UNK]", true},
		{api.RoleSeparator, "[SEP]", true},
		{api.RoleClassification, "[CLS]", true},
		{api.RoleMask, "[MASK]", true},
		{api.RolePadding, "[PAD]", true},
		{api.RoleBeginningOfSequence, "", false},
		{api.RoleEndOfSequence, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			got, ok := v.RoleValue(tt.role)
			if ok != tt.ok || got != tt.want {
				t.Errorf("RoleValue(%s) = %q, %v; want %q, %v", tt.role, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMissingSpecialToken(t *testing.T) {
	_, err := FromFile(writeVocabFile(t, []string{"[PAD]", "[UNK]", "hello"}))
	if err == nil {
		t.Fatal("expected error for vocabulary without [SEP]")
	}
	if !errors.Is(err, vocabs.ErrMissingSpecialToken) {
		t.Errorf("error = %v, want ErrMissingSpecialToken", err)
	}
}

func TestMissingFile(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
