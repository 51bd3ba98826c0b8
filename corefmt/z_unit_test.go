package corefmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zintix-labs/scratchlab/errs"
)

func TestBase64URLRoundTrip(t *testing.T) {
	src := []byte{0, 1, 2, 250, 251, 252, 253, 254, 255}
	enc := EncodeBase64URL(src)
	if strings.ContainsAny(enc, "+/=") {
		t.Fatalf("base64url must be url safe and unpadded, got %q", enc)
	}
	got, err := DecodeBase64URL(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("want %v got %v", src, got)
	}
}

func TestDecodeBase64URLRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "***"} {
		if _, err := DecodeBase64URL(s); !errs.IsInvalidArgument(err) {
			t.Fatalf("%q: expected invalid argument, got %v", s, err)
		}
	}
}

func TestWriteReadableYAMLFlowsInnerLists(t *testing.T) {
	v := struct {
		Matrix [][]string `yaml:"matrix"`
		Names  []string   `yaml:"names"`
	}{
		Matrix: [][]string{{"A", "B"}, {"C", "D"}},
		Names:  []string{"x", "z"},
	}
	var b bytes.Buffer
	if err := WriteReadableYAML(&b, &v); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := b.String()
	for _, want := range []string{"- [A, B]", "- [C, D]", "names: [x, z]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
