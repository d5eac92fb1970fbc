package lzstring

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

// Outputs of LZString.compressToEncodedURIComponent from the JavaScript
// library.
var jsVectors = []struct {
	input string
	want  string
}{
	{input: "", want: "Q"},
	{input: "a", want: "IZA"},
	{input: "H", want: "BJA"},
	{input: "HelloHello", want: "BIUwNmD2oZQ"},
	{input: "ababcabcdabcde", want: "IYI1GMIE2hTI"},
	{input: "Hello, world", want: "BIUwNmD2A0AEDukBOYAmQ"},
	{input: "\u009c", want: "DlA"},
	{input: "あいうえお", want: "kIMhEGRiDIEgyFIMQ"},
	{input: "Zażółć gęślą jaźń, 100 zł", want: "FoQ0PoAM+EKAjggABAc0JiAhtQADaFBAOArEgvQEBFAAGjgEYAGcuALyiA"},
	{input: "🍎", want: "jwbjl9o"},
	{input: "🍎🍇", want: "jwbjl96cX2g"},
	{input: "aあ🍎bい🍇c", want: "IaIQZDwbhy+wRoIgxo4vsGMg"},
	{input: "Faktura 🧾 nr 7 💶", want: "GIQw1gLgrgTiAEg+DcH+78B2N4HZ6F4NwbTtA"},
	{input: "👨‍👨‍👦", want: "rwbgsdywBKGGY7Q"},
	{
		input: `{"a":"en","c":"EUR","k":{"A":"Acme Corp"},"m":[{"A":"Consulting","N":10,"R":150,"T":23,"V":1500,"X":345,"Z":1845}],"n":1845}`,
		want:  "N4IghiBcIKYHYgDQgMZRAUQKoCUkgGspQBBdElAWxgAIBhAewCcAHEAX2UqgG1T1GcAM4BXADYAXAJZwA5vgByUAIwAGZHkjKArOpAAVKACYAzMgBqK3XoAaUEwBZtyAFoqAHE-YBdZAi2e2uxAA",
	},
}

func TestCompressMatchesJavaScript(t *testing.T) {
	for _, tt := range jsVectors {
		got, err := CompressToEncodedURIComponent(tt.input)
		if err != nil {
			t.Fatalf("CompressToEncodedURIComponent(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("CompressToEncodedURIComponent(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDecompressJavaScriptOutput(t *testing.T) {
	for _, tt := range jsVectors {
		got, err := DecompressFromEncodedURIComponent(tt.want)
		if err != nil {
			t.Fatalf("DecompressFromEncodedURIComponent(%q): %v", tt.want, err)
		}
		if got != tt.input {
			t.Errorf("DecompressFromEncodedURIComponent(%q) = %q, want %q", tt.want, got, tt.input)
		}
	}
}

func TestCompressRejectsInvalidUTF8(t *testing.T) {
	if _, err := CompressToEncodedURIComponent("bad \xff byte"); err == nil {
		t.Error("expected an error for invalid UTF-8")
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`{"a":"en","b":"YYYY-MM-DD","c":"EUR"}`,
		strings.Repeat("abcabcabc", 500),
		"€£¥₹",
		"\x00\x01\x02 control characters",
	}

	for _, input := range inputs {
		encoded, err := CompressToEncodedURIComponent(input)
		if err != nil {
			t.Fatalf("compress %q: %v", input, err)
		}
		for i := 0; i < len(encoded); i++ {
			if strings.IndexByte(uriAlphabet, encoded[i]) < 0 {
				t.Fatalf("encoded %q contains %q outside the URI alphabet", input, encoded[i])
			}
		}

		decoded, err := DecompressFromEncodedURIComponent(encoded)
		if err != nil {
			t.Fatalf("decompress %q: %v", input, err)
		}
		if decoded != input {
			t.Errorf("round trip mismatch: got %q, want %q", decoded, input)
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []rune(`abc{}[]":,0123456789 ążź€🧾`)

	for i := 0; i < 300; i++ {
		n := rng.Intn(400)
		runes := make([]rune, n)
		for j := range runes {
			runes[j] = alphabet[rng.Intn(len(alphabet))]
		}
		input := string(runes)

		encoded, err := CompressToEncodedURIComponent(input)
		if err != nil {
			t.Fatalf("case %d: compress: %v", i, err)
		}
		decoded, err := DecompressFromEncodedURIComponent(encoded)
		if err != nil {
			t.Fatalf("case %d: decompress: %v", i, err)
		}
		if decoded != input {
			t.Fatalf("case %d: round trip mismatch", i)
		}

		// Query decoding may turn '+' into ' '.
		spaced := strings.ReplaceAll(encoded, "+", " ")
		decoded, err = DecompressFromEncodedURIComponent(spaced)
		if err != nil || decoded != input {
			t.Fatalf("case %d: space-for-plus input did not decode", i)
		}
	}
}

func TestDecompressInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "percent signs", input: "%%%not-valid%%%"},
		{name: "punctuation", input: "!!!"},
		{name: "one bad character", input: "BIUwNmD2oZ*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecompressFromEncodedURIComponent(tt.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestDecompressTruncatedDoesNotPanic(t *testing.T) {
	input := strings.Repeat(`{"name":"Consulting","amount":10}`, 40)
	encoded, err := CompressToEncodedURIComponent(input)
	if err != nil {
		t.Fatal(err)
	}

	for cut := 1; cut <= len(encoded)/2; cut += 7 {
		decoded, err := DecompressFromEncodedURIComponent(encoded[:cut])
		if err == nil && decoded == input {
			t.Fatalf("truncated input of length %d decoded to the full payload", cut)
		}
	}
}

// bitStream writes lz-string bits by hand, for streams no compressor
// would produce.
type bitStream struct {
	out      strings.Builder
	val      int
	position int
}

func (b *bitStream) write(value, n int) {
	for i := 0; i < n; i++ {
		b.val = (b.val << 1) | (value & 1)
		value >>= 1
		if b.position == bitsPerChar-1 {
			b.position = 0
			b.out.WriteByte(uriAlphabet[b.val])
			b.val = 0
		} else {
			b.position++
		}
	}
}

func (b *bitStream) finish() string {
	for {
		b.val <<= 1
		if b.position == bitsPerChar-1 {
			b.out.WriteByte(uriAlphabet[b.val])
			return b.out.String()
		}
		b.position++
	}
}

// growingPayload starts with "a" and then references the next, not yet
// defined, dictionary entry codes times. Every step emits one unit more
// than the last, so the output grows quadratically in the input.
func growingPayload(codes int) string {
	var b bitStream
	b.write(0, 2)
	b.write('a', 8)

	dictSize, numBits, enlargeIn := 4, 3, 4
	for i := 0; i < codes; i++ {
		b.write(dictSize, numBits)
		dictSize++
		enlargeIn--
		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}
	b.write(2, numBits)
	return b.finish()
}

func TestDecompressGrowingPayload(t *testing.T) {
	small, err := DecompressFromEncodedURIComponent(growingPayload(10))
	if err != nil {
		t.Fatalf("small payload: %v", err)
	}
	if want := strings.Repeat("a", 66); small != want {
		t.Errorf("small payload = %q, want %q", small, want)
	}

	// About 9.5k characters that would expand to 12.5M code units.
	huge := growingPayload(5000)
	if _, err := DecompressFromEncodedURIComponent(huge); !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}
