package fuzztests

import (
	"testing"

	"panther/internal/diag"
	"panther/internal/lexer"
	"panther/internal/source"
	"panther/internal/testkit"
	"panther/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzTokenizer(f *testing.F) {
	seeds := []string{
		"",
		"x := 42\n",
		"greeting := \"Hello, Panther!\"\n",
		"pi := 3.14159\nready := true\nhalf := .5\nbig := 1.0e+10\n",
		"func main() { if ok { return } }\n",
		"mask := 0xFF + 0b1010 - 0o755\nsep := 1_000_000\n",
		"// line comment\n/* nested /* block */ comment */\nvalue := 1\n",
		"s := \"escape \\\"quotes\\\" and \\n breaks\"\n",
		"a <= b && c != d || e -> f\n",
		"crlf := 1\r\nbare := 2\rdone := true\n",
		"broken := \"unterminated\n",
		"@\n",
		"\xff\xfe not utf-8",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		input = append([]byte(nil), input...)

		store := source.NewStore()
		id := store.AddVirtual("fuzz.pthr", input)
		file := store.Get(id)

		bag := diag.NewBag(8)
		tz := lexer.New(file, lexer.Options{Reporter: &lexer.BagReporter{Bag: bag}})
		buf, err := tz.Tokenize()
		if err != nil {
			// A lexical fault must come with its diagnostic.
			if bag.Len() == 0 {
				t.Fatalf("fault without a diagnostic on %q", input)
			}
			return
		}
		if bag.Len() != 0 {
			t.Fatalf("clean tokenize reported %d diagnostic(s) on %q", bag.Len(), input)
		}
		if err := testkit.CheckTokenInvariants(file, buf); err != nil {
			t.Fatalf("invariant violation on %q: %v", input, err)
		}

		// A buffer survives its own snapshot round trip.
		restored := token.FromSnapshot(buf.Snapshot())
		if restored == nil {
			t.Fatalf("snapshot of a valid buffer did not restore on %q", input)
		}
		if restored.Len() != buf.Len() {
			t.Fatalf("snapshot round trip changed length: %d != %d", restored.Len(), buf.Len())
		}
	})
}
