// Package diagfmt renders token buffers for the CLI: an aligned
// human-readable listing and a JSON form with stable shapes.
package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"panther/internal/source"
	"panther/internal/token"
)

// TokenOutput is the JSON shape of one token. Text is the raw lexeme sliced
// from the source; the typed pointers carry the decoded payload and are only
// present for the matching literal kind.
type TokenOutput struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text,omitempty"`
	Location token.Location `json:"location"`
	Int      *uint64        `json:"int,omitempty"`
	Float    *float64       `json:"float,omitempty"`
	Bool     *bool          `json:"bool,omitempty"`
	String   *string        `json:"string,omitempty"`
}

// FormatTokensPretty writes one line per token: index, kind, lexeme, decoded
// payload for literals, and the location range.
func FormatTokensPretty(w io.Writer, file *source.File) error {
	buf := file.Tokens()
	if buf == nil {
		return fmt.Errorf("diagfmt: %s has no token buffer", file.Path)
	}

	for i := range buf.Len() {
		id := token.ID(i)
		tok := buf.Get(id)

		fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind)
		if tok.Kind != token.EOF {
			fmt.Fprintf(w, " %q", file.SpanText(tok.Loc))
		}
		switch tok.Kind {
		case token.IntLit:
			fmt.Fprintf(w, " = %d", tok.Uint())
		case token.FloatLit:
			fmt.Fprintf(w, " = %g", tok.Float())
		case token.BoolLit:
			fmt.Fprintf(w, " = %t", tok.Bool())
		case token.StringLit:
			fmt.Fprintf(w, " = %q", buf.StringValue(id))
		}
		fmt.Fprintf(w, " at %s\n", tok.Loc)
	}
	return nil
}

// FormatTokensJSON writes the whole buffer as an indented JSON array.
func FormatTokensJSON(w io.Writer, file *source.File) error {
	buf := file.Tokens()
	if buf == nil {
		return fmt.Errorf("diagfmt: %s has no token buffer", file.Path)
	}

	out := make([]TokenOutput, 0, buf.Len())
	for i := range buf.Len() {
		id := token.ID(i)
		tok := buf.Get(id)

		entry := TokenOutput{
			Kind:     tok.Kind.String(),
			Location: tok.Loc,
		}
		if tok.Kind != token.EOF {
			entry.Text = file.SpanText(tok.Loc)
		}
		switch tok.Kind {
		case token.IntLit:
			v := tok.Uint()
			entry.Int = &v
		case token.FloatLit:
			v := tok.Float()
			entry.Float = &v
		case token.BoolLit:
			v := tok.Bool()
			entry.Bool = &v
		case token.StringLit:
			v := buf.StringValue(id)
			entry.String = &v
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
