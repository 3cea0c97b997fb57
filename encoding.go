package sie

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding is one candidate byte encoding for an export file.
type Encoding struct {
	Name   string
	decode func([]byte) (string, error)
}

// DefaultEncodings is the resolver order for real-world exports: the DOS
// code page historical Swedish programs write, then Latin-1, then UTF-8.
func DefaultEncodings() []Encoding {
	return []Encoding{
		CharmapEncoding("CP437", charmap.CodePage437),
		CharmapEncoding("ISO-8859-1", charmap.ISO8859_1),
		UTF8Encoding(),
	}
}

// CharmapEncoding wraps an 8-bit code page from x/text as a candidate.
func CharmapEncoding(name string, cm *charmap.Charmap) Encoding {
	return Encoding{
		Name: name,
		decode: func(bs []byte) (string, error) {
			out, _, err := transform.Bytes(cm.NewDecoder(), bs)
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
	}
}

// UTF8Encoding validates the input as UTF-8 and passes it through.
func UTF8Encoding() Encoding {
	return Encoding{
		Name: "UTF-8",
		decode: func(bs []byte) (string, error) {
			if !utf8.Valid(bs) {
				return "", &DecodeError{Tried: []string{"UTF-8"}}
			}
			return string(bs), nil
		},
	}
}

// decodeBytes tries each candidate in order and returns the first full
// decode plus the encoding name, for diagnostics. It fails only when every
// candidate fails.
func decodeBytes(bs []byte, encodings []Encoding) (string, string, error) {
	tried := make([]string, 0, len(encodings))
	for _, enc := range encodings {
		text, err := enc.decode(bs)
		if err == nil {
			return text, enc.Name, nil
		}
		tried = append(tried, enc.Name)
	}
	return "", "", &DecodeError{Tried: tried}
}
