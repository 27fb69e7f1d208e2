package charset

import (
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
)

// guesses is tried in order when no declared charset works. CP932 is covered
// by the Shift_JIS decoder.
var guesses = []encoding.Encoding{
	japanese.ShiftJIS,
	japanese.EUCJP,
	japanese.ISO2022JP,
}

// FromContentType extracts the charset parameter of a Content-Type header.
// Returns "" when the header carries none.
func FromContentType(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// Decode turns raw response bytes into text. A declared charset wins when it
// decodes cleanly; otherwise UTF-8 and the guess list are tried in order, and
// as a last resort the bytes are decoded as UTF-8 with invalid sequences
// dropped.
func Decode(raw []byte, declared string) string {
	if declared != "" {
		if enc, err := htmlindex.Get(declared); err == nil {
			if s, ok := tryDecode(enc, raw); ok {
				return s
			}
		}
	}

	if utf8.Valid(raw) {
		return string(raw)
	}
	for _, enc := range guesses {
		if s, ok := tryDecode(enc, raw); ok {
			return s
		}
	}

	return strings.ToValidUTF8(string(raw), "")
}

// tryDecode runs the decoder and rejects output containing the replacement
// rune, which the x/text decoders substitute for undecodable bytes.
func tryDecode(enc encoding.Encoding, raw []byte) (string, bool) {
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(decoded) || strings.ContainsRune(string(decoded), utf8.RuneError) {
		return "", false
	}
	return string(decoded), true
}
