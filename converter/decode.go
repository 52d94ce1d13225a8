package converter

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// Characters produced when Latin-1 extended bytes are re-read as UTF-8.
const mojibakeMarkers = "ÃÂ"

// Short names accepted on the command line that the WHATWG index does not know.
var encodingAliases = map[string]string{
	"win1252": EncodingWindows1252,
	"cp1252":  EncodingWindows1252,
	"utf8":    EncodingUTF8,
}

// Decode turns the raw export into text. A known preferred encoding is used
// as-is; otherwise the bytes are read as UTF-8 and re-read as Windows-1252
// when the result looks like mojibake. The returned name is the encoding that
// was finally applied.
func Decode(buf []byte, preferred string) (string, string, []Diagnostic) {
	var diags []Diagnostic
	if name := strings.TrimSpace(preferred); name != "" {
		enc, canonical, ok := lookupEncoding(name)
		if ok {
			if text, err := decodeWith(enc, buf); err == nil {
				return text, canonical, nil
			}
			diags = append(diags, Diagnostic{Reason: ReasonDecodeFailed, Text: name})
		} else {
			diags = append(diags, Diagnostic{Reason: ReasonUnknownEncoding, Text: name})
		}
	}

	text, name := detectAndDecode(buf)
	return text, name, diags
}

func detectAndDecode(buf []byte) (string, string) {
	utf8Text := strings.TrimPrefix(string(buf), "\uFEFF")
	if utf8.Valid(buf) && !strings.ContainsAny(utf8Text, mojibakeMarkers) {
		return utf8Text, EncodingUTF8
	}
	text, err := decodeWith(charmap.Windows1252, buf)
	if err != nil {
		return strings.ToValidUTF8(utf8Text, "\uFFFD"), EncodingUTF8
	}
	return text, EncodingWindows1252
}

func lookupEncoding(name string) (encoding.Encoding, string, bool) {
	key := strings.ToLower(name)
	if alias, ok := encodingAliases[key]; ok {
		key = alias
	}
	if key == EncodingUTF8 {
		return unicode.UTF8, EncodingUTF8, true
	}
	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, "", false
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = key
	}
	return enc, canonical, true
}

func decodeWith(enc encoding.Encoding, buf []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(buf)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
