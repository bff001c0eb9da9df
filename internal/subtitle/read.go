package subtitle

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ReadFile reads a subtitle file and returns UTF-8 content. Valid UTF-8 is
// used as-is; otherwise the charset is detected and the bytes are decoded,
// falling back to Latin-1, which cannot fail.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read subtitle: %w", err)
	}
	return decodeToUTF8(data)
}

func decodeToUTF8(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if utf8.Valid(data) {
		return string(stripBOM(data)), nil
	}

	if detected, err := chardet.NewTextDetector().DetectBest(data); err == nil {
		if enc, err := ianaindex.MIB.Encoding(detected.Charset); err == nil && enc != nil {
			decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
			if err == nil && utf8.Valid(decoded) {
				return string(stripBOM(decoded)), nil
			}
		}
	}

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decode subtitle: %w", err)
	}
	return string(stripBOM(decoded)), nil
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xef && data[1] == 0xbb && data[2] == 0xbf {
		return data[3:]
	}
	return data
}
