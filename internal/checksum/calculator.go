package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Calculator computes record checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	CalculateNormalized(content []byte) string
}

// Digest pairs the two checksums of one record.
type Digest struct {
	Raw        string `json:"sha256"`
	Normalized string `json:"normalized_sha256"`
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256([]byte(Normalize(string(content))))
	return hex.EncodeToString(hash[:])
}

// Digest computes both checksums of content.
func (c SHA256) Digest(content []byte) Digest {
	return Digest{Raw: c.CalculateRaw(content), Normalized: c.CalculateNormalized(content)}
}

// Normalize applies the normalization rules to an XML record.
func Normalize(content string) string {
	cleaned := removeComments(content)

	var b strings.Builder
	b.Grow(len(cleaned))

	pending := false // whitespace seen but not yet written
	var last rune
	for i := 0; i < len(cleaned); {
		r, size := utf8.DecodeRuneInString(cleaned[i:])
		i += size
		if unicode.IsSpace(r) {
			pending = true
			continue
		}
		if pending && b.Len() > 0 && !(last == '>' && r == '<') {
			b.WriteByte(' ')
		}
		pending = false
		b.WriteRune(r)
		last = r
	}

	return b.String()
}

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	cdataOpen    = "<![CDATA["
	cdataClose   = "]]>"
)

// removeComments strips XML comments while preserving CDATA sections.
// An unterminated comment swallows the rest of the content.
func removeComments(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	for i := 0; i < len(content); {
		rest := content[i:]
		switch {
		case strings.HasPrefix(rest, cdataOpen):
			end := strings.Index(rest, cdataClose)
			if end < 0 {
				b.WriteString(rest)
				return b.String()
			}
			end += len(cdataClose)
			b.WriteString(rest[:end])
			i += end
		case strings.HasPrefix(rest, commentOpen):
			end := strings.Index(rest[len(commentOpen):], commentClose)
			if end < 0 {
				return b.String()
			}
			b.WriteByte(' ')
			i += len(commentOpen) + end + len(commentClose)
		default:
			b.WriteByte(content[i])
			i++
		}
	}

	return b.String()
}
