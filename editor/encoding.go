package editor

import (
	"bytes"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownEncoding reports an encoding name outside the supported set.
var ErrUnknownEncoding = errors.New("editor: unknown encoding")

// Byte-order marks recognized by detection.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// codecs maps the supported encoding names onto their x/text codecs.
// UTF-8 is handled inline and UTF-16 needs endianness handling, so both
// stay out of this table.
var codecs = map[string]encoding.Encoding{
	"ISO-8859-1":  charmap.ISO8859_1,
	"ISO-8859-2":  charmap.ISO8859_2,
	"ISO-8859-5":  charmap.ISO8859_5,
	"ISO-8859-9":  charmap.ISO8859_9,
	"ISO-8859-15": charmap.ISO8859_15,
	"CP1250":      charmap.Windows1250,
	"CP1251":      charmap.Windows1251,
	"CP1252":      charmap.Windows1252,
	"CP1253":      charmap.Windows1253,
	"CP1254":      charmap.Windows1254,
	"CP1256":      charmap.Windows1256,
	"CP866":       charmap.CodePage866,
	"KOI8-R":      charmap.KOI8R,
	"KOI8-U":      charmap.KOI8U,
}

// EncodingNames returns the supported encodings in menu order.
func EncodingNames() []string {
	return []string{
		"UTF-8", "UTF-16LE", "UTF-16BE",
		"ISO-8859-1", "ISO-8859-2", "ISO-8859-5", "ISO-8859-9", "ISO-8859-15",
		"CP1250", "CP1251", "CP1252", "CP1253", "CP1254", "CP1256",
		"CP866", "KOI8-R", "KOI8-U",
	}
}

func codecFor(name string) (encoding.Encoding, error) {
	switch name {
	case "UTF-8":
		return textunicode.UTF8, nil
	case "UTF-16LE":
		return textunicode.UTF16(textunicode.LittleEndian, textunicode.IgnoreBOM), nil
	case "UTF-16BE":
		return textunicode.UTF16(textunicode.BigEndian, textunicode.IgnoreBOM), nil
	}
	if c, ok := codecs[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// DetectEncoding guesses the encoding of raw file bytes, returning the
// name and a confidence in [0, 1]. Detection order: BOM (certain), valid
// UTF-8, then a byte-frequency heuristic over the single-byte Cyrillic
// and Latin codepages.
func DetectEncoding(data []byte) (string, float32) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return "UTF-8", 1
	case bytes.HasPrefix(data, bomUTF16LE):
		return "UTF-16LE", 1
	case bytes.HasPrefix(data, bomUTF16BE):
		return "UTF-16BE", 1
	}
	if len(data) == 0 {
		return "UTF-8", 1
	}
	if utf8.Valid(data) {
		if isASCII(data) {
			return "UTF-8", 1
		}
		return "UTF-8", 0.95
	}
	if name, conf := detectUTF16NoBOM(data); name != "" {
		return name, conf
	}
	return detectByFrequency(data)
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// detectUTF16NoBOM looks for the zero-byte striping of BOM-less UTF-16
// Latin text.
func detectUTF16NoBOM(data []byte) (string, float32) {
	if len(data) < 4 || len(data)%2 != 0 {
		return "", 0
	}
	var zeroEven, zeroOdd int
	for i, b := range data {
		if b != 0 {
			continue
		}
		if i%2 == 0 {
			zeroEven++
		} else {
			zeroOdd++
		}
	}
	half := len(data) / 2
	if zeroOdd > half*2/3 && zeroEven == 0 {
		return "UTF-16LE", 0.85
	}
	if zeroEven > half*2/3 && zeroOdd == 0 {
		return "UTF-16BE", 0.85
	}
	return "", 0
}

// frequencyCandidates are scored in order; ties keep the earlier entry.
var frequencyCandidates = []string{"CP1251", "CP866", "KOI8-R", "ISO-8859-1"}

// detectByFrequency scores each single-byte candidate by how plausible
// the decoded high bytes look as natural text: letters score, lowercase
// letters score double, control pictures and replacement runes drag the
// score down.
func detectByFrequency(data []byte) (string, float32) {
	best := "ISO-8859-1"
	var bestScore float32 = -1
	for _, name := range frequencyCandidates {
		cm := codecs[name].(*charmap.Charmap)
		score := frequencyScore(data, cm)
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	if bestScore < 0 {
		bestScore = 0
	}
	return best, bestScore
}

func frequencyScore(data []byte, cm *charmap.Charmap) float32 {
	var high, points int
	for _, b := range data {
		if b < 0x80 {
			continue
		}
		high++
		r := cm.DecodeByte(b)
		switch {
		case r == utf8.RuneError || unicode.IsControl(r):
			points -= 2
		case unicode.IsLower(r):
			points += 2
		case unicode.IsLetter(r):
			points++
		}
	}
	if high == 0 {
		return 0
	}
	score := float32(points) / float32(2*high)
	if score < 0 {
		return 0
	}
	return score
}

// DecodeBytes converts raw file bytes in the named encoding to UTF-8.
// A recognized BOM is stripped and reported. Undecodable sequences become
// replacement runes rather than failing the whole load.
func DecodeBytes(data []byte, name string) (text string, hadBOM bool, err error) {
	codec, err := codecFor(name)
	if err != nil {
		return "", false, err
	}
	switch name {
	case "UTF-8":
		hadBOM = bytes.HasPrefix(data, bomUTF8)
		if hadBOM {
			data = data[len(bomUTF8):]
		}
	case "UTF-16LE":
		hadBOM = bytes.HasPrefix(data, bomUTF16LE)
		if hadBOM {
			data = data[len(bomUTF16LE):]
		}
	case "UTF-16BE":
		hadBOM = bytes.HasPrefix(data, bomUTF16BE)
		if hadBOM {
			data = data[len(bomUTF16BE):]
		}
	}
	out, _, err := transform.Bytes(codec.NewDecoder(), data)
	if err != nil {
		return "", hadBOM, fmt.Errorf("editor: decode %s: %w", name, err)
	}
	if !utf8.Valid(out) {
		out = bytes.ToValidUTF8(out, []byte(string(utf8.RuneError)))
	}
	return string(out), hadBOM, nil
}

// EncodeString converts UTF-8 text into the named encoding, prepending
// the BOM when asked. Runes outside the target repertoire are
// transliterated by stripping combining marks first, then replaced.
func EncodeString(text, name string, withBOM bool) ([]byte, error) {
	codec, err := codecFor(name)
	if err != nil {
		return nil, err
	}
	out, encErr := strictEncode(text, codec)
	if encErr != nil {
		out, err = lossyEncode(text, codec)
		if err != nil {
			return nil, fmt.Errorf("editor: encode %s: %w", name, err)
		}
		logger().Debug("lossy encode", "encoding", name)
	}
	if withBOM {
		switch name {
		case "UTF-8":
			out = append(append([]byte{}, bomUTF8...), out...)
		case "UTF-16LE":
			out = append(append([]byte{}, bomUTF16LE...), out...)
		case "UTF-16BE":
			out = append(append([]byte{}, bomUTF16BE...), out...)
		}
	}
	return out, nil
}

func strictEncode(text string, codec encoding.Encoding) ([]byte, error) {
	out, _, err := transform.Bytes(codec.NewEncoder(), []byte(text))
	return out, err
}

// lossyEncode decomposes the text, drops combining marks, and encodes
// with unsupported runes replaced, so "café" survives a Latin-1-less
// target as "cafe" rather than failing the save.
func lossyEncode(text string, codec encoding.Encoding) ([]byte, error) {
	stripped, _, err := transform.String(transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	), text)
	if err != nil {
		stripped = text
	}
	out, _, err := transform.Bytes(
		encoding.ReplaceUnsupported(codec.NewEncoder()), []byte(stripped))
	return out, err
}
