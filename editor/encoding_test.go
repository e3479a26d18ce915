package editor

import (
	"bytes"
	"errors"
	"testing"
)

func TestDetectEncodingBOM(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "UTF-8"},
		{"utf16le bom", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "UTF-16LE"},
		{"utf16be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "UTF-16BE"},
		{"empty", nil, "UTF-8"},
		{"plain ascii", []byte("hello world"), "UTF-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, conf := DetectEncoding(tt.data)
			if got != tt.want {
				t.Errorf("DetectEncoding() = %q, want %q", got, tt.want)
			}
			if conf != 1 {
				t.Errorf("confidence = %v, want 1", conf)
			}
		})
	}
}

func TestDetectEncodingValidUTF8(t *testing.T) {
	got, conf := DetectEncoding([]byte("naïve café"))
	if got != "UTF-8" {
		t.Fatalf("DetectEncoding() = %q, want UTF-8", got)
	}
	if conf != 0.95 {
		t.Errorf("confidence = %v, want 0.95", conf)
	}
}

func TestDetectEncodingUTF16NoBOM(t *testing.T) {
	data := []byte{'l', 0, 'a', 0, 't', 0, 'i', 0, 'n', 0}
	got, conf := DetectEncoding(data)
	if got != "UTF-16LE" {
		t.Fatalf("DetectEncoding() = %q, want UTF-16LE", got)
	}
	if conf != 0.85 {
		t.Errorf("confidence = %v, want 0.85", conf)
	}
}

func TestDetectEncodingByFrequency(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		// "Привет" in CP1251
		{"cp1251", []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}, "CP1251"},
		// "мир" in KOI8-R
		{"koi8r", []byte{0xCD, 0xC9, 0xD2}, "KOI8-R"},
		// "мир" in CP866
		{"cp866", []byte{0xAC, 0xA8, 0xE0}, "CP866"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, conf := DetectEncoding(tt.data)
			if got != tt.want {
				t.Errorf("DetectEncoding() = %q, want %q", got, tt.want)
			}
			if conf <= 0.4 {
				t.Errorf("confidence = %v, want > 0.4", conf)
			}
		})
	}
}

func TestDecodeBytesStripsBOM(t *testing.T) {
	text, hadBOM, err := DecodeBytes([]byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "UTF-8")
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if text != "hi" {
		t.Errorf("text = %q, want %q", text, "hi")
	}
	if !hadBOM {
		t.Error("hadBOM = false, want true")
	}

	text, hadBOM, err = DecodeBytes([]byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "UTF-16LE")
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if text != "hi" || !hadBOM {
		t.Errorf("got (%q, %v), want (%q, true)", text, hadBOM, "hi")
	}
}

func TestDecodeBytesCP1251(t *testing.T) {
	text, hadBOM, err := DecodeBytes([]byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}, "CP1251")
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if text != "Привет" {
		t.Errorf("text = %q, want %q", text, "Привет")
	}
	if hadBOM {
		t.Error("hadBOM = true, want false")
	}
}

func TestTranscodeRoundTrip(t *testing.T) {
	tests := []struct {
		encoding string
		text     string
	}{
		{"CP1251", "Привет, мир"},
		{"KOI8-R", "мир"},
		{"ISO-8859-1", "café"},
		{"UTF-16LE", "héllo"},
		{"UTF-16BE", "héllo"},
		{"UTF-8", "mixed Привет café"},
	}
	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			raw, err := EncodeString(tt.text, tt.encoding, false)
			if err != nil {
				t.Fatalf("EncodeString() error = %v", err)
			}
			back, _, err := DecodeBytes(raw, tt.encoding)
			if err != nil {
				t.Fatalf("DecodeBytes() error = %v", err)
			}
			if back != tt.text {
				t.Errorf("round trip = %q, want %q", back, tt.text)
			}
		})
	}
}

func TestEncodeStringTransliterates(t *testing.T) {
	// KOI8-R has no é; the accent is dropped instead of failing the save.
	raw, err := EncodeString("café", "KOI8-R", false)
	if err != nil {
		t.Fatalf("EncodeString() error = %v", err)
	}
	if string(raw) != "cafe" {
		t.Errorf("raw = %q, want %q", raw, "cafe")
	}
}

func TestEncodeStringBOM(t *testing.T) {
	raw, err := EncodeString("hi", "UTF-8", true)
	if err != nil {
		t.Fatalf("EncodeString() error = %v", err)
	}
	if !bytes.Equal(raw, []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}) {
		t.Errorf("raw = %x, want efbbbf6869", raw)
	}

	raw, err = EncodeString("hi", "UTF-16LE", true)
	if err != nil {
		t.Fatalf("EncodeString() error = %v", err)
	}
	if !bytes.Equal(raw, []byte{0xFF, 0xFE, 'h', 0, 'i', 0}) {
		t.Errorf("raw = %x, want fffe68006900", raw)
	}
}

func TestUnknownEncoding(t *testing.T) {
	if _, _, err := DecodeBytes([]byte("x"), "EBCDIC"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("DecodeBytes() error = %v, want ErrUnknownEncoding", err)
	}
	if _, err := EncodeString("x", "EBCDIC", false); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("EncodeString() error = %v, want ErrUnknownEncoding", err)
	}
}

func TestEncodingNamesAllSupported(t *testing.T) {
	names := EncodingNames()
	if len(names) == 0 || names[0] != "UTF-8" {
		t.Fatalf("EncodingNames()[0] = %v, want UTF-8 first", names)
	}
	for _, name := range names {
		if _, err := codecFor(name); err != nil {
			t.Errorf("codecFor(%q) error = %v", name, err)
		}
	}
}
