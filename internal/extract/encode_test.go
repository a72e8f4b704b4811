package extract

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestEncodeDataURL(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	got := EncodeDataURL(data, "image/jpeg")
	if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Fatalf("EncodeDataURL prefix = %q", got)
	}

	payload := strings.TrimPrefix(got, "data:image/jpeg;base64,")
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if string(decoded) != string(data) {
		t.Fatalf("round-trip mismatch: got %v want %v", decoded, data)
	}
}

func TestEncodeDataURL_Deterministic(t *testing.T) {
	data := []byte("same bytes every time")
	first := EncodeDataURL(data, "image/png")
	second := EncodeDataURL(data, "image/png")
	if first != second {
		t.Fatalf("encoding is not deterministic:\n%q\n%q", first, second)
	}
}

func TestEncodeDataURL_MissingMIMEType(t *testing.T) {
	got := EncodeDataURL([]byte("x"), "")
	if !strings.HasPrefix(got, "data:application/octet-stream;base64,") {
		t.Fatalf("expected octet-stream fallback, got %q", got)
	}
}
