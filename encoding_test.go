package sie

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeBytesCP437(t *testing.T) {
	// "Räksmörgås" in code page 437.
	in := []byte("R\x84ksm\x94rg\x86s")
	text, enc, err := decodeBytes(in, DefaultEncodings())
	if err != nil {
		t.Fatal(err)
	}
	if enc != "CP437" {
		t.Errorf("decoded with %s, expected CP437", enc)
	}
	if text != "Räksmörgås" {
		t.Errorf("decoded %q, expected %q", text, "Räksmörgås")
	}
}

func TestDecodeBytesUTF8(t *testing.T) {
	in := []byte("plain ascii survives any candidate")
	text, _, err := decodeBytes(in, []Encoding{UTF8Encoding()})
	if err != nil {
		t.Fatal(err)
	}
	if text != string(in) {
		t.Errorf("decoded %q, expected %q", text, in)
	}
}

func TestDecodeBytesAllFail(t *testing.T) {
	// 0xff 0xfe is not valid UTF-8.
	_, _, err := decodeBytes([]byte{0xff, 0xfe, 0x41}, []Encoding{UTF8Encoding()})
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if len(derr.Tried) != 1 || derr.Tried[0] != "UTF-8" {
		t.Errorf("unexpected tried list %v", derr.Tried)
	}
}

func TestParseCP437Input(t *testing.T) {
	// #FNAMN "Smörgås AB" encoded in code page 437.
	in := []byte("#FNAMN \"Sm\x94rg\x86s AB\"\n")
	l, err := Parse(bytes.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if l.Metadata.CompanyName != "Smörgås AB" {
		t.Errorf("company name %q, expected %q", l.Metadata.CompanyName, "Smörgås AB")
	}
}

func TestParseUndecodableInput(t *testing.T) {
	_, err := ParseWithOptions(bytes.NewReader([]byte{0xff, 0xfe}), Options{
		Encodings: []Encoding{UTF8Encoding()},
	})
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}
