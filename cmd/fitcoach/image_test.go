package main

import "testing"

func TestDecodeDataURI(t *testing.T) {
	got, err := decodeDataURI("data:image/png;base64,AAEC")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("unexpected bytes %v", got)
	}
	if _, err := decodeDataURI("https://example.com/x.png"); err == nil {
		t.Fatalf("expected error for non data uri")
	}
}
