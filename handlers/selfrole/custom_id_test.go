package selfrole

import "testing"

func TestButtonIDRoundTrip(t *testing.T) {
	in := ButtonID{RoleMessageID: 42, RoleID: "123456789"}
	encoded := in.Encode()
	if encoded != "selfrole:42:123456789" {
		t.Fatalf("unexpected encoding %q", encoded)
	}
	out, err := DecodeButtonID(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestDecodeButtonIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{
		"",
		"selfrole",
		"selfrole:42",
		"selfrole:notanumber:123",
		"selfrole:0:123",
		"selfrole:-1:123",
		"selfrole:42:",
		"otherfeature:42:123",
		"selfrole:42:123:extra",
	} {
		if _, err := DecodeButtonID(id); err == nil {
			t.Errorf("expected decode error for %q", id)
		}
	}
}

func TestIsButtonID(t *testing.T) {
	if !IsButtonID("selfrole:1:2") {
		t.Error("expected selfrole custom id to match")
	}
	if IsButtonID("confirm_delete_1") {
		t.Error("expected foreign custom id not to match")
	}
	if IsButtonID("selfroleother:1:2") {
		t.Error("prefix must be delimiter-exact")
	}
}
