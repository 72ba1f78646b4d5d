package obfuscate_test

import (
	"strings"
	"testing"

	"github.com/dkeye/Whisper/internal/adapters/obfuscate"
)

func TestObfuscateDeterministic(t *testing.T) {
	o := obfuscate.NewHMAC("secret")
	a := o.Obfuscate("203.0.113.7")
	b := o.Obfuscate("203.0.113.7")
	if a != b {
		t.Fatalf("same input produced %q and %q", a, b)
	}
}

func TestObfuscateHidesAddress(t *testing.T) {
	o := obfuscate.NewHMAC("secret")
	tok := o.Obfuscate("203.0.113.7")
	if strings.Contains(tok, "203.0.113.7") {
		t.Fatal("token leaks the raw address")
	}
	if tok == "" {
		t.Fatal("empty token")
	}
}

func TestObfuscateDistinguishes(t *testing.T) {
	o := obfuscate.NewHMAC("secret")
	if o.Obfuscate("203.0.113.7") == o.Obfuscate("203.0.113.8") {
		t.Fatal("different addresses collided")
	}

	other := obfuscate.NewHMAC("another secret")
	if o.Obfuscate("203.0.113.7") == other.Obfuscate("203.0.113.7") {
		t.Fatal("token must depend on the secret")
	}
}
