package password

import (
	"errors"
	"strings"
	"testing"
)

// fastParams keeps the test suite quick; correctness does not depend on cost.
func fastParams() Params {
	return Params{
		MemoryKiB:   8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	for _, pw := range []string{"pw123", "correct horse battery staple", "päss wörd"} {
		enc, err := HashWithParams(pw, fastParams())
		if err != nil {
			t.Fatalf("Hash(%q) error: %v", pw, err)
		}
		if !strings.HasPrefix(enc, "$argon2id$v=19$") {
			t.Fatalf("unexpected hash format: %q", enc)
		}
		ok, err := Verify(pw, enc)
		if err != nil {
			t.Fatalf("Verify error: %v", err)
		}
		if !ok {
			t.Fatalf("Verify(%q) = false, want true", pw)
		}
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	enc, err := HashWithParams("right-password", fastParams())
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	ok, err := Verify("wrong-password", enc)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("Verify accepted a wrong password")
	}
}

func TestHash_SaltUniqueness(t *testing.T) {
	t.Parallel()

	a, err := HashWithParams("same-input", fastParams())
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := HashWithParams("same-input", fastParams())
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same input are identical; salt is being reused")
	}
	for _, enc := range []string{a, b} {
		ok, err := Verify("same-input", enc)
		if err != nil || !ok {
			t.Fatalf("Verify(%q) = (%v, %v), want (true, nil)", enc, ok, err)
		}
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",   // wrong variant
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",  // wrong version
		"$argon2id$v=19$m=0,t=3,p=2$c2FsdA$aGFzaA",      // zero memory
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",     // bad salt b64
		"$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",  // key too short
		"$argon2id$v=19$m=65536,t=3$c2FsdHNhbHQ$aGFzaA", // missing p
	}
	for _, enc := range cases {
		ok, err := Verify("whatever", enc)
		if ok {
			t.Fatalf("Verify accepted malformed hash %q", enc)
		}
		if !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("Verify(%q) error = %v, want ErrInvalidHash", enc, err)
		}
	}
}

func TestHash_MinimumSalt(t *testing.T) {
	t.Parallel()

	p := fastParams()
	p.SaltLength = 4 // below the floor; must be raised, never honored
	enc, err := HashWithParams("pw", p)
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	got, _, _, err := decode(enc)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got.SaltLength < 16 {
		t.Fatalf("salt length = %d, want >= 16", got.SaltLength)
	}
}
