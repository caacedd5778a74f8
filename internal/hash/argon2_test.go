package hash

import (
	"strings"
	"testing"
)

func TestHash_DistinctDigestsBothVerify(t *testing.T) {
	d1, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	d2, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if d1 == d2 {
		t.Fatalf("expected distinct digests for repeated hashing, got identical: %s", d1)
	}
	if !Verify(d1, "correct horse battery staple") || !Verify(d2, "correct horse battery staple") {
		t.Fatalf("both digests must verify against the original password")
	}
}

func TestHash_PHCFormat(t *testing.T) {
	d, err := Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(d, "$argon2id$v=19$") {
		t.Fatalf("unexpected digest format: %s", d)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	d, err := Hash("right")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if Verify(d, "wrong") {
		t.Fatalf("wrong password must not verify")
	}
}

func TestVerify_MalformedInputsCollapseToFalse(t *testing.T) {
	cases := []string{
		"",
		"not a digest",
		"$argon2id$v=19$m=65536,t=1,p=4$short",           // missing hash segment
		"$argon2id$v=19$m=0,t=0,p=0$AAAA$AAAA",           // zero parameters
		"$argon2id$v=18$m=65536,t=1,p=4$AAAA$AAAA",       // wrong version
		"$argon2i$v=19$m=65536,t=1,p=4$AAAA$AAAA",        // wrong variant
		"$argon2id$v=19$m=65536,t=1,p=4$!!notb64$AAAA",   // bad salt encoding
		"$argon2id$v=19$m=65536,t=1,p=4$AAAA$!!notb64$x", // bad segment count
	}
	for _, c := range cases {
		if Verify(c, "anything") {
			t.Fatalf("malformed digest %q verified", c)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	d, err := Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if NeedsRehash(d) {
		t.Fatalf("fresh digest should not need rehash")
	}
	// A digest produced with weaker parameters is stale.
	weak := "$argon2id$v=19$m=1024,t=1,p=1$c29tZXNhbHQ$c29tZWtleQ"
	if !NeedsRehash(weak) {
		t.Fatalf("weak digest should need rehash")
	}
	if NeedsRehash("garbage") {
		t.Fatalf("malformed digest must report false")
	}
}
