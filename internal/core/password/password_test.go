package password

import "testing"

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(4)

	digest, err := h.Hash("pw1234567")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "pw1234567" {
		t.Fatalf("digest equals plaintext")
	}
	if !h.Verify("pw1234567", digest) {
		t.Fatalf("expected digest to verify")
	}
	if h.Verify("wrong", digest) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestBcryptHasher_SaltedDigestsDiffer(t *testing.T) {
	h := NewBcryptHasher(4)

	a, err := h.Hash("pw1234567")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	b, err := h.Hash("pw1234567")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if a == b {
		t.Fatalf("expected per-hash salts to produce distinct digests")
	}
}

func TestBcryptHasher_CostFallback(t *testing.T) {
	h := NewBcryptHasher(-1)

	digest, err := h.Hash("pw1234567")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !h.Verify("pw1234567", digest) {
		t.Fatalf("expected digest to verify")
	}
}
