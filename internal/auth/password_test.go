package auth

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals the plaintext password")
	}

	if !VerifyPassword(hash, "s3cret-pass") {
		t.Error("VerifyPassword() rejected the right password")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Error("VerifyPassword() accepted a wrong password")
	}
}
