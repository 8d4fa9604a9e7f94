// Package test provides integration tests for the pqlattice implementation.
// These tests verify cross-component integration at the public API surface.
package test

import (
	"bytes"
	"testing"

	pqlattice "github.com/BackendStack21/pqlattice-go"
	"github.com/BackendStack21/pqlattice-go/core"
	"github.com/BackendStack21/pqlattice-go/kem"
	"github.com/BackendStack21/pqlattice-go/sign"
	"github.com/BackendStack21/pqlattice-go/utils"
)

var levels = []pqlattice.SecurityLevel{pqlattice.PQ128, pqlattice.PQ192}

// TestKEMRoundtrip tests key generation, encapsulation, and decapsulation.
func TestKEMRoundtrip(t *testing.T) {
	for _, level := range levels {
		t.Run(string(level), func(t *testing.T) {
			kp, err := kem.GenerateKeyPair(level)
			if err != nil {
				t.Fatalf("GenerateKeyPair failed: %v", err)
			}

			result, err := kem.Encapsulate(&kp.PublicKey)
			if err != nil {
				t.Fatalf("Encapsulate failed: %v", err)
			}
			if len(result.SharedSecret) != 32 {
				t.Errorf("SharedSecret length = %d, want 32", len(result.SharedSecret))
			}

			recoveredSecret, err := kem.Decapsulate(&kp.SecretKey, result.Ciphertext)
			if err != nil {
				t.Fatalf("Decapsulate failed: %v", err)
			}
			if !bytes.Equal(result.SharedSecret, recoveredSecret) {
				t.Error("Shared secrets do not match")
			}
		})
	}
}

// TestKEMSerialization tests that serialized keys round-trip through the
// wire format and keep interoperating.
func TestKEMSerialization(t *testing.T) {
	for _, level := range levels {
		t.Run(string(level), func(t *testing.T) {
			kp, err := kem.GenerateKeyPair(level)
			if err != nil {
				t.Fatalf("GenerateKeyPair failed: %v", err)
			}

			pk2, err := kem.ParsePublicKey(level, kp.PublicKey.Bytes())
			if err != nil {
				t.Fatalf("ParsePublicKey failed: %v", err)
			}
			if pk2.Params.Level != level {
				t.Errorf("Level mismatch: got %s, want %s", pk2.Params.Level, level)
			}

			sk2, err := kem.ParsePrivateKey(level, kp.SecretKey.Bytes())
			if err != nil {
				t.Fatalf("ParsePrivateKey failed: %v", err)
			}

			// Encapsulate with the parsed public key, decapsulate with the
			// parsed private key.
			result, err := kem.Encapsulate(pk2)
			if err != nil {
				t.Fatalf("Encapsulate failed: %v", err)
			}
			recoveredSecret, err := kem.Decapsulate(sk2, result.Ciphertext)
			if err != nil {
				t.Fatalf("Decapsulate failed: %v", err)
			}
			if !bytes.Equal(result.SharedSecret, recoveredSecret) {
				t.Error("Shared secrets do not match after serialization roundtrip")
			}
		})
	}
}

// TestKEMInvalidCiphertext tests implicit rejection on corrupted ciphertext.
func TestKEMInvalidCiphertext(t *testing.T) {
	kp, err := kem.GenerateKeyPair(pqlattice.PQ128)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	result, err := kem.Encapsulate(&kp.PublicKey)
	if err != nil {
		t.Fatalf("Encapsulate failed: %v", err)
	}

	corrupted := append([]byte{}, result.Ciphertext...)
	corrupted[10] ^= 0xff

	rejected, err := kem.Decapsulate(&kp.SecretKey, corrupted)
	if err != nil {
		t.Fatalf("Decapsulate must not error on corrupted ciphertext: %v", err)
	}
	if bytes.Equal(rejected, result.SharedSecret) {
		t.Error("corrupted ciphertext yielded the real shared secret")
	}
}

// TestSignRoundtrip tests sign key generation, signing, and verification.
func TestSignRoundtrip(t *testing.T) {
	for _, level := range levels {
		t.Run(string(level), func(t *testing.T) {
			kp, err := sign.GenerateKeyPair(level)
			if err != nil {
				t.Fatalf("GenerateKeyPair failed: %v", err)
			}

			message := []byte("integration test message")
			sig, err := sign.Sign(&kp.SecretKey, message)
			if err != nil {
				t.Fatalf("Sign failed: %v", err)
			}
			if len(sig) != kp.SecretKey.Params.SignatureSize {
				t.Errorf("signature length = %d, want %d", len(sig), kp.SecretKey.Params.SignatureSize)
			}

			if !sign.Verify(&kp.PublicKey, message, sig) {
				t.Error("valid signature rejected")
			}
			if sign.Verify(&kp.PublicKey, []byte("another message"), sig) {
				t.Error("signature accepted for wrong message")
			}
		})
	}
}

// TestSignSerialization tests that parsed signature keys interoperate with
// the keys they were serialized from.
func TestSignSerialization(t *testing.T) {
	for _, level := range levels {
		t.Run(string(level), func(t *testing.T) {
			kp, err := sign.GenerateKeyPair(level)
			if err != nil {
				t.Fatalf("GenerateKeyPair failed: %v", err)
			}

			pk2, err := sign.ParsePublicKey(level, kp.PublicKey.Bytes())
			if err != nil {
				t.Fatalf("ParsePublicKey failed: %v", err)
			}
			sk2, err := sign.ParsePrivateKey(level, kp.SecretKey.Bytes())
			if err != nil {
				t.Fatalf("ParsePrivateKey failed: %v", err)
			}

			message := []byte("serialized key interop")
			sig, err := sign.Sign(sk2, message)
			if err != nil {
				t.Fatalf("Sign failed: %v", err)
			}
			if !sign.Verify(pk2, message, sig) {
				t.Error("signature from parsed secret key rejected by parsed public key")
			}

			// The original key must also verify the parsed key's signature.
			if !sign.Verify(&kp.PublicKey, message, sig) {
				t.Error("original public key rejected parsed key's signature")
			}
		})
	}
}

// TestHybridProtocol exercises a full authenticated key exchange: the server
// signs its encapsulation key, the client verifies it before encapsulating.
func TestHybridProtocol(t *testing.T) {
	for _, level := range levels {
		t.Run(string(level), func(t *testing.T) {
			// Server: long-term signature key plus an ephemeral KEM key.
			serverSignKP, err := sign.GenerateKeyPair(level)
			if err != nil {
				t.Fatal(err)
			}
			serverKemKP, err := kem.GenerateKeyPair(level)
			if err != nil {
				t.Fatal(err)
			}

			ekBytes := serverKemKP.PublicKey.Bytes()
			ekSig, err := sign.Sign(&serverSignKP.SecretKey, ekBytes)
			if err != nil {
				t.Fatal(err)
			}

			// Client: verify the key before using it.
			if !sign.Verify(&serverSignKP.PublicKey, ekBytes, ekSig) {
				t.Fatal("client rejected authentic encapsulation key")
			}
			clientEK, err := kem.ParsePublicKey(level, ekBytes)
			if err != nil {
				t.Fatal(err)
			}
			result, err := kem.Encapsulate(clientEK)
			if err != nil {
				t.Fatal(err)
			}

			// Server: recover the session key.
			sessionKey, err := kem.Decapsulate(&serverKemKP.SecretKey, result.Ciphertext)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(sessionKey, result.SharedSecret) {
				t.Fatal("session keys diverge")
			}
		})
	}
}

// TestParameterSizesConsistent checks that the advertised parameter sizes
// match the artifacts the implementation actually produces.
func TestParameterSizesConsistent(t *testing.T) {
	for _, level := range levels {
		kemParams, err := core.GetKEMParams(level)
		if err != nil {
			t.Fatal(err)
		}
		signParams, err := core.GetSignParams(level)
		if err != nil {
			t.Fatal(err)
		}

		kemKP, err := kem.GenerateKeyPair(level)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(kemKP.PublicKey.Bytes()); got != kemParams.PublicKeySize {
			t.Errorf("%s: KEM public key size %d, want %d", level, got, kemParams.PublicKeySize)
		}
		if got := len(kemKP.SecretKey.Bytes()); got != kemParams.PrivateKeySize {
			t.Errorf("%s: KEM private key size %d, want %d", level, got, kemParams.PrivateKeySize)
		}
		result, err := kem.Encapsulate(&kemKP.PublicKey)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(result.Ciphertext); got != kemParams.CiphertextSize {
			t.Errorf("%s: ciphertext size %d, want %d", level, got, kemParams.CiphertextSize)
		}

		signKP, err := sign.GenerateKeyPair(level)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(signKP.PublicKey.Bytes()); got != signParams.PublicKeySize {
			t.Errorf("%s: sign public key size %d, want %d", level, got, signParams.PublicKeySize)
		}
		if got := len(signKP.SecretKey.Bytes()); got != signParams.PrivateKeySize {
			t.Errorf("%s: sign private key size %d, want %d", level, got, signParams.PrivateKeySize)
		}
		sig, err := sign.Sign(&signKP.SecretKey, []byte("size check"))
		if err != nil {
			t.Fatal(err)
		}
		if got := len(sig); got != signParams.SignatureSize {
			t.Errorf("%s: signature size %d, want %d", level, got, signParams.SignatureSize)
		}
	}
}

// TestSharedSecretDistribution sanity-checks that shared secrets from
// repeated encapsulations are unique and not visibly biased.
func TestSharedSecretDistribution(t *testing.T) {
	kp, err := kem.GenerateKeyPair(pqlattice.PQ128)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		result, err := kem.Encapsulate(&kp.PublicKey)
		if err != nil {
			t.Fatal(err)
		}
		key := string(result.SharedSecret)
		if seen[key] {
			t.Fatal("repeated shared secret across encapsulations")
		}
		seen[key] = true

		if err := utils.ValidateSeedEntropy(result.SharedSecret); err != nil {
			t.Fatalf("shared secret failed entropy sanity check: %v", err)
		}
	}
}
