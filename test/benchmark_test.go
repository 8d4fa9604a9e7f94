package test

import (
	"testing"

	pqlattice "github.com/BackendStack21/pqlattice-go"
	"github.com/BackendStack21/pqlattice-go/kem"
	"github.com/BackendStack21/pqlattice-go/sign"
)

// =============================================================================
// KEM Benchmarks - PQ-128
// =============================================================================

func BenchmarkKEM_GenerateKeyPair_PQ128(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := kem.GenerateKeyPair(pqlattice.PQ128)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKEM_Encapsulate_PQ128(b *testing.B) {
	kp, err := kem.GenerateKeyPair(pqlattice.PQ128)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := kem.Encapsulate(&kp.PublicKey)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKEM_Decapsulate_PQ128(b *testing.B) {
	kp, err := kem.GenerateKeyPair(pqlattice.PQ128)
	if err != nil {
		b.Fatal(err)
	}
	result, err := kem.Encapsulate(&kp.PublicKey)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := kem.Decapsulate(&kp.SecretKey, result.Ciphertext)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// =============================================================================
// KEM Benchmarks - PQ-192
// =============================================================================

func BenchmarkKEM_GenerateKeyPair_PQ192(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := kem.GenerateKeyPair(pqlattice.PQ192)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKEM_Encapsulate_PQ192(b *testing.B) {
	kp, err := kem.GenerateKeyPair(pqlattice.PQ192)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := kem.Encapsulate(&kp.PublicKey)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKEM_Decapsulate_PQ192(b *testing.B) {
	kp, err := kem.GenerateKeyPair(pqlattice.PQ192)
	if err != nil {
		b.Fatal(err)
	}
	result, err := kem.Encapsulate(&kp.PublicKey)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := kem.Decapsulate(&kp.SecretKey, result.Ciphertext)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// =============================================================================
// Signature Benchmarks - PQ-128
// =============================================================================

func BenchmarkSign_GenerateKeyPair_PQ128(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := sign.GenerateKeyPair(pqlattice.PQ128)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSign_Sign_PQ128(b *testing.B) {
	kp, err := sign.GenerateKeyPair(pqlattice.PQ128)
	if err != nil {
		b.Fatal(err)
	}
	message := []byte("benchmark message for signing throughput measurement")

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := sign.Sign(&kp.SecretKey, message)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSign_Verify_PQ128(b *testing.B) {
	kp, err := sign.GenerateKeyPair(pqlattice.PQ128)
	if err != nil {
		b.Fatal(err)
	}
	message := []byte("benchmark message for signing throughput measurement")
	sig, err := sign.Sign(&kp.SecretKey, message)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !sign.Verify(&kp.PublicKey, message, sig) {
			b.Fatal("verification failed")
		}
	}
}

// =============================================================================
// Signature Benchmarks - PQ-192
// =============================================================================

func BenchmarkSign_GenerateKeyPair_PQ192(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := sign.GenerateKeyPair(pqlattice.PQ192)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSign_Sign_PQ192(b *testing.B) {
	kp, err := sign.GenerateKeyPair(pqlattice.PQ192)
	if err != nil {
		b.Fatal(err)
	}
	message := []byte("benchmark message for signing throughput measurement")

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := sign.Sign(&kp.SecretKey, message)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSign_Verify_PQ192(b *testing.B) {
	kp, err := sign.GenerateKeyPair(pqlattice.PQ192)
	if err != nil {
		b.Fatal(err)
	}
	message := []byte("benchmark message for signing throughput measurement")
	sig, err := sign.Sign(&kp.SecretKey, message)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !sign.Verify(&kp.PublicKey, message, sig) {
			b.Fatal("verification failed")
		}
	}
}
