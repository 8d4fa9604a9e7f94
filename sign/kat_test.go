package sign

import (
	"bytes"
	"encoding/hex"
	"testing"

	pqlattice "github.com/BackendStack21/pqlattice-go"
	"github.com/BackendStack21/pqlattice-go/core"
	"github.com/BackendStack21/pqlattice-go/utils"
)

// Known-answer tests. Keys are derived from the all-zero 32-byte seed and
// the message "test" is signed deterministically (rnd = 0^32); the expected
// values pin down the full pipeline byte for byte. Large outputs are
// recorded as SHA3-256 digests plus a raw prefix.
var signKATs = []struct {
	level    pqlattice.SecurityLevel
	pkHash   string
	skHash   string
	sigHash  string
	pkFirst  string
	sigFirst string
}{
	{
		level:    pqlattice.PQ128,
		pkHash:   "0f3cf699dcd46ec303d7bf35b185988d452dfde433ada2413f1f0604d91c1d6a",
		skHash:   "389cc952935bd876a4ed2c48b625f530bb9c012ddd8a1d1055e112c089e9fdcf",
		sigHash:  "cbf7e09a7156098543dff79db8f1bb13a0a2f442e97f950a0051b51eef475325",
		pkFirst:  "ba71f9f64e11baeb58fa9c6fbb6e14e61f18643dab495b47539a9166ca0198131c44f826bbd56e34e55db5e5e2d733485e39ea260fc6000c5ea4ba80d3455cde",
		sigFirst: "e1dbf4c3c6a38c6d99becfa14f2ce1aac292a32f113a1bac0d22e9387ad2036a3be22d1c4f24ab4196bbc24b1052576f59ee3d852040c1c2ce924c19bd6462be",
	},
	{
		level:    pqlattice.PQ192,
		pkHash:   "b0681bf95c4068feb39a3099dbcc299108cc779dbeed196debdea877074a37aa",
		skHash:   "621bf6e9fdcbfc369b6f8789057b8ad20d2176c5ead9a9f066c1b22dd19710bb",
		sigHash:  "3cd39ba0a4bb25a25759463b6550fd13e8d5a966d3b56b18b228a57ca1122cfe",
		pkFirst:  "424b2f267e58d5b3b44d71acfc6a656bb26950d57c61db1c880bcfa1feab443f0942ab8bdbad7d708abbc356078f6d99a252271fe62c74091eb94afb9b9264c5",
		sigFirst: "37ca414278ff32445a8b57e9e7dfd8693bf1bde981a1e1c1a4e9aa66a7b24bbd1a42aefeff352099b57fc41bbb940441af75402757cdfa1a4242b6d48a4d7813",
	},
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex in test vector: %v", err)
	}
	return b
}

func TestKnownAnswers(t *testing.T) {
	message := []byte("test")

	for _, kat := range signKATs {
		params, err := core.GetSignParams(kat.level)
		if err != nil {
			t.Fatal(err)
		}

		seed := make([]byte, params.SeedSize)
		kp, err := GenerateKeyPairFromSeed(params, seed)
		if err != nil {
			t.Fatalf("%s: keygen: %v", kat.level, err)
		}

		pk := kp.PublicKey.Bytes()
		sk := kp.SecretKey.Bytes()
		if !bytes.Equal(utils.SHA3256(pk), mustHex(t, kat.pkHash)) {
			t.Fatalf("%s: public key digest mismatch", kat.level)
		}
		if !bytes.Equal(utils.SHA3256(sk), mustHex(t, kat.skHash)) {
			t.Fatalf("%s: private key digest mismatch", kat.level)
		}
		if !bytes.Equal(pk[:64], mustHex(t, kat.pkFirst)) {
			t.Fatalf("%s: public key prefix mismatch\n got %x", kat.level, pk[:64])
		}

		sig, err := Sign(&kp.SecretKey, message)
		if err != nil {
			t.Fatalf("%s: sign: %v", kat.level, err)
		}
		if !bytes.Equal(utils.SHA3256(sig), mustHex(t, kat.sigHash)) {
			t.Fatalf("%s: signature digest mismatch", kat.level)
		}
		if !bytes.Equal(sig[:64], mustHex(t, kat.sigFirst)) {
			t.Fatalf("%s: signature prefix mismatch\n got %x", kat.level, sig[:64])
		}

		if !Verify(&kp.PublicKey, message, sig) {
			t.Fatalf("%s: test-vector signature rejected", kat.level)
		}
	}
}
