package main_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Helper types for unmarshaling JSON outputs
type keyPairExport struct {
	Algorithm     string `json:"algorithm"`
	SecurityLevel string `json:"security_level"`
	PublicKey     string `json:"public_key"`
	SecretKey     string `json:"secret_key"`
	KeyHMAC       string `json:"key_hmac"`
}

type encapsulationExport struct {
	Ciphertext   string `json:"ciphertext"`
	SharedSecret string `json:"shared_secret"`
}

type signatureExport struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// runCLI executes the CLI via `go run ./cmd/pqlattice-cli` from the repository root.
func runCLI(t *testing.T, timeout time.Duration, args ...string) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	cmdArgs := append([]string{"run", "./cmd/pqlattice-cli"}, args...)
	cmd := exec.CommandContext(ctx, "go", cmdArgs...)
	cmd.Dir = filepath.Join("..", "..")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestHelpAndVersion(t *testing.T) {
	out, err := runCLI(t, 30*time.Second, "help")
	if err != nil {
		t.Fatalf("help command failed: %v, out: %s", err, out)
	}
	if !strings.Contains(out, "pqlattice-cli") {
		t.Fatalf("help output does not contain expected header, got: %s", out)
	}

	out, err = runCLI(t, 30*time.Second, "version")
	if err != nil {
		t.Fatalf("version command failed: %v, out: %s", err, out)
	}
	if !strings.Contains(out, "version") {
		t.Fatalf("version output unexpected: %s", out)
	}
}

func TestKEMWorkflow(t *testing.T) {
	dir := t.TempDir()
	kpFile := filepath.Join(dir, "kem_kp.json")
	encFile := filepath.Join(dir, "encap.json")

	out, err := runCLI(t, 60*time.Second, "kem", "keygen", "--level", "128", "--output", kpFile)
	if err != nil {
		t.Fatalf("kem keygen failed: %v, out: %s", err, out)
	}
	data, err := os.ReadFile(kpFile)
	if err != nil {
		t.Fatal(err)
	}
	var kp keyPairExport
	if err := json.Unmarshal(data, &kp); err != nil {
		t.Fatalf("key pair file is not valid JSON: %v", err)
	}
	if kp.Algorithm != "ML-KEM" || kp.SecurityLevel != "PQ-128" {
		t.Fatalf("unexpected key pair metadata: %+v", kp)
	}
	if kp.PublicKey == "" || kp.SecretKey == "" || kp.KeyHMAC == "" {
		t.Fatal("key pair export missing fields")
	}

	out, err = runCLI(t, 60*time.Second, "kem", "encapsulate", "--level", "128",
		"--public-key", kpFile, "--output", encFile)
	if err != nil {
		t.Fatalf("kem encapsulate failed: %v, out: %s", err, out)
	}
	data, err = os.ReadFile(encFile)
	if err != nil {
		t.Fatal(err)
	}
	var enc encapsulationExport
	if err := json.Unmarshal(data, &enc); err != nil {
		t.Fatalf("encapsulation file is not valid JSON: %v", err)
	}

	out, err = runCLI(t, 60*time.Second, "kem", "decapsulate", "--level", "128",
		"--secret-key", kpFile, "--ciphertext", encFile)
	if err != nil {
		t.Fatalf("kem decapsulate failed: %v, out: %s", err, out)
	}
	if !strings.Contains(out, enc.SharedSecret) {
		t.Fatalf("decapsulated secret does not match encapsulation output: %s", out)
	}
}

func TestSignWorkflow(t *testing.T) {
	dir := t.TempDir()
	kpFile := filepath.Join(dir, "sign_kp.json")
	sigFile := filepath.Join(dir, "sig.json")
	message := "CLI signing round trip"

	out, err := runCLI(t, 60*time.Second, "sign", "keygen", "--level", "128", "--output", kpFile)
	if err != nil {
		t.Fatalf("sign keygen failed: %v, out: %s", err, out)
	}

	out, err = runCLI(t, 60*time.Second, "sign", "sign", "--level", "128",
		"--secret-key", kpFile, "--message", message, "--output", sigFile)
	if err != nil {
		t.Fatalf("sign failed: %v, out: %s", err, out)
	}
	data, err := os.ReadFile(sigFile)
	if err != nil {
		t.Fatal(err)
	}
	var sig signatureExport
	if err := json.Unmarshal(data, &sig); err != nil {
		t.Fatalf("signature file is not valid JSON: %v", err)
	}
	if sig.Signature == "" {
		t.Fatal("signature export missing signature")
	}

	out, err = runCLI(t, 60*time.Second, "sign", "verify", "--level", "128",
		"--public-key", kpFile, "--message", message, "--signature", sigFile)
	if err != nil {
		t.Fatalf("verify failed: %v, out: %s", err, out)
	}

	// A wrong message must make the verify command exit nonzero.
	_, err = runCLI(t, 60*time.Second, "sign", "verify", "--level", "128",
		"--public-key", kpFile, "--message", "a different message", "--signature", sigFile)
	if err == nil {
		t.Fatal("verify accepted a signature for the wrong message")
	}
}
