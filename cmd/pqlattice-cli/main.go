// Package main provides the pqlattice-cli command line interface for
// ML-KEM and ML-DSA operations.
package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	pqlattice "github.com/BackendStack21/pqlattice-go"
	"github.com/BackendStack21/pqlattice-go/kem"
	"github.com/BackendStack21/pqlattice-go/sign"
)

const (
	version = "1.0.0"
	appName = "pqlattice-cli"
)

// OutputFormat represents the output format for serialization
type OutputFormat string

const (
	FormatHex    OutputFormat = "hex"
	FormatBase64 OutputFormat = "base64"
)

// CLIConfig holds CLI configuration
type CLIConfig struct {
	SecurityLevel pqlattice.SecurityLevel
	OutputFormat  OutputFormat
	OutputFile    string
	Verbose       bool
	Timing        bool
}

// KeyPairExport represents an exported key pair
type KeyPairExport struct {
	Algorithm     string `json:"algorithm"`
	SecurityLevel string `json:"security_level"`
	PublicKey     string `json:"public_key"`
	SecretKey     string `json:"secret_key"`
	CreatedAt     string `json:"created_at"`
	KeyHMAC       string `json:"key_hmac,omitempty"` // HMAC for integrity verification
}

// EncapsulationExport represents an exported encapsulation result
type EncapsulationExport struct {
	Ciphertext   string `json:"ciphertext"`
	SharedSecret string `json:"shared_secret"`
}

// SignatureExport represents an exported signature
type SignatureExport struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, version)
		fmt.Printf("pqlattice library version %s\n", pqlattice.Version)
	case "kem":
		handleKEM(os.Args[2:])
	case "sign":
		handleSign(os.Args[2:])
	case "benchmark":
		handleBenchmark(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - ML-KEM / ML-DSA Post-Quantum Cryptography CLI

USAGE:
    %s <COMMAND> [OPTIONS]

COMMANDS:
    kem         Key Encapsulation Mechanism operations (ML-KEM)
    sign        Digital signature operations (ML-DSA)
    benchmark   Run performance benchmarks
    version     Show version information
    help        Show this help message

Use "%s <COMMAND> --help" for more information about a command.

EXAMPLES:
    # Generate a KEM key pair
    %s kem keygen --level 128 --output keypair.json

    # Encapsulate using a public key
    %s kem encapsulate --public-key keypair.json --output encap.json

    # Decapsulate using a secret key
    %s kem decapsulate --secret-key keypair.json --ciphertext encap.json

    # Generate a signature key pair
    %s sign keygen --level 192 --output signkp.json

    # Sign a message
    %s sign sign --secret-key signkp.json --message "Document to sign"

    # Verify a signature
    %s sign verify --public-key signkp.json --message "Document to sign" --signature sig.json

    # Run benchmarks
    %s benchmark --level 128 --iterations 10
`, appName, appName, appName, appName, appName, appName, appName, appName, appName, appName)
}

// ============================================================================
// KEM Commands
// ============================================================================

func handleKEM(args []string) {
	if len(args) < 1 {
		printKEMUsage()
		os.Exit(1)
	}

	subcommand := args[0]
	switch subcommand {
	case "keygen":
		kemKeygen(args[1:])
	case "encapsulate", "encap":
		kemEncapsulate(args[1:])
	case "encapsulate-deterministic", "encap-det":
		kemEncapsulateDet(args[1:])
	case "decapsulate", "decap":
		kemDecapsulate(args[1:])
	case "help", "--help", "-h":
		printKEMUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown KEM subcommand: %s\n", subcommand)
		printKEMUsage()
		os.Exit(1)
	}
}

func printKEMUsage() {
	fmt.Printf(`%s kem - ML-KEM Key Encapsulation Mechanism operations

USAGE:
    %s kem <SUBCOMMAND> [OPTIONS]

SUBCOMMANDS:
    keygen                      Generate a new KEM key pair
    encapsulate                 Create shared secret and ciphertext
    encapsulate-deterministic   Encapsulate with fixed message randomness
    decapsulate                 Recover shared secret from ciphertext
    help                        Show this help message

OPTIONS:
    --level <128|192>           Security level (default: 128)
    --output <file>             Output file (default: stdout)
    --format <hex|base64>       Output format (default: base64)
    --timing                    Show timing information
    --verbose                   Verbose output

EXAMPLES:
    %s kem keygen --level 128 --output keypair.json
    %s kem encapsulate --public-key keypair.json
    %s kem decapsulate --secret-key keypair.json --ciphertext encap.json
`, appName, appName, appName, appName, appName)
}

// generateKeyHMAC computes HMAC-SHA256 of key material for basic integrity
// verification. This only detects accidental corruption, not malicious
// tampering: the HMAC is keyed with the public key, which is not secret.
func generateKeyHMAC(publicKey, secretKey string) string {
	h := hmac.New(sha256.New, []byte(publicKey))
	h.Write([]byte(secretKey))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func kemKeygen(args []string) {
	config := parseConfig(args)

	start := time.Now()
	kp, err := kem.GenerateKeyPair(config.SecurityLevel)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key pair: %v\n", err)
		os.Exit(1)
	}

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Key generation took: %v\n", elapsed)
	}

	pkBytes := kp.PublicKey.Bytes()
	skBytes := kp.SecretKey.Bytes()

	export := KeyPairExport{
		Algorithm:     "ML-KEM",
		SecurityLevel: string(config.SecurityLevel),
		PublicKey:     encodeBytes(pkBytes, config.OutputFormat),
		SecretKey:     encodeBytes(skBytes, config.OutputFormat),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	export.KeyHMAC = generateKeyHMAC(export.PublicKey, export.SecretKey)

	output, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling output: %v\n", err)
		os.Exit(1)
	}

	writeOutput(output, config.OutputFile)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Generated ML-KEM key pair with security level: %s\n", config.SecurityLevel)
		fmt.Fprintf(os.Stderr, "Public key size: %d bytes\n", len(pkBytes))
		fmt.Fprintf(os.Stderr, "Secret key size: %d bytes\n", len(skBytes))
	}
}

func kemEncapsulate(args []string) {
	config := parseConfig(args)

	pk := loadKEMPublicKey(args, config)

	start := time.Now()
	result, err := kem.Encapsulate(pk)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encapsulating: %v\n", err)
		os.Exit(1)
	}

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Encapsulation took: %v\n", elapsed)
	}

	writeEncapsulation(result, config)
}

func kemEncapsulateDet(args []string) {
	config := parseConfig(args)
	mHex := getArg(args, "--message-randomness", "-mr")

	if mHex == "" {
		fmt.Fprintf(os.Stderr, "Error: --message-randomness is required (hex, 64 chars)\n")
		os.Exit(1)
	}
	m, err := hex.DecodeString(mHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid message-randomness hex: %v\n", err)
		os.Exit(1)
	}

	pk := loadKEMPublicKey(args, config)

	start := time.Now()
	result, err := kem.EncapsulateDeterministic(pk, m)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encapsulating deterministically: %v\n", err)
		os.Exit(1)
	}

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Deterministic encapsulation took: %v\n", elapsed)
	}

	writeEncapsulation(result, config)
}

func writeEncapsulation(result *kem.EncapsulationResult, config CLIConfig) {
	export := EncapsulationExport{
		Ciphertext:   encodeBytes(result.Ciphertext, config.OutputFormat),
		SharedSecret: encodeBytes(result.SharedSecret, config.OutputFormat),
	}

	output, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling output: %v\n", err)
		os.Exit(1)
	}

	writeOutput(output, config.OutputFile)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Encapsulation successful\n")
		fmt.Fprintf(os.Stderr, "Ciphertext size: %d bytes\n", len(result.Ciphertext))
		fmt.Fprintf(os.Stderr, "Shared secret size: %d bytes\n", len(result.SharedSecret))
	}
}

func kemDecapsulate(args []string) {
	config := parseConfig(args)
	skFile := getArg(args, "--secret-key", "-sk")
	ctFile := getArg(args, "--ciphertext", "-ct")

	if skFile == "" || ctFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --secret-key and --ciphertext are required\n")
		os.Exit(1)
	}

	skData, err := loadKeyFromFile(skFile, "secret_key")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading secret key: %v\n", err)
		os.Exit(1)
	}
	sk, err := kem.ParsePrivateKey(config.SecurityLevel, skData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing secret key: %v\n", err)
		os.Exit(1)
	}

	ctData, err := loadKeyFromFile(ctFile, "ciphertext")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ciphertext: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	sharedSecret, err := kem.Decapsulate(sk, ctData)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decapsulating: %v\n", err)
		os.Exit(1)
	}

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Decapsulation took: %v\n", elapsed)
	}

	result := map[string]string{
		"shared_secret": encodeBytes(sharedSecret, config.OutputFormat),
	}
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling output: %v\n", err)
		os.Exit(1)
	}

	writeOutput(output, config.OutputFile)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Decapsulation successful\n")
		fmt.Fprintf(os.Stderr, "Shared secret size: %d bytes\n", len(sharedSecret))
	}
}

func loadKEMPublicKey(args []string, config CLIConfig) *kem.PublicKey {
	pkFile := getArg(args, "--public-key", "-pk")
	if pkFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --public-key is required\n")
		os.Exit(1)
	}

	pkData, err := loadKeyFromFile(pkFile, "public_key")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading public key: %v\n", err)
		os.Exit(1)
	}
	pk, err := kem.ParsePublicKey(config.SecurityLevel, pkData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing public key: %v\n", err)
		os.Exit(1)
	}
	return pk
}

// ============================================================================
// Sign Commands
// ============================================================================

func handleSign(args []string) {
	if len(args) < 1 {
		printSignUsage()
		os.Exit(1)
	}

	subcommand := args[0]
	switch subcommand {
	case "keygen":
		signKeygen(args[1:])
	case "sign":
		signSign(args[1:])
	case "verify":
		signVerify(args[1:])
	case "help", "--help", "-h":
		printSignUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown sign subcommand: %s\n", subcommand)
		printSignUsage()
		os.Exit(1)
	}
}

func printSignUsage() {
	fmt.Printf(`%s sign - ML-DSA digital signature operations

USAGE:
    %s sign <SUBCOMMAND> [OPTIONS]

SUBCOMMANDS:
    keygen      Generate a new signature key pair
    sign        Sign a message (deterministic; --randomized for hedged)
    verify      Verify a signature
    help        Show this help message

OPTIONS:
    --level <128|192>           Security level (default: 128)
    --output <file>             Output file (default: stdout)
    --format <hex|base64>       Output format (default: base64)
    --randomized                Use hedged signing
    --timing                    Show timing information
    --verbose                   Verbose output

EXAMPLES:
    %s sign keygen --level 128 --output signkp.json
    %s sign sign --secret-key signkp.json --message "Hello"
    %s sign sign --secret-key signkp.json --input document.txt --randomized
    %s sign verify --public-key signkp.json --message "Hello" --signature sig.json
`, appName, appName, appName, appName, appName, appName)
}

func signKeygen(args []string) {
	config := parseConfig(args)

	start := time.Now()
	kp, err := sign.GenerateKeyPair(config.SecurityLevel)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key pair: %v\n", err)
		os.Exit(1)
	}

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Key generation took: %v\n", elapsed)
	}

	pkBytes := kp.PublicKey.Bytes()
	skBytes := kp.SecretKey.Bytes()

	export := KeyPairExport{
		Algorithm:     "ML-DSA",
		SecurityLevel: string(config.SecurityLevel),
		PublicKey:     encodeBytes(pkBytes, config.OutputFormat),
		SecretKey:     encodeBytes(skBytes, config.OutputFormat),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	export.KeyHMAC = generateKeyHMAC(export.PublicKey, export.SecretKey)

	output, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling output: %v\n", err)
		os.Exit(1)
	}

	writeOutput(output, config.OutputFile)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Generated ML-DSA key pair with security level: %s\n", config.SecurityLevel)
		fmt.Fprintf(os.Stderr, "Public key size: %d bytes\n", len(pkBytes))
		fmt.Fprintf(os.Stderr, "Secret key size: %d bytes\n", len(skBytes))
	}
}

func signSign(args []string) {
	config := parseConfig(args)
	skFile := getArg(args, "--secret-key", "-sk")
	randomized := hasFlag(args, "--randomized", "-r")

	if skFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --secret-key is required\n")
		os.Exit(1)
	}

	msgBytes := readMessage(args)

	skData, err := loadKeyFromFile(skFile, "secret_key")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading secret key: %v\n", err)
		os.Exit(1)
	}
	sk, err := sign.ParsePrivateKey(config.SecurityLevel, skData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing secret key: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	var sig []byte
	if randomized {
		sig, err = sign.SignRandomized(sk, msgBytes)
	} else {
		sig, err = sign.Sign(sk, msgBytes)
	}
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing: %v\n", err)
		os.Exit(1)
	}

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Signing took: %v\n", elapsed)
	}

	export := SignatureExport{
		Message:   encodeBytes(msgBytes, config.OutputFormat),
		Signature: encodeBytes(sig, config.OutputFormat),
	}
	output, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling output: %v\n", err)
		os.Exit(1)
	}

	writeOutput(output, config.OutputFile)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Signature successful\n")
		fmt.Fprintf(os.Stderr, "Message size: %d bytes\n", len(msgBytes))
		fmt.Fprintf(os.Stderr, "Signature size: %d bytes\n", len(sig))
	}
}

func signVerify(args []string) {
	config := parseConfig(args)
	pkFile := getArg(args, "--public-key", "-pk")
	sigFile := getArg(args, "--signature", "-sig")

	if pkFile == "" || sigFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --public-key and --signature are required\n")
		os.Exit(1)
	}

	msgBytes := readMessage(args)

	pkData, err := loadKeyFromFile(pkFile, "public_key")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading public key: %v\n", err)
		os.Exit(1)
	}
	pk, err := sign.ParsePublicKey(config.SecurityLevel, pkData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing public key: %v\n", err)
		os.Exit(1)
	}

	sigData, err := loadKeyFromFile(sigFile, "signature")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading signature: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	valid := sign.Verify(pk, msgBytes, sigData)
	elapsed := time.Since(start)

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Verification took: %v\n", elapsed)
	}

	result := map[string]interface{}{
		"valid":   valid,
		"message": encodeBytes(msgBytes, config.OutputFormat),
	}
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling output: %v\n", err)
		os.Exit(1)
	}

	writeOutput(output, config.OutputFile)

	if valid {
		if config.Verbose {
			fmt.Fprintf(os.Stderr, "Signature is VALID\n")
		}
		os.Exit(0)
	}
	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Signature is INVALID\n")
	}
	os.Exit(1)
}

func readMessage(args []string) []byte {
	message := getArg(args, "--message", "-m")
	inputFile := getArg(args, "--input", "-i")

	if message != "" {
		return []byte(message)
	}
	if inputFile != "" {
		msgBytes, err := os.ReadFile(inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
			os.Exit(1)
		}
		return msgBytes
	}
	msgBytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading from stdin: %v\n", err)
		os.Exit(1)
	}
	return msgBytes
}

// ============================================================================
// Benchmark Command
// ============================================================================

func handleBenchmark(args []string) {
	config := parseConfig(args)
	iterationsStr := getArg(args, "--iterations", "-n")

	iterations := 10
	if iterationsStr != "" {
		_, _ = fmt.Sscanf(iterationsStr, "%d", &iterations)
	}
	if iterations < 1 {
		iterations = 1
	}

	fmt.Printf("pqlattice Benchmark Results\n")
	fmt.Printf("===========================\n")
	fmt.Printf("Security Level: %s\n", config.SecurityLevel)
	fmt.Printf("Iterations: %d\n\n", iterations)

	fmt.Println("ML-KEM")
	fmt.Println("------")

	var kemKeygenTotal time.Duration
	var kp *kem.KeyPair
	for i := 0; i < iterations; i++ {
		start := time.Now()
		var err error
		kp, err = kem.GenerateKeyPair(config.SecurityLevel)
		kemKeygenTotal += time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "KEM keygen error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("  KeyGen:      %v (avg)\n", kemKeygenTotal/time.Duration(iterations))

	var encapTotal time.Duration
	var encResult *kem.EncapsulationResult
	for i := 0; i < iterations; i++ {
		start := time.Now()
		var err error
		encResult, err = kem.Encapsulate(&kp.PublicKey)
		encapTotal += time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Encapsulate error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("  Encapsulate: %v (avg)\n", encapTotal/time.Duration(iterations))

	var decapTotal time.Duration
	for i := 0; i < iterations; i++ {
		start := time.Now()
		_, err := kem.Decapsulate(&kp.SecretKey, encResult.Ciphertext)
		decapTotal += time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Decapsulate error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("  Decapsulate: %v (avg)\n", decapTotal/time.Duration(iterations))

	fmt.Println()
	fmt.Println("ML-DSA")
	fmt.Println("------")

	testMessage := []byte("pqlattice benchmark message for signature timing runs")

	var signKeygenTotal time.Duration
	var signKp *sign.KeyPair
	for i := 0; i < iterations; i++ {
		start := time.Now()
		var err error
		signKp, err = sign.GenerateKeyPair(config.SecurityLevel)
		signKeygenTotal += time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Sign keygen error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("  KeyGen:      %v (avg)\n", signKeygenTotal/time.Duration(iterations))

	var signTotal time.Duration
	var sig []byte
	for i := 0; i < iterations; i++ {
		start := time.Now()
		var err error
		sig, err = sign.Sign(&signKp.SecretKey, testMessage)
		signTotal += time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Sign error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("  Sign:        %v (avg)\n", signTotal/time.Duration(iterations))

	var verifyTotal time.Duration
	for i := 0; i < iterations; i++ {
		start := time.Now()
		valid := sign.Verify(&signKp.PublicKey, testMessage, sig)
		verifyTotal += time.Since(start)
		if !valid {
			fmt.Fprintf(os.Stderr, "Verify failed\n")
			os.Exit(1)
		}
	}
	fmt.Printf("  Verify:      %v (avg)\n", verifyTotal/time.Duration(iterations))

	fmt.Println()
	fmt.Println("Benchmark complete!")
}

// ============================================================================
// Utility Functions
// ============================================================================

func parseConfig(args []string) CLIConfig {
	config := CLIConfig{
		SecurityLevel: pqlattice.PQ128,
		OutputFormat:  FormatBase64,
	}

	level := getArg(args, "--level", "-l")
	switch level {
	case "128", "PQ-128", "PQ_128":
		config.SecurityLevel = pqlattice.PQ128
	case "192", "PQ-192", "PQ_192":
		config.SecurityLevel = pqlattice.PQ192
	case "":
		// No level specified, use default
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid security level '%s'. Must be one of: 128, 192\n", level)
		os.Exit(1)
	}

	format := getArg(args, "--format", "-f")
	switch format {
	case "hex":
		config.OutputFormat = FormatHex
	case "base64":
		config.OutputFormat = FormatBase64
	case "":
		// No format specified, use default
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid format '%s'. Must be one of: hex, base64\n", format)
		os.Exit(1)
	}

	config.OutputFile = getArg(args, "--output", "-o")
	config.Verbose = hasFlag(args, "--verbose", "-v")
	config.Timing = hasFlag(args, "--timing", "-t")

	return config
}

func getArg(args []string, long, short string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == long || args[i] == short {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, long, short string) bool {
	for _, arg := range args {
		if arg == long || arg == short {
			return true
		}
	}
	return false
}

func encodeBytes(data []byte, format OutputFormat) string {
	switch format {
	case FormatHex:
		return hex.EncodeToString(data)
	default:
		return base64.StdEncoding.EncodeToString(data)
	}
}

func decodeString(s string) ([]byte, error) {
	// Hex strings are also valid base64, so try hex first when the string
	// is plausibly hex, then fall back to base64.
	if b, err := hex.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

// loadKeyFromFile reads a key or artifact from a JSON export file, looking
// up the given field, and decodes its base64 or hex payload. Raw files that
// are not JSON are decoded directly.
func loadKeyFromFile(path, field string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var export map[string]interface{}
	if err := json.Unmarshal(data, &export); err == nil {
		if v, ok := export[field].(string); ok && v != "" {
			return decodeString(v)
		}
		return nil, fmt.Errorf("field %q not found in %s", field, path)
	}

	// Not JSON: treat the file content as an encoded string.
	return decodeString(string(trimSpace(data)))
}

func trimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && (b[start] == ' ' || b[start] == '\n' || b[start] == '\r' || b[start] == '\t') {
		start++
	}
	end := len(b)
	for end > start && (b[end-1] == ' ' || b[end-1] == '\n' || b[end-1] == '\r' || b[end-1] == '\t') {
		end--
	}
	return b[start:end]
}

func writeOutput(data []byte, outputFile string) {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Println(string(data))
}
