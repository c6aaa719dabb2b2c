// Package authkit provides credential and session-token building blocks.
//
// This is a Go module (github.com/skillsenselab/authkit) with focused subpackages:
//
//   - token         — Signed expiring token issuance and verification
//   - password      — Password hashing (bcrypt, argon2id), strength policy, generation
//   - random        — crypto/rand-backed bytes, hex strings, uniform picks, shuffling
//   - sanitize      — Markup escaping and control-character stripping for user input
//   - validation    — Email/password format validation, fluent and struct-tag based
//   - authctx       — Type-safe request context propagation for verified claims
//   - errors        — Error taxonomy with codes, HTTP statuses, and response shapes
//   - logger        — Structured logging on zerolog
//   - observability — OpenTelemetry metrics and tracing for credential operations
//   - config        — Configuration loading from files and environment
//   - version       — Build version stamping
//
// The root package carries the shared contracts:
//
//   - TokenVerifier — interface for verifying tokens (signed, opaque, session)
//   - TokenIssuer   — interface for issuing signed tokens
//   - Registry      — named TokenVerifier lookup, safe for concurrent use
//   - Config        — aggregate configuration with optional components
//
// All packages follow the same conventions: Config structs with
// ApplyDefaults()/Validate(), constructor functions, and mapstructure tags
// for config file loading.
//
// Config takes its components as pointers, so a host configures only the
// features it uses:
//
//	enabled: true
//	token:
//	  secret: "my-secret"
//	  access_token_ttl: "15m"
//	password:
//	  algorithm: "bcrypt"
//	  bcrypt_cost: 12
//
// Register verifiers for use with middleware:
//
//	reg := authkit.NewRegistry()
//	reg.Register("access", tokenSvc)
//	verifier, _ := reg.Default()
package authkit
