// Package signettoken provides a JWT-based token issuance and validation engine
// for session and identity propagation in HTTP-based services.
//
// Features:
// - Encoding of access tokens with protected, system-controlled claims (iss, sub, iat, exp, jti, sid)
// - Decoding with signature verification followed by a deterministic claim-validation pipeline
// - Support for symmetric (HMAC) and asymmetric (RSA, RSA-PSS, ECDSA, EdDSA) signing
// - Time-ordered UUIDv7 token and session identifiers
// - Opaque refresh token generation for caller-managed refresh flows
// - A typed error taxonomy with stable machine-readable kinds
package signettoken
