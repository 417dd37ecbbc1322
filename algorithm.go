package signettoken

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SigningAlgorithm identifies one of the supported JWT signing algorithms.
//
// Algorithms are grouped by key-shape requirement: the HS* family uses a shared
// secret (symmetric), everything else uses a public/private key pair
// (asymmetric). The signing dispatch itself is delegated to jwt/v5.
type SigningAlgorithm string

const (
	HS256 SigningAlgorithm = "HS256" // HMAC with SHA-256
	HS384 SigningAlgorithm = "HS384" // HMAC with SHA-384
	HS512 SigningAlgorithm = "HS512" // HMAC with SHA-512
	RS256 SigningAlgorithm = "RS256" // RSA PKCS#1 v1.5 with SHA-256
	RS384 SigningAlgorithm = "RS384" // RSA PKCS#1 v1.5 with SHA-384
	RS512 SigningAlgorithm = "RS512" // RSA PKCS#1 v1.5 with SHA-512
	PS256 SigningAlgorithm = "PS256" // RSA-PSS with SHA-256
	PS384 SigningAlgorithm = "PS384" // RSA-PSS with SHA-384
	PS512 SigningAlgorithm = "PS512" // RSA-PSS with SHA-512
	ES256 SigningAlgorithm = "ES256" // ECDSA with P-256 and SHA-256
	ES384 SigningAlgorithm = "ES384" // ECDSA with P-384 and SHA-384
	ES512 SigningAlgorithm = "ES512" // ECDSA with P-521 and SHA-512
	EdDSA SigningAlgorithm = "EdDSA" // Ed25519
)

// SupportedAlgorithms returns every algorithm a SignetTokenConfig may carry.
func SupportedAlgorithms() []SigningAlgorithm {
	return []SigningAlgorithm{
		HS256, HS384, HS512,
		RS256, RS384, RS512,
		PS256, PS384, PS512,
		ES256, ES384, ES512,
		EdDSA,
	}
}

// IsSymmetric reports whether the algorithm signs with a shared secret.
func (a SigningAlgorithm) IsSymmetric() bool {
	switch a {
	case HS256, HS384, HS512:
		return true
	}
	return false
}

// IsAsymmetric reports whether the algorithm signs with a key pair.
func (a SigningAlgorithm) IsAsymmetric() bool {
	switch a {
	case RS256, RS384, RS512, PS256, PS384, PS512, ES256, ES384, ES512, EdDSA:
		return true
	}
	return false
}

// IsRSAFamily reports whether the algorithm requires RSA key material.
// Both the PKCS#1 v1.5 (RS*) and PSS (PS*) variants share the same key shape.
func (a SigningAlgorithm) IsRSAFamily() bool {
	switch a {
	case RS256, RS384, RS512, PS256, PS384, PS512:
		return true
	}
	return false
}

// IsECDSAFamily reports whether the algorithm requires ECDSA key material.
func (a SigningAlgorithm) IsECDSAFamily() bool {
	switch a {
	case ES256, ES384, ES512:
		return true
	}
	return false
}

// signingMethod resolves the algorithm tag to the jwt/v5 signing method.
// Unsecured ("none") tokens are never resolvable.
func (a SigningAlgorithm) signingMethod() (jwt.SigningMethod, error) {
	switch a {
	case HS256:
		return jwt.SigningMethodHS256, nil
	case HS384:
		return jwt.SigningMethodHS384, nil
	case HS512:
		return jwt.SigningMethodHS512, nil
	case RS256:
		return jwt.SigningMethodRS256, nil
	case RS384:
		return jwt.SigningMethodRS384, nil
	case RS512:
		return jwt.SigningMethodRS512, nil
	case PS256:
		return jwt.SigningMethodPS256, nil
	case PS384:
		return jwt.SigningMethodPS384, nil
	case PS512:
		return jwt.SigningMethodPS512, nil
	case ES256:
		return jwt.SigningMethodES256, nil
	case ES384:
		return jwt.SigningMethodES384, nil
	case ES512:
		return jwt.SigningMethodES512, nil
	case EdDSA:
		return jwt.SigningMethodEdDSA, nil
	case "none":
		return nil, fmt.Errorf("unsecured tokens are disabled")
	default:
		return nil, fmt.Errorf("unsupported signing algorithm: %s", a)
	}
}
