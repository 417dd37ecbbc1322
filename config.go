package signettoken

import (
	"fmt"
	"time"
)

// Defaults applied by DefaultSignetTokenConfig.
const (
	DefaultAccessExpiryDuration  = time.Hour           // 60 minutes
	DefaultRefreshExpiryDuration = 14 * 24 * time.Hour // 20160 minutes
)

// DefaultRequiredClaims returns the claims a decoded token must carry by
// default. A fresh slice is returned on every call so callers cannot mutate
// the defaults of configs built later.
func DefaultRequiredClaims() []string {
	return []string{ClaimIssuer, ClaimTokenID, ClaimExpiresAt, ClaimIssuedAt, ClaimTokenType, ClaimSubject}
}

// SignetTokenConfig holds the configuration for token issuance and
// verification. Once constructed and handed to a manager it is never mutated
// and is safe to share across concurrent managers.
//
// Fields:
//   - Algorithm: Signing algorithm (one of SupportedAlgorithms)
//   - SymmetricKey: Shared secret for the HS* family (min 32 bytes); must be empty otherwise
//   - PrivateKeyPath: Path to the PEM-encoded private key for asymmetric algorithms
//   - PublicKeyPath: Path to the PEM-encoded public key or certificate for asymmetric algorithms
//   - Issuer: Value of the iss claim; decoded tokens must match it exactly
//   - Audience: Acceptable audience values; nil disables audience validation entirely
//   - AccessExpiryDuration: Access token time-to-live
//   - RefreshExpiryDuration: Refresh token time-to-live the caller is expected to honor
//   - RequiredClaims: Claims that must be present and non-empty after decode
type SignetTokenConfig struct {
	Algorithm             SigningAlgorithm
	SymmetricKey          string
	PrivateKeyPath        string
	PublicKeyPath         string
	Issuer                string
	Audience              []string
	AccessExpiryDuration  time.Duration
	RefreshExpiryDuration time.Duration
	RequiredClaims        []string
}

// NewSignetTokenConfig creates a fully specified SignetTokenConfig. Every
// value is explicit; nothing is defaulted. Use DefaultSignetTokenConfig for
// the common HMAC setup.
func NewSignetTokenConfig(
	algorithm SigningAlgorithm,
	symmetricKey string,
	privateKeyPath string,
	publicKeyPath string,
	issuer string,
	audience []string,
	accessExpiryDuration time.Duration,
	refreshExpiryDuration time.Duration,
	requiredClaims []string,
) SignetTokenConfig {
	return SignetTokenConfig{
		Algorithm:             algorithm,
		SymmetricKey:          symmetricKey,
		PrivateKeyPath:        privateKeyPath,
		PublicKeyPath:         publicKeyPath,
		Issuer:                issuer,
		Audience:              audience,
		AccessExpiryDuration:  accessExpiryDuration,
		RefreshExpiryDuration: refreshExpiryDuration,
		RequiredClaims:        requiredClaims,
	}
}

// DefaultSignetTokenConfig returns an HS256 configuration with the default
// TTLs and required-claims list. Audience validation is disabled.
func DefaultSignetTokenConfig(symmetricKey, issuer string) SignetTokenConfig {
	return SignetTokenConfig{
		Algorithm:             HS256,
		SymmetricKey:          symmetricKey,
		Issuer:                issuer,
		AccessExpiryDuration:  DefaultAccessExpiryDuration,
		RefreshExpiryDuration: DefaultRefreshExpiryDuration,
		RequiredClaims:        DefaultRequiredClaims(),
	}
}

// validateConfig checks the configuration for completeness before any key
// material is loaded.
func validateConfig(config *SignetTokenConfig) error {
	if _, err := config.Algorithm.signingMethod(); err != nil {
		return err
	}

	switch {
	case config.Algorithm.IsSymmetric():
		if config.SymmetricKey == "" {
			return fmt.Errorf("symmetric key is required for algorithm %s", config.Algorithm)
		}
		if len(config.SymmetricKey) < 32 {
			return fmt.Errorf("symmetric key must be at least 32 bytes")
		}
		if config.PrivateKeyPath != "" || config.PublicKeyPath != "" {
			return fmt.Errorf("private and public key paths must be empty for symmetric signing")
		}
	case config.Algorithm.IsAsymmetric():
		if config.PrivateKeyPath == "" || config.PublicKeyPath == "" {
			return fmt.Errorf("private and public key paths are required for algorithm %s", config.Algorithm)
		}
		if config.SymmetricKey != "" {
			return fmt.Errorf("symmetric key must be empty for asymmetric signing")
		}
		if err := checkFilePermissions(config.PrivateKeyPath, 0600); err != nil {
			return fmt.Errorf("insecure private key file permissions: %w", err)
		}
		if err := checkFilePermissions(config.PublicKeyPath, 0600); err != nil {
			return fmt.Errorf("insecure public key file permissions: %w", err)
		}
	}

	if config.Issuer == "" {
		return fmt.Errorf("issuer is required")
	}
	if config.AccessExpiryDuration <= 0 {
		return fmt.Errorf("access expiry duration must be positive")
	}
	if config.RefreshExpiryDuration <= 0 {
		return fmt.Errorf("refresh expiry duration must be positive")
	}

	return nil
}
