package signettoken

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignetTokenManager defines the token lifecycle operations.
//
// Methods:
//   - Encode: Assembles and signs a new access token for a subject
//   - Decode: Verifies a token string and runs the claim-validation pipeline
//   - GenerateRefreshToken: Produces an opaque refresh credential
//   - AccessTokenTTL / RefreshTokenTTL: Configured time-to-live values
//   - LastTokenID / LastSessionID: Identifiers issued by the most recent Encode
type SignetTokenManager interface {
	Encode(subject string, customClaims map[string]any) (string, error)
	Decode(tokenString string) (*TokenPayload, error)
	GenerateRefreshToken() string
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
	LastTokenID() (string, bool)
	LastSessionID() (string, bool)
}

// JWTManager is the concrete implementation of SignetTokenManager backed by
// jwt/v5.
//
// The configuration and keys are immutable after construction, so Decode is
// safe for concurrent use. The last-issued jti/sid fields are convenience
// state updated by Encode without synchronization: callers that Encode
// concurrently must use one manager per goroutine, or ignore the Last*
// accessors and read the identifiers back out of the token instead.
type JWTManager struct {
	config        SignetTokenConfig
	signingMethod jwt.SigningMethod
	privateKey    any // []byte for HMAC, *rsa.PrivateKey, *ecdsa.PrivateKey, or ed25519.PrivateKey
	publicKey     any // []byte for HMAC, *rsa.PublicKey, *ecdsa.PublicKey, or ed25519.PublicKey

	lastTokenID   string
	lastSessionID string
}

// NewSignetTokenManager validates the configuration, resolves the signing
// method, and loads key material. The returned manager is ready for use.
func NewSignetTokenManager(config SignetTokenConfig) (SignetTokenManager, error) {
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	method, err := config.Algorithm.signingMethod()
	if err != nil {
		return nil, err
	}

	manager := &JWTManager{
		config:        config,
		signingMethod: method,
	}

	if err := manager.initializeKeys(); err != nil {
		return nil, fmt.Errorf("failed to initialize keys: %w", err)
	}

	return manager, nil
}

// Encode assembles the claim set for subject, overlays it with the protected
// claims, and signs it into a compact token string.
//
// Custom claims under protected keys (iss, sub, iat, exp, jti, sid) are
// silently discarded. The aud, typ, and nbf claims receive system defaults
// but remain caller-overridable.
func (manager *JWTManager) Encode(subject string, customClaims map[string]any) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject cannot be empty")
	}

	tokenID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate token ID: %w", err)
	}
	sessionID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := time.Now().Unix()
	claims := buildClaims(manager.config, subject, customClaims, now, tokenID, sessionID)

	signedToken, err := jwt.NewWithClaims(manager.signingMethod, claims).SignedString(manager.privateKey)
	if err != nil {
		return "", &SigningError{Err: err}
	}

	manager.lastTokenID = tokenID.String()
	manager.lastSessionID = sessionID.String()

	return signedToken, nil
}

// Decode verifies a compact token string and returns its payload.
//
// Verification order is fixed so the error taxonomy stays deterministic:
// structure, signature, and time window first (via jwt/v5, zero leeway),
// then required claims, issuer, audience, and token type. Crypto/time
// failures always take precedence over semantic claim failures.
func (manager *JWTManager) Decode(tokenString string) (*TokenPayload, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != manager.signingMethod.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return manager.publicKey, nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, &InvalidTokenError{Reason: "unexpected claims format"}
	}

	if err := validateRequiredClaims(claims, manager.config.RequiredClaims); err != nil {
		return nil, err
	}
	if err := validateIssuer(claims, manager.config.Issuer); err != nil {
		return nil, err
	}
	if err := validateAudience(claims, manager.config.Audience); err != nil {
		return nil, err
	}
	if err := validateTokenType(claims); err != nil {
		return nil, err
	}

	return &TokenPayload{claims: claims}, nil
}

// mapParseError translates jwt/v5 parse failures into the error taxonomy.
// Malformed input is checked first, then signature mismatch, then expiry;
// everything else (not yet valid, unverifiable, bad algorithm header) is the
// invalid_token catch-all.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &InvalidTokenError{Reason: "malformed token", Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &SignatureError{Err: err}
	case errors.Is(err, jwt.ErrTokenExpired):
		return &ExpiredTokenError{Err: err}
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return &InvalidTokenError{Reason: "token not valid yet", Err: err}
	default:
		return &InvalidTokenError{Reason: "verification failed", Err: err}
	}
}

// GenerateRefreshToken returns an opaque refresh credential: a 40-character
// lowercase hexadecimal digest derived from the current instant. It carries
// no claims and is not decodable; the caller stores it server-side and is
// expected to honor RefreshTokenTTL when persisting its expiry.
//
// The derivation is timestamp-only, so two calls within the same nanosecond
// return the same value. That coarseness is documented, not a defect.
func (manager *JWTManager) GenerateRefreshToken() string {
	stamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	digest := sha1.Sum([]byte(stamp))
	return hex.EncodeToString(digest[:])
}

// AccessTokenTTL returns the configured access token time-to-live.
func (manager *JWTManager) AccessTokenTTL() time.Duration {
	return manager.config.AccessExpiryDuration
}

// RefreshTokenTTL returns the configured refresh token time-to-live.
func (manager *JWTManager) RefreshTokenTTL() time.Duration {
	return manager.config.RefreshExpiryDuration
}

// LastTokenID returns the jti issued by the most recent Encode on this
// manager. The second return is false before the first successful Encode.
func (manager *JWTManager) LastTokenID() (string, bool) {
	return manager.lastTokenID, manager.lastTokenID != ""
}

// LastSessionID returns the sid issued by the most recent Encode on this
// manager. The second return is false before the first successful Encode.
func (manager *JWTManager) LastSessionID() (string, bool) {
	return manager.lastSessionID, manager.lastSessionID != ""
}
