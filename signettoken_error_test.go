// signettoken_error_test.go

package signettoken

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signTestClaims signs an arbitrary claim map with the shared test secret,
// bypassing Encode so tests can forge tokens the manager would never issue.
func signTestClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSymmetricKey))
	require.NoError(t, err)
	return signed
}

func forgedClaims(overrides jwt.MapClaims) jwt.MapClaims {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"iss": testIssuer,
		"sub": "user-42",
		"iat": now,
		"exp": now + 3600,
		"nbf": now - 5,
		"typ": AccessTokenType,
		"jti": uuid.NewString(),
		"sid": uuid.NewString(),
	}
	for name, value := range overrides {
		claims[name] = value
	}
	return claims
}

func TestDecodeErrorTaxonomy(t *testing.T) {
	manager := testManager(t)

	t.Run("Tampered Signature Is Invalid Signature Not Invalid Token", func(t *testing.T) {
		token, err := manager.Encode("user-42", nil)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[10] == 'A' {
			sig[10] = 'B'
		} else {
			sig[10] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		_, err = manager.Decode(tampered)
		require.Error(t, err)

		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, KindInvalidSignature, kind)
	})

	t.Run("Two Segments Is Invalid Token Citing Segment Count", func(t *testing.T) {
		_, err := manager.Decode("only.twosegments")
		require.Error(t, err)

		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, KindInvalidToken, kind)
		assert.Contains(t, err.Error(), "segments")
	})

	t.Run("Expired Token", func(t *testing.T) {
		now := time.Now().Unix()
		token := signTestClaims(t, forgedClaims(jwt.MapClaims{
			"iat": now - 7200,
			"exp": now - 3600,
			"nbf": now - 7200,
		}))

		_, err := manager.Decode(token)
		require.Error(t, err)

		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, KindExpiredToken, kind)
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})

	t.Run("Not Yet Valid Is Invalid Token Subtype", func(t *testing.T) {
		now := time.Now().Unix()
		token := signTestClaims(t, forgedClaims(jwt.MapClaims{
			"nbf": now + 3600,
		}))

		_, err := manager.Decode(token)
		require.Error(t, err)

		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, KindInvalidToken, kind)
	})

	t.Run("Garbage Input", func(t *testing.T) {
		_, err := manager.Decode("not-a-jwt")
		require.Error(t, err)

		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, KindInvalidToken, kind)
	})
}

func TestDecodeClaimPipeline(t *testing.T) {
	manager := testManager(t)

	t.Run("Missing Claims Carries Full List", func(t *testing.T) {
		now := time.Now().Unix()
		token := signTestClaims(t, jwt.MapClaims{
			"iss": testIssuer,
			"exp": now + 3600,
			"typ": AccessTokenType,
		})

		_, err := manager.Decode(token)
		require.Error(t, err)

		var missing *MissingClaimsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"jti", "iat", "sub"}, missing.Claims)

		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, KindMissingClaims, kind)
	})

	t.Run("Empty Required Custom Claim", func(t *testing.T) {
		config := testConfig()
		config.RequiredClaims = append(DefaultRequiredClaims(), "role")
		strict, err := NewSignetTokenManager(config)
		require.NoError(t, err)

		token, err := strict.Encode("user-42", map[string]any{"role": ""})
		require.NoError(t, err)

		_, err = strict.Decode(token)
		require.Error(t, err)

		var missing *MissingClaimsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"role"}, missing.Claims)
	})

	t.Run("Wrong Issuer", func(t *testing.T) {
		token := signTestClaims(t, forgedClaims(jwt.MapClaims{"iss": "evil.example.com"}))

		_, err := manager.Decode(token)
		require.Error(t, err)

		var invalid *InvalidClaimError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, ClaimIssuer, invalid.Claim)
		assert.Equal(t, "evil.example.com", invalid.Actual)
		assert.Equal(t, testIssuer, invalid.Expected)
	})

	t.Run("Missing Claims Checked Before Issuer", func(t *testing.T) {
		now := time.Now().Unix()
		token := signTestClaims(t, jwt.MapClaims{
			"iss": "evil.example.com",
			"exp": now + 3600,
			"iat": now,
			"typ": AccessTokenType,
			"jti": uuid.NewString(),
		})

		_, err := manager.Decode(token)
		require.Error(t, err)

		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, KindMissingClaims, kind)
	})

	t.Run("Wrong Token Type", func(t *testing.T) {
		token := signTestClaims(t, forgedClaims(jwt.MapClaims{"typ": "refresh"}))

		_, err := manager.Decode(token)
		require.Error(t, err)

		var invalid *InvalidClaimError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, ClaimTokenType, invalid.Claim)
		assert.Equal(t, "refresh", invalid.Actual)
		assert.Equal(t, AccessTokenType, invalid.Expected)
	})
}

func TestAudienceEnforcement(t *testing.T) {
	t.Run("Nil Config Audience Accepts Anything", func(t *testing.T) {
		manager := testManager(t)

		withAud, err := manager.Encode("user-42", map[string]any{"aud": []string{"https://whatever"}})
		require.NoError(t, err)
		_, err = manager.Decode(withAud)
		require.NoError(t, err)

		withoutAud, err := manager.Encode("user-42", nil)
		require.NoError(t, err)
		_, err = manager.Decode(withoutAud)
		require.NoError(t, err)
	})

	t.Run("Disjoint Audience Rejected With Both Lists", func(t *testing.T) {
		config := testConfig()
		config.Audience = []string{"https://a"}
		manager, err := NewSignetTokenManager(config)
		require.NoError(t, err)

		token, err := manager.Encode("user-42", map[string]any{"aud": []string{"https://b"}})
		require.NoError(t, err)

		_, err = manager.Decode(token)
		require.Error(t, err)

		var invalid *InvalidClaimError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, ClaimAudience, invalid.Claim)
		assert.Equal(t, []string{"https://b"}, invalid.Actual)
		assert.Equal(t, []string{"https://a"}, invalid.Expected)
	})

	t.Run("Config Audience Used As Default", func(t *testing.T) {
		config := testConfig()
		config.Audience = []string{"https://a"}
		manager, err := NewSignetTokenManager(config)
		require.NoError(t, err)

		token, err := manager.Encode("user-42", nil)
		require.NoError(t, err)

		payload, err := manager.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a"}, payload.Audience())
	})
}

func TestSecurityScenarios(t *testing.T) {
	t.Run("Algorithm Confusion Attack", func(t *testing.T) {
		privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		rsaToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, forgedClaims(nil)).SignedString(privateKey)
		require.NoError(t, err)

		manager := testManager(t)
		_, err = manager.Decode(rsaToken)
		require.Error(t, err)

		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, KindInvalidToken, kind)
		assert.Contains(t, err.Error(), "unexpected signing method")
	})

	t.Run("None Algorithm Attack", func(t *testing.T) {
		noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, forgedClaims(nil)).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		manager := testManager(t)
		_, err = manager.Decode(noneToken)
		require.Error(t, err)

		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, KindInvalidToken, kind)
	})

	t.Run("Wrong Symmetric Key", func(t *testing.T) {
		manager := testManager(t)
		token, err := manager.Encode("user-42", nil)
		require.NoError(t, err)

		other, err := NewSignetTokenManager(DefaultSignetTokenConfig("another-32-byte-secret-key-0987654321", testIssuer))
		require.NoError(t, err)

		_, err = other.Decode(token)
		require.Error(t, err)

		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, KindInvalidSignature, kind)
	})
}

func TestSigningError(t *testing.T) {
	// Key material structurally incompatible with the algorithm is a
	// configuration defect surfaced as signing_error.
	manager := &JWTManager{
		config:        testConfig(),
		signingMethod: jwt.SigningMethodHS256,
		privateKey:    12345,
	}

	_, err := manager.Encode("user-42", nil)
	require.Error(t, err)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindSigningError, kind)
}

func TestKindOf(t *testing.T) {
	t.Run("Foreign Error", func(t *testing.T) {
		_, ok := KindOf(errors.New("plain"))
		assert.False(t, ok)
	})

	t.Run("Wrapped Package Error", func(t *testing.T) {
		wrapped := &InvalidClaimError{Claim: "iss", Actual: "a", Expected: "b"}
		kind, ok := KindOf(wrapped)
		require.True(t, ok)
		assert.Equal(t, KindInvalidClaim, kind)
	})

	t.Run("Expected Omitted From Message When Nil", func(t *testing.T) {
		err := &InvalidClaimError{Claim: "aud", Actual: "x"}
		assert.Equal(t, "invalid aud claim: got x", err.Error())
	})
}
