// tests_helpers.go

package signettoken

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test Helper Functions

const (
	testSymmetricKey = "test-secret-32-bytes-long-1234567890"
	testIssuer       = "auth.signet.test"
)

func testConfig() SignetTokenConfig {
	return DefaultSignetTokenConfig(testSymmetricKey, testIssuer)
}

func testManager(t *testing.T) SignetTokenManager {
	t.Helper()
	manager, err := NewSignetTokenManager(testConfig())
	require.NoError(t, err)
	return manager
}

func writeTempPEM(t *testing.T, name, blockType string, der []byte) string {
	t.Helper()

	block := &pem.Block{Type: blockType, Bytes: der}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0600))
	return path
}

func generateTempRSAPair(t *testing.T) (privatePath, publicPath string) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePath = writeTempPEM(t, "private.pem", "RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(privateKey))

	publicBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)
	publicPath = writeTempPEM(t, "public.pem", "PUBLIC KEY", publicBytes)

	return privatePath, publicPath
}

func generateTempECDSAPair(t *testing.T) (privatePath, publicPath string) {
	t.Helper()

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	privateBytes, err := x509.MarshalECPrivateKey(privateKey)
	require.NoError(t, err)
	privatePath = writeTempPEM(t, "ec_private.pem", "EC PRIVATE KEY", privateBytes)

	publicBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)
	publicPath = writeTempPEM(t, "ec_public.pem", "PUBLIC KEY", publicBytes)

	return privatePath, publicPath
}

func generateTempEd25519Pair(t *testing.T) (privatePath, publicPath string) {
	t.Helper()

	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	privateBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	require.NoError(t, err)
	privatePath = writeTempPEM(t, "ed_private.pem", "PRIVATE KEY", privateBytes)

	publicBytes, err := x509.MarshalPKIXPublicKey(publicKey)
	require.NoError(t, err)
	publicPath = writeTempPEM(t, "ed_public.pem", "PUBLIC KEY", publicBytes)

	return privatePath, publicPath
}
