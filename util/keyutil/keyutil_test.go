/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keyutil_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"math/big"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"

	. "github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
)

const encryptionKey = `{
  "kty": "EC",
  "d": "_Hc7lRd1Zt8sDAb1-pCgI9qS3oobKNa-mjRDhaKjH90",
  "use": "enc",
  "crv": "P-256",
  "x": "xVLtZaPPK-xvruh1fEClNVTR6RCZBsQai2-DrnyKkxg",
  "y": "-5-QtFqJqGwOjEL3Ut89nrE0MeaUp5RozksKHpBiyw0",
  "alg": "ECDH-ES",
  "kid": "P8p0virRlh6fAkh5-YSeHt4EIv-hFGneYk14d8DF51w"
}`

func TestParseJWK(t *testing.T) {
	k, err := ParseJWK([]byte(encryptionKey))
	require.NoError(t, err)
	require.Equal(t, KeyTypeEC, k.Kty)
	require.Equal(t, "P-256", k.Crv)
	require.Equal(t, UseEncryption, k.Use)
	require.Equal(t, AlgECDHES, k.Algorithm)

	priv, err := ECDSAPrivateKey(k)
	require.NoError(t, err)

	pub, err := ECDSAPublicKey(k)
	require.NoError(t, err)
	require.True(t, pub.Equal(&priv.PublicKey))

	require.NoError(t, CheckThumbprintKID(k))

	_, err = ParseJWK([]byte("{"))
	require.ErrorContains(t, err, "parse jwk")
}

func TestPublicJWK(t *testing.T) {
	k, err := ParseJWK([]byte(encryptionKey))
	require.NoError(t, err)

	pub, err := PublicJWK(k)
	require.NoError(t, err)
	require.True(t, pub.IsPublic())
	require.Equal(t, k.KeyID, pub.KeyID)
	require.Equal(t, k.Use, pub.Use)
	require.Equal(t, k.Algorithm, pub.Algorithm)
	require.True(t, SamePublicKey(k, pub))

	_, err = ECDSAPrivateKey(pub)
	require.ErrorIs(t, err, ErrKeyMismatch)

	tp, err := Thumbprint(pub)
	require.NoError(t, err)
	require.Equal(t, k.KeyID, tp)

	_, err = PublicJWK(nil)
	require.ErrorIs(t, err, ErrKeyMismatch)
}

func TestCheckSigningKey(t *testing.T) {
	tests := []struct {
		name  string
		curve elliptic.Curve
		alg   string
		err   bool
	}{
		{name: "ES256", curve: elliptic.P256(), alg: "ES256"},
		{name: "ES384", curve: elliptic.P384(), alg: "ES384"},
		{name: "ES512", curve: elliptic.P521(), alg: "ES512"},
		{name: "ES256K", curve: btcec.S256(), alg: "ES256K"},
		{name: "secp256k1 key with ES256", curve: btcec.S256(), alg: "ES256", err: true},
		{name: "P-256 key with ES256K", curve: elliptic.P256(), alg: "ES256K", err: true},
		{name: "P-256 key with ES384", curve: elliptic.P256(), alg: "ES384", err: true},
		{name: "P-521 key with ES256", curve: elliptic.P521(), alg: "ES256", err: true},
		{name: "unsupported alg", curve: elliptic.P256(), alg: "EdDSA", err: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			priv, err := ecdsa.GenerateKey(tc.curve, rand.Reader)
			require.NoError(t, err)

			k, err := NewECJWK(priv)
			require.NoError(t, err)

			got, err := CheckSigningKey(k, tc.alg)
			if tc.err {
				require.ErrorIs(t, err, ErrKeyMismatch)
				require.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.Equal(t, priv, got)
		})
	}

	t.Run("key alg differs", func(t *testing.T) {
		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		k, err := NewECJWK(priv)
		require.NoError(t, err)

		k.Algorithm = "ES256K"

		_, err = CheckSigningKey(k, "ES256")
		require.ErrorIs(t, err, ErrKeyMismatch)
	})
}

func TestCurveName(t *testing.T) {
	require.Equal(t, "P-256", CurveName(elliptic.P256()))
	require.Equal(t, "P-521", CurveName(elliptic.P521()))
	require.Equal(t, CurveSecp256k1, CurveName(btcec.S256()))

	sa, err := LookupSigningAlgorithm("ES256K")
	require.NoError(t, err)
	require.Equal(t, CurveSecp256k1, sa.Curve)
}

func TestNewECJWK(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)

	k, err := NewECJWK(&priv.PublicKey)
	require.NoError(t, err)
	require.Equal(t, "P-384", k.Crv)
	require.True(t, k.IsPublic())

	_, edPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	_, err = NewECJWK(edPriv)
	require.ErrorIs(t, err, ErrKeyMismatch)

	edJWK, err := ParseJWK([]byte(`{"kty":"OKP","crv":"Ed25519","x":"11qYAYKxCrfVS_7TyWQHOg7hcvPapiMlrwIaaPcHURo"}`))
	require.NoError(t, err)

	_, err = ECDSAPublicKey(edJWK)
	require.ErrorIs(t, err, ErrKeyMismatch)
	require.False(t, SamePublicKey(edJWK, k))
}

func TestCertificateChain(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "example.com"},
		DNSNames:     []string{"example.com"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &priv.PublicKey, priv)
	require.NoError(t, err)

	enc := base64.StdEncoding.EncodeToString(der)

	t.Run("whitespace in base64", func(t *testing.T) {
		certs, err := ParseCertificateChain([]string{enc[:20] + " \n" + enc[20:]})
		require.NoError(t, err)
		require.Len(t, certs, 1)
		require.Equal(t, []string{"example.com"}, certs[0].DNSNames)
	})

	t.Run("certifies key", func(t *testing.T) {
		require.NoError(t, CheckCertificateKey([]string{enc}, &priv.PublicKey))

		other, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		require.ErrorIs(t, CheckCertificateKey([]string{enc}, &other.PublicKey), ErrKeyMismatch)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ParseCertificateChain(nil)
		require.ErrorContains(t, err, "empty certificate chain")

		_, err = ParseCertificateChain([]string{"!!"})
		require.ErrorContains(t, err, "decode certificate 0")

		_, err = ParseCertificateChain([]string{"AAAA"})
		require.ErrorContains(t, err, "parse certificate 0")
	})
}
