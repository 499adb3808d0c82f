/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsa_test

import (
	goecdsa "crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trustbloc/kms-go/doc/jose"

	"github.com/trustbloc/oid4vp-mdl-examples/crypto-ext/signers/ecdsa"
	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
)

func TestSigner(t *testing.T) {
	privKey, err := goecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	t.Run("sign ES256", func(t *testing.T) {
		s, err := ecdsa.NewSigner(privKey, "ES256")
		require.NoError(t, err)
		require.Equal(t, jose.Headers{jose.HeaderAlgorithm: "ES256"}, s.Headers())
		require.Equal(t, "ES256", s.Algorithm())
		require.True(t, s.PublicKey().Equal(&privKey.PublicKey))

		msg := []byte("payload")

		sig, err := s.Sign(msg)
		require.NoError(t, err)
		require.Len(t, sig, 64)

		digest := sha256.Sum256(msg)
		r := new(big.Int).SetBytes(sig[:32])
		ss := new(big.Int).SetBytes(sig[32:])
		require.True(t, goecdsa.Verify(&privKey.PublicKey, digest[:], r, ss))
	})

	t.Run("P-521 signature is padded to 132 bytes", func(t *testing.T) {
		p521Key, err := goecdsa.GenerateKey(elliptic.P521(), rand.Reader)
		require.NoError(t, err)

		s, err := ecdsa.NewSigner(p521Key, "ES512")
		require.NoError(t, err)

		sig, err := s.Sign([]byte("payload"))
		require.NoError(t, err)
		require.Len(t, sig, 132)
	})

	t.Run("curve does not match alg", func(t *testing.T) {
		_, err := ecdsa.NewSigner(privKey, "ES384")
		require.ErrorIs(t, err, keyutil.ErrKeyMismatch)

		_, err = ecdsa.NewSigner(privKey, "HS256")
		require.ErrorIs(t, err, keyutil.ErrKeyMismatch)

		_, err = ecdsa.NewSigner(nil, "ES256")
		require.ErrorIs(t, err, keyutil.ErrKeyMismatch)
	})

	t.Run("from JWK", func(t *testing.T) {
		privJWK, err := keyutil.NewECJWK(privKey)
		require.NoError(t, err)

		s, err := ecdsa.NewJWKSigner(privJWK, "ES256")
		require.NoError(t, err)
		require.NotNil(t, s)

		pubJWK, err := keyutil.NewECJWK(&privKey.PublicKey)
		require.NoError(t, err)

		_, err = ecdsa.NewJWKSigner(pubJWK, "ES256")
		require.ErrorIs(t, err, keyutil.ErrKeyMismatch)

		_, err = ecdsa.NewJWKSigner(privJWK, "ES512")
		require.ErrorIs(t, err, keyutil.ErrKeyMismatch)
	})
}
