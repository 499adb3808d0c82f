/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package creator_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trustbloc/kms-go/doc/jose"

	signer "github.com/trustbloc/oid4vp-mdl-examples/crypto-ext/signers/ecdsa"
	"github.com/trustbloc/oid4vp-mdl-examples/jwt"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/creator"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/defaults"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/jwtproofs/es256"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/jwtproofs/es384"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/jwtproofs/es512"
	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
)

func TestProofCreator_AllJWTAlgs(t *testing.T) {
	tests := []struct {
		alg   string
		curve elliptic.Curve
	}{
		{alg: "ES256", curve: elliptic.P256()},
		{alg: "ES384", curve: elliptic.P384()},
		{alg: "ES512", curve: elliptic.P521()},
	}

	for _, tc := range tests {
		t.Run(tc.alg, func(t *testing.T) {
			privKey, err := ecdsa.GenerateKey(tc.curve, rand.Reader)
			require.NoError(t, err)

			s, err := signer.NewSigner(privKey, tc.alg)
			require.NoError(t, err)

			c := creator.New(
				creator.WithJWTAlg(es256.New(), s),
				creator.WithJWTAlg(es384.New(), s),
				creator.WithJWTAlg(es512.New(), s),
			)

			params := jwt.SignParameters{JWTAlg: tc.alg}

			headers, err := c.CreateJWTHeaders(params)
			require.NoError(t, err)

			alg, ok := headers.Algorithm()
			require.True(t, ok)
			require.Equal(t, tc.alg, alg)

			msg := []byte("header.payload")

			sig, err := c.SignJWT(params, msg)
			require.NoError(t, err)

			pubJWK, err := keyutil.NewECJWK(&privKey.PublicKey)
			require.NoError(t, err)

			require.NoError(t, defaults.NewEmbeddedJWKProofChecker(pubJWK).CheckJWTProof(headers, nil, msg, sig))
		})
	}
}

func TestProofCreator_CreateJWTHeaders(t *testing.T) {
	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	s, err := signer.NewSigner(privKey, "ES256")
	require.NoError(t, err)

	c := creator.New(creator.WithJWTAlg(es256.New(), s))

	t.Run("with key id", func(t *testing.T) {
		headers, err := c.CreateJWTHeaders(jwt.SignParameters{JWTAlg: "ES256", KeyID: "Cv_a"})
		require.NoError(t, err)
		require.Equal(t, jose.Headers{jose.HeaderAlgorithm: "ES256", jose.HeaderKeyID: "Cv_a"}, headers)
	})

	t.Run("unsupported alg", func(t *testing.T) {
		_, err := c.CreateJWTHeaders(jwt.SignParameters{JWTAlg: "EdDSA"})
		require.EqualError(t, err, "unsupported jwt alg: EdDSA")

		_, err = c.SignJWT(jwt.SignParameters{JWTAlg: "EdDSA"}, []byte("msg"))
		require.EqualError(t, err, "unsupported jwt alg: EdDSA")
	})
}
