/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsa_test

import (
	gocrypto "crypto"
	goecdsa "crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	gojose "github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/require"
	"github.com/trustbloc/kms-go/doc/jose/jwk"
	"github.com/trustbloc/kms-go/doc/jose/jwk/jwksupport"
	kmsapi "github.com/trustbloc/kms-go/spi/kms"

	"github.com/trustbloc/oid4vp-mdl-examples/crypto-ext/pubkey"
	signer "github.com/trustbloc/oid4vp-mdl-examples/crypto-ext/signers/ecdsa"
	"github.com/trustbloc/oid4vp-mdl-examples/crypto-ext/verifiers/ecdsa"
)

func TestNewECDSAES256SignatureVerifier(t *testing.T) {
	msg := []byte("test message")

	t.Run("happy path", func(t *testing.T) {
		tests := []struct {
			sVerifier *ecdsa.Verifier
			curve     elliptic.Curve
			algorithm string
			keyType   kmsapi.KeyType
		}{
			{
				sVerifier: ecdsa.NewES256(),
				curve:     elliptic.P256(),
				keyType:   kmsapi.ECDSAP256TypeIEEEP1363,
				algorithm: "ES256",
			},
			{
				sVerifier: ecdsa.NewES384(),
				curve:     elliptic.P384(),
				keyType:   kmsapi.ECDSAP384TypeIEEEP1363,
				algorithm: "ES384",
			},
			{
				sVerifier: ecdsa.NewES512(),
				curve:     elliptic.P521(),
				keyType:   kmsapi.ECDSAP521TypeIEEEP1363,
				algorithm: "ES512",
			},
		}

		for _, test := range tests {
			tc := test
			t.Run(tc.algorithm, func(t *testing.T) {
				privKey, err := goecdsa.GenerateKey(tc.curve, rand.Reader)
				require.NoError(t, err)

				s, err := signer.NewSigner(privKey, tc.algorithm)
				require.NoError(t, err)

				msgSig, err := s.Sign(msg)
				require.NoError(t, err)

				pubJWK, err := jwksupport.JWKFromKey(&privKey.PublicKey)
				require.NoError(t, err)

				err = tc.sVerifier.Verify(msgSig, msg, pubkey.FromJWK(tc.keyType, pubJWK))
				require.NoError(t, err)

				err = tc.sVerifier.Verify(msgSig, msg, pubkey.FromBytes(tc.keyType,
					elliptic.Marshal(tc.curve, privKey.X, privKey.Y))) //nolint:staticcheck
				require.NoError(t, err)
			})
		}

		t.Run("ES256K", func(t *testing.T) {
			privKey, err := goecdsa.GenerateKey(btcec.S256(), rand.Reader)
			require.NoError(t, err)

			hasher := gocrypto.SHA256.New()
			_, _ = hasher.Write(msg)

			sig, err := btcecSign(privKey, hasher.Sum(nil))
			require.NoError(t, err)

			err = ecdsa.NewSecp256k1().Verify(sig, msg, pubkey.FromBytes(kmsapi.ECDSASecp256k1TypeIEEEP1363,
				elliptic.Marshal(btcec.S256(), privKey.X, privKey.Y))) //nolint:staticcheck
			require.NoError(t, err)
		})
	})

	v := ecdsa.NewES256()
	require.NotNil(t, v)

	privKey, err := goecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	s, err := signer.NewSigner(privKey, "ES256")
	require.NoError(t, err)

	msgSig, err := s.Sign(msg)
	require.NoError(t, err)

	pubKey := pubkey.FromBytes(kmsapi.ECDSAP256TypeIEEEP1363,
		elliptic.Marshal(elliptic.P256(), privKey.X, privKey.Y)) //nolint:staticcheck

	t.Run("verify with public key bytes", func(t *testing.T) {
		verifyError := v.Verify(msgSig, msg, pubKey)

		require.NoError(t, verifyError)
	})

	t.Run("tampered message", func(t *testing.T) {
		verifyError := v.Verify(msgSig, []byte("test messagf"), pubKey)

		require.EqualError(t, verifyError, "ecdsa: invalid signature")
	})

	t.Run("invalid public key", func(t *testing.T) {
		err = v.Verify(msgSig, msg, &pubkey.PublicKey{
			Type:     kmsapi.AES256GCM,
			BytesKey: &pubkey.BytesKey{Bytes: []byte("invalid-key")},
		})
		require.Error(t, err)
		require.EqualError(t, err, "unsupported key type AES256GCM")
	})

	t.Run("invalid public key bytes", func(t *testing.T) {
		err = v.Verify(msgSig, msg, &pubkey.PublicKey{
			Type:     kmsapi.ECDSAP256TypeIEEEP1363,
			BytesKey: &pubkey.BytesKey{Bytes: []byte("invalid-key")},
		})
		require.Error(t, err)
		require.ErrorContains(t, err, "invalid public key bytes")
	})

	t.Run("invalid public key type", func(t *testing.T) {
		err = v.Verify(msgSig, msg, &pubkey.PublicKey{
			Type: kmsapi.ECDSAP256TypeIEEEP1363,
			JWK: &jwk.JWK{
				JSONWebKey: gojose.JSONWebKey{
					Key: "foo",
				},
				Kty: "RSA",
			},
		})
		require.Error(t, err)
		require.EqualError(t, err, "ecdsa: invalid public key type")
	})

	t.Run("key on other curve", func(t *testing.T) {
		otherKey, err := goecdsa.GenerateKey(elliptic.P384(), rand.Reader)
		require.NoError(t, err)

		err = v.Verify(msgSig, msg, &pubkey.PublicKey{
			Type: kmsapi.ECDSAP256TypeIEEEP1363,
			JWK:  &jwk.JWK{JSONWebKey: gojose.JSONWebKey{Key: &otherKey.PublicKey}, Kty: "EC", Crv: "P-384"},
		})
		require.ErrorContains(t, err, "does not match verifier curve")
	})

	t.Run("invalid signature", func(t *testing.T) {
		verifyError := v.Verify([]byte("signature of invalid size"), msg, pubKey)
		require.Error(t, verifyError)
		require.EqualError(t, verifyError, "ecdsa: invalid signature size")

		emptySig := make([]byte, 64)
		verifyError = v.Verify(emptySig, msg, pubKey)
		require.Error(t, verifyError)
		require.EqualError(t, verifyError, "ecdsa: invalid signature")
	})
}

func btcecSign(privKey *goecdsa.PrivateKey, hash []byte) ([]byte, error) {
	r, s, err := goecdsa.Sign(rand.Reader, privKey, hash)
	if err != nil {
		return nil, err
	}

	sig := make([]byte, 64)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:])

	return sig, nil
}
