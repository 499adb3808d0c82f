/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsa

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	"github.com/trustbloc/kms-go/doc/jose"
	"github.com/trustbloc/kms-go/doc/jose/jwk"

	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
)

// Signer makes ECDSA signatures in IEEE P1363 format (r||s).
type Signer struct {
	privateKey *ecdsa.PrivateKey
	hash       crypto.Hash
	keySize    int
	alg        string
}

// NewSigner creates a signer for alg. The key curve must be the one alg requires.
func NewSigner(privKey *ecdsa.PrivateKey, alg string) (*Signer, error) {
	sa, err := keyutil.LookupSigningAlgorithm(alg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", keyutil.ErrKeyMismatch, err)
	}

	if privKey == nil {
		return nil, fmt.Errorf("%w: missing private key", keyutil.ErrKeyMismatch)
	}

	if crv := keyutil.CurveName(privKey.Curve); crv != sa.Curve {
		return nil, fmt.Errorf("%w: alg %s requires curve %s, key curve is %s",
			keyutil.ErrKeyMismatch, alg, sa.Curve, crv)
	}

	return &Signer{
		privateKey: privKey,
		hash:       sa.Hash,
		keySize:    sa.KeySize,
		alg:        alg,
	}, nil
}

// NewJWKSigner creates a signer from a private JWK.
func NewJWKSigner(k *jwk.JWK, alg string) (*Signer, error) {
	privKey, err := keyutil.CheckSigningKey(k, alg)
	if err != nil {
		return nil, err
	}

	return NewSigner(privKey, alg)
}

// Sign signs a message.
func (s *Signer) Sign(msg []byte) ([]byte, error) {
	hasher := s.hash.New()
	_, _ = hasher.Write(msg)
	hashed := hasher.Sum(nil)

	r, sig, err := ecdsa.Sign(rand.Reader, s.privateKey, hashed)
	if err != nil {
		return nil, fmt.Errorf("ecdsa sign: %w", err)
	}

	copyPadded := func(source []byte, size int) []byte {
		dest := make([]byte, size)
		copy(dest[size-len(source):], source)

		return dest
	}

	return append(copyPadded(r.Bytes(), s.keySize), copyPadded(sig.Bytes(), s.keySize)...), nil
}

// Headers returns the alg header so Signer can be used as jose.Signer.
func (s *Signer) Headers() jose.Headers {
	return jose.Headers{
		jose.HeaderAlgorithm: s.alg,
	}
}

// Algorithm returns the JWS alg of the signer.
func (s *Signer) Algorithm() string {
	return s.alg
}

// PublicKey returns the verification key.
func (s *Signer) PublicKey() *ecdsa.PublicKey {
	return &s.privateKey.PublicKey
}
