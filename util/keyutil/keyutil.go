/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package keyutil contains helpers for the elliptic curve JWKs used by request signing and
// response encryption.
package keyutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	gojose "github.com/go-jose/go-jose/v3"
	"github.com/trustbloc/kms-go/doc/jose/jwk"

	"github.com/trustbloc/oid4vp-mdl-examples/util/binary"
)

// ErrKeyMismatch is returned when a key can not be used with the requested algorithm.
var ErrKeyMismatch = errors.New("key mismatch")

const (
	// KeyTypeEC is the JWK kty of elliptic curve keys.
	KeyTypeEC = "EC"
	// AlgECDHES is the ECDH-ES key agreement algorithm.
	AlgECDHES = "ECDH-ES"
	// UseEncryption is the JWK use value of encryption keys.
	UseEncryption = "enc"
	// UseSignature is the JWK use value of signing keys.
	UseSignature = "sig"
	// CurveSecp256k1 is the JWK crv of secp256k1 keys.
	CurveSecp256k1 = "secp256k1"
)

// SigningAlgorithm binds a JWS alg to the curve and hash it requires.
type SigningAlgorithm struct {
	Name    string
	Curve   string
	Hash    crypto.Hash
	KeySize int
}

// nolint: gochecknoglobals
var signingAlgorithms = map[string]SigningAlgorithm{
	"ES256":  {Name: "ES256", Curve: "P-256", Hash: crypto.SHA256, KeySize: 32},
	"ES256K": {Name: "ES256K", Curve: CurveSecp256k1, Hash: crypto.SHA256, KeySize: 32},
	"ES384":  {Name: "ES384", Curve: "P-384", Hash: crypto.SHA384, KeySize: 48},
	"ES512":  {Name: "ES512", Curve: "P-521", Hash: crypto.SHA512, KeySize: 66},
}

// LookupSigningAlgorithm returns the curve and hash for a JWS alg.
func LookupSigningAlgorithm(alg string) (SigningAlgorithm, error) {
	sa, ok := signingAlgorithms[alg]
	if !ok {
		return SigningAlgorithm{}, fmt.Errorf("unsupported signing alg %q", alg)
	}

	return sa, nil
}

// CurveName returns the JWK crv of an elliptic curve.
func CurveName(c elliptic.Curve) string {
	if c == btcec.S256() {
		return CurveSecp256k1
	}

	return c.Params().Name
}

// ParseJWK parses a JSON Web Key.
func ParseJWK(data []byte) (*jwk.JWK, error) {
	k := &jwk.JWK{}

	if err := json.Unmarshal(data, k); err != nil {
		return nil, fmt.Errorf("parse jwk: %w", err)
	}

	return k, nil
}

// ECDSAPrivateKey returns the private key of an EC JWK.
func ECDSAPrivateKey(k *jwk.JWK) (*ecdsa.PrivateKey, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: missing key", ErrKeyMismatch)
	}

	priv, ok := k.Key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: key %q is not an EC private key (%T)", ErrKeyMismatch, k.KeyID, k.Key)
	}

	return priv, nil
}

// ECDSAPublicKey returns the public key of an EC JWK. Private keys are reduced to their public part.
func ECDSAPublicKey(k *jwk.JWK) (*ecdsa.PublicKey, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: missing key", ErrKeyMismatch)
	}

	switch key := k.Key.(type) {
	case *ecdsa.PublicKey:
		return key, nil
	case *ecdsa.PrivateKey:
		return &key.PublicKey, nil
	default:
		return nil, fmt.Errorf("%w: key %q is not an EC key (%T)", ErrKeyMismatch, k.KeyID, k.Key)
	}
}

// CheckSigningKey returns the private key of k when its curve is the one alg requires.
func CheckSigningKey(k *jwk.JWK, alg string) (*ecdsa.PrivateKey, error) {
	sa, err := LookupSigningAlgorithm(alg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyMismatch, err)
	}

	priv, err := ECDSAPrivateKey(k)
	if err != nil {
		return nil, err
	}

	if crv := CurveName(priv.Curve); crv != sa.Curve {
		return nil, fmt.Errorf("%w: alg %s requires curve %s, key curve is %s", ErrKeyMismatch, alg, sa.Curve, crv)
	}

	if k.Algorithm != "" && k.Algorithm != alg {
		return nil, fmt.Errorf("%w: key alg %s, requested %s", ErrKeyMismatch, k.Algorithm, alg)
	}

	return priv, nil
}

// PublicJWK returns the public variant of k. Key id, use and alg are kept.
func PublicJWK(k *jwk.JWK) (*jwk.JWK, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: missing key", ErrKeyMismatch)
	}

	pub := k.JSONWebKey.Public()
	if !pub.Valid() {
		return nil, fmt.Errorf("%w: key %q has no public part", ErrKeyMismatch, k.KeyID)
	}

	return &jwk.JWK{
		JSONWebKey: pub,
		Kty:        k.Kty,
		Crv:        k.Crv,
	}, nil
}

// Thumbprint computes the RFC 7638 SHA-256 thumbprint of k, base64url encoded.
func Thumbprint(k *jwk.JWK) (string, error) {
	tp, err := k.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("compute thumbprint: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(tp), nil
}

// CheckThumbprintKID checks that the key id of k is its SHA-256 thumbprint.
func CheckThumbprintKID(k *jwk.JWK) error {
	tp, err := Thumbprint(k)
	if err != nil {
		return err
	}

	if tp != k.KeyID {
		return fmt.Errorf("kid %q is not the key thumbprint %q", k.KeyID, tp)
	}

	return nil
}

// ParseCertificateChain parses base64 encoded DER certificates, as found in an x5c header.
// Whitespace inside the encoded values is ignored.
func ParseCertificateChain(x5c []string) ([]*x509.Certificate, error) {
	if len(x5c) == 0 {
		return nil, errors.New("empty certificate chain")
	}

	certs := make([]*x509.Certificate, 0, len(x5c))

	for i, enc := range x5c {
		der, err := base64.StdEncoding.DecodeString(binary.StripWhitespace(enc))
		if err != nil {
			return nil, fmt.Errorf("decode certificate %d: %w", i, err)
		}

		cert, err := x509.ParseCertificate(der)
		if err != nil {
			return nil, fmt.Errorf("parse certificate %d: %w", i, err)
		}

		certs = append(certs, cert)
	}

	return certs, nil
}

// CheckCertificateKey checks that the leaf certificate of x5c certifies pub.
func CheckCertificateKey(x5c []string, pub *ecdsa.PublicKey) error {
	certs, err := ParseCertificateChain(x5c)
	if err != nil {
		return err
	}

	leafKey, ok := certs[0].PublicKey.(*ecdsa.PublicKey)
	if !ok || !leafKey.Equal(pub) {
		return fmt.Errorf("%w: x5c leaf certificate does not certify the signing key", ErrKeyMismatch)
	}

	return nil
}

// SamePublicKey reports whether a and b hold the same EC public key.
func SamePublicKey(a, b *jwk.JWK) bool {
	pa, err := ECDSAPublicKey(a)
	if err != nil {
		return false
	}

	pb, err := ECDSAPublicKey(b)
	if err != nil {
		return false
	}

	return pa.Equal(pb)
}

// NewECJWK wraps an *ecdsa.PrivateKey or *ecdsa.PublicKey into a JWK.
func NewECJWK(key interface{}) (*jwk.JWK, error) {
	var crv string

	switch k := key.(type) {
	case *ecdsa.PrivateKey:
		crv = CurveName(k.Curve)
	case *ecdsa.PublicKey:
		crv = CurveName(k.Curve)
	default:
		return nil, fmt.Errorf("%w: unsupported key type %T", ErrKeyMismatch, key)
	}

	return &jwk.JWK{
		JSONWebKey: gojose.JSONWebKey{Key: key},
		Kty:        KeyTypeEC,
		Crv:        crv,
	}, nil
}
