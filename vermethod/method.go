/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vermethod

import (
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/trustbloc/kms-go/doc/jose/jwk"
	"github.com/trustbloc/kms-go/doc/jose/jwk/jwksupport"

	"github.com/trustbloc/oid4vp-mdl-examples/proof"
	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
)

// VerificationMethod is defined either as raw public key bytes (Value field) or as JSON Web Key.
type VerificationMethod struct {
	Type  string
	Value []byte
	JWK   *jwk.JWK
}

// FromJWK creates verification method with the public part of k.
func FromJWK(k *jwk.JWK) (*VerificationMethod, error) {
	pub, err := keyutil.PublicJWK(k)
	if err != nil {
		return nil, err
	}

	return &VerificationMethod{Type: proof.JSONWebKeyMethod, JWK: pub}, nil
}

// FromCertificate creates verification method with the public key of a certificate.
func FromCertificate(cert *x509.Certificate) (*VerificationMethod, error) {
	if cert == nil {
		return nil, errors.New("missing certificate")
	}

	pub, err := jwksupport.JWKFromKey(cert.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("certificate %q public key: %w", cert.Subject.CommonName, err)
	}

	return &VerificationMethod{Type: proof.JSONWebKeyMethod, JWK: pub}, nil
}

// FromDERChain creates verification method with the leaf of a DER encoded certificate chain,
// as carried by the COSE x5chain header.
func FromDERChain(chain [][]byte) (*VerificationMethod, error) {
	if len(chain) == 0 {
		return nil, errors.New("empty certificate chain")
	}

	cert, err := x509.ParseCertificate(chain[0])
	if err != nil {
		return nil, fmt.Errorf("parse leaf certificate: %w", err)
	}

	return FromCertificate(cert)
}
