/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"github.com/trustbloc/kms-go/spi/kms"
	"github.com/veraison/go-cose"
)

const (
	// JSONWebKeyMethod is the verification method type of keys carried as JWK, either embedded
	// or taken from an x5c/x5chain leaf certificate.
	JSONWebKeyMethod = "JsonWebKey2020"
)

// SupportedVerificationMethod describes verification methods that supported by proof checker.
type SupportedVerificationMethod struct {
	VerificationMethodType string
	KMSKeyType             kms.KeyType
	JWKKeyType             string
	JWKCurve               string
	RequireJWK             bool
}

// JWTProofDescriptor describes a JWS/COSE signature algorithm.
type JWTProofDescriptor interface {
	JWTAlgorithm() string
	CWTAlgorithm() cose.Algorithm

	SupportedVerificationMethods() []SupportedVerificationMethod
}
