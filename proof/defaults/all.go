/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package defaults

import (
	"github.com/trustbloc/kms-go/doc/jose/jwk"

	"github.com/trustbloc/oid4vp-mdl-examples/crypto-ext/verifiers/ecdsa"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/checker"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/jwtproofs/es256"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/jwtproofs/es256k"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/jwtproofs/es384"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/jwtproofs/es512"
	"github.com/trustbloc/oid4vp-mdl-examples/vermethod"
)

func checkerOpts() []checker.Opt {
	return []checker.Opt{
		checker.WithSignatureVerifiers(ecdsa.NewSecp256k1(), ecdsa.NewES256(), ecdsa.NewES384(), ecdsa.NewES512()),
		checker.WithJWTAlg(es256.New(), es256k.New(), es384.New(), es512.New()),
		checker.WithCWTAlg(es256.New(), es384.New(), es512.New()),
	}
}

// NewX5CProofChecker creates proof checker that takes the verification key from the x5c header.
func NewX5CProofChecker() *checker.ProofChecker {
	return checker.New(vermethod.NewX5CResolver(), checkerOpts()...)
}

// NewEmbeddedJWKProofChecker creates proof checker bound to a single key.
func NewEmbeddedJWKProofChecker(key *jwk.JWK) *checker.EmbeddedVMProofChecker {
	return checker.NewEmbeddedJWKProofChecker(key, checkerOpts()...)
}

// NewCOSEProofChecker creates proof checker for COSE_Sign1 signatures.
func NewCOSEProofChecker() *checker.ProofCheckerBase {
	c := &checker.ProofCheckerBase{}

	for _, opt := range checkerOpts() {
		opt(c)
	}

	return c
}
