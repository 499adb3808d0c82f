/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package creator

import (
	"fmt"

	"github.com/trustbloc/kms-go/doc/jose"

	"github.com/trustbloc/oid4vp-mdl-examples/jwt"
	proofdesc "github.com/trustbloc/oid4vp-mdl-examples/proof"
)

// ProofCreator incapsulate logic of proof creation.
type ProofCreator struct {
	supportedJWTAlgs []jwtProofCreateDescriptor
}

type jwtProofCreateDescriptor struct {
	proofDescriptor     proofdesc.JWTProofDescriptor
	cryptographicSigner cryptographicSigner
}

type cryptographicSigner interface {
	// Sign will sign document and return signature.
	Sign(data []byte) ([]byte, error)
}

// Opt represent ProofCreator creation options.
type Opt func(c *ProofCreator)

// WithJWTAlg option to set supported jwt alg.
func WithJWTAlg(proofDesc proofdesc.JWTProofDescriptor, cryptographicSigner cryptographicSigner) Opt {
	return func(c *ProofCreator) {
		c.supportedJWTAlgs = append(c.supportedJWTAlgs, jwtProofCreateDescriptor{
			proofDescriptor:     proofDesc,
			cryptographicSigner: cryptographicSigner,
		})
	}
}

// New creates ProofCreator.
func New(opts ...Opt) *ProofCreator {
	c := &ProofCreator{}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SignJWT will sign document and return signature.
func (c *ProofCreator) SignJWT(params jwt.SignParameters, data []byte) ([]byte, error) {
	supportedProof, err := c.getSupportedProofByAlg(params.JWTAlg)
	if err != nil {
		return nil, err
	}

	return supportedProof.cryptographicSigner.Sign(data)
}

// CreateJWTHeaders creates correct jwt headers.
func (c *ProofCreator) CreateJWTHeaders(params jwt.SignParameters) (jose.Headers, error) {
	if _, err := c.getSupportedProofByAlg(params.JWTAlg); err != nil {
		return nil, err
	}

	headers := map[string]interface{}{
		jose.HeaderAlgorithm: params.JWTAlg,
	}

	if params.KeyID != "" {
		headers[jose.HeaderKeyID] = params.KeyID
	}

	return headers, nil
}

func (c *ProofCreator) getSupportedProofByAlg(jwtAlg string) (jwtProofCreateDescriptor, error) {
	for _, supported := range c.supportedJWTAlgs {
		if supported.proofDescriptor.JWTAlgorithm() == jwtAlg {
			return supported, nil
		}
	}

	return jwtProofCreateDescriptor{}, fmt.Errorf("unsupported jwt alg: %s", jwtAlg)
}
