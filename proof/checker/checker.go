/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package checker

import (
	"errors"
	"fmt"

	"github.com/trustbloc/kms-go/doc/jose"
	"github.com/trustbloc/kms-go/doc/jose/jwk"
	"github.com/trustbloc/kms-go/spi/kms"
	"github.com/veraison/go-cose"

	"github.com/trustbloc/oid4vp-mdl-examples/crypto-ext/pubkey"
	proofdesc "github.com/trustbloc/oid4vp-mdl-examples/proof"
	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
	"github.com/trustbloc/oid4vp-mdl-examples/vermethod"
)

type verificationMethodResolver interface {
	ResolveVerificationMethod(headers jose.Headers) (*vermethod.VerificationMethod, error)
}

type signatureVerifier interface {
	// SupportedKeyType checks if verifier supports given key.
	SupportedKeyType(keyType kms.KeyType) bool
	// Verify verifies the signature.
	Verify(sig, msg []byte, pub *pubkey.PublicKey) error
}

type jwtCheckDescriptor struct {
	proofDescriptor proofdesc.JWTProofDescriptor
}

type cwtCheckDescriptor struct {
	proofDescriptor proofdesc.JWTProofDescriptor
}

// ProofCheckerBase basic implementation of proof checker.
type ProofCheckerBase struct {
	supportedJWTProofs []jwtCheckDescriptor
	supportedCWTProofs []cwtCheckDescriptor
	signatureVerifiers []signatureVerifier
}

// ProofChecker checks JWS proofs with keys resolved from the JWS headers.
type ProofChecker struct {
	ProofCheckerBase

	verificationMethodResolver verificationMethodResolver
}

// Opt represent checker creation options.
type Opt func(c *ProofCheckerBase)

// WithJWTAlg option to set supported jwt algs.
func WithJWTAlg(proofDescs ...proofdesc.JWTProofDescriptor) Opt {
	return func(c *ProofCheckerBase) {
		for _, proofDesc := range proofDescs {
			c.supportedJWTProofs = append(c.supportedJWTProofs, jwtCheckDescriptor{
				proofDescriptor: proofDesc,
			})
		}
	}
}

// WithCWTAlg option to set supported cwt algs.
func WithCWTAlg(proofDescs ...proofdesc.JWTProofDescriptor) Opt {
	return func(c *ProofCheckerBase) {
		for _, proofDesc := range proofDescs {
			c.supportedCWTProofs = append(c.supportedCWTProofs, cwtCheckDescriptor{
				proofDescriptor: proofDesc,
			})
		}
	}
}

// WithSignatureVerifiers option to set signature verifiers.
func WithSignatureVerifiers(verifiers ...signatureVerifier) Opt {
	return func(c *ProofCheckerBase) {
		c.signatureVerifiers = append(c.signatureVerifiers, verifiers...)
	}
}

// New creates new proof checker.
func New(verificationMethodResolver verificationMethodResolver, opts ...Opt) *ProofChecker {
	c := &ProofChecker{
		verificationMethodResolver: verificationMethodResolver,
	}

	for _, opt := range opts {
		opt(&c.ProofCheckerBase)
	}

	return c
}

// CheckJWTProof check jwt proof.
func (c *ProofChecker) CheckJWTProof(headers jose.Headers, _, msg, signature []byte) error {
	alg, ok := headers.Algorithm()
	if !ok {
		return fmt.Errorf("missed alg in jwt header")
	}

	vm, err := c.verificationMethodResolver.ResolveVerificationMethod(headers)
	if err != nil {
		return fmt.Errorf("resolve public key: %w", err)
	}

	return c.checkJWTProof(alg, vm, msg, signature)
}

func (c *ProofCheckerBase) checkJWTProof(alg string, vm *vermethod.VerificationMethod, msg, signature []byte) error {
	supportedProof, err := c.getSupportedProofByAlg(alg)
	if err != nil {
		return err
	}

	pubKey, err := convertToPublicKey(supportedProof.proofDescriptor.SupportedVerificationMethods(), vm)
	if err != nil {
		return fmt.Errorf("jwt with alg %s check: %w", alg, err)
	}

	verifier, err := c.getSignatureVerifier(pubKey.Type)
	if err != nil {
		return err
	}

	return verifier.Verify(signature, msg, pubKey)
}

// CheckCWTProof checks the signature of a COSE_Sign1 message. The message payload must be set,
// detached payloads are attached by the caller before the check.
func (c *ProofCheckerBase) CheckCWTProof(
	checkCWTRequest CheckCWTProofRequest,
	msg *cose.Sign1Message,
) error {
	if checkCWTRequest.Algo == 0 {
		return fmt.Errorf("missed alg in cwt header")
	}

	if checkCWTRequest.VerificationMethod == nil {
		return fmt.Errorf("missed verification method")
	}

	if msg == nil {
		return errors.New("missed cose message")
	}

	supportedProof, err := c.getSupportedCWTProofByAlg(checkCWTRequest.Algo)
	if err != nil {
		return err
	}

	pubKey, err := convertToPublicKey(supportedProof.proofDescriptor.SupportedVerificationMethods(),
		checkCWTRequest.VerificationMethod)
	if err != nil {
		return fmt.Errorf("cwt with alg %s check: %w", checkCWTRequest.Algo, err)
	}

	if pubKey.JWK == nil {
		return fmt.Errorf("cwt with alg %s check: jwk is required", checkCWTRequest.Algo)
	}

	ecKey, err := keyutil.ECDSAPublicKey(pubKey.JWK)
	if err != nil {
		return fmt.Errorf("cwt with alg %s check: %w", checkCWTRequest.Algo, err)
	}

	verifier, err := cose.NewVerifier(checkCWTRequest.Algo, ecKey)
	if err != nil {
		return err
	}

	return msg.Verify(checkCWTRequest.ExternalAAD, verifier)
}

func convertToPublicKey(
	supportedMethods []proofdesc.SupportedVerificationMethod,
	vm *vermethod.VerificationMethod,
) (*pubkey.PublicKey, error) {
	for _, supported := range supportedMethods {
		if supported.VerificationMethodType != vm.Type {
			continue
		}

		if vm.JWK == nil && supported.RequireJWK {
			continue
		}

		if vm.JWK != nil && (supported.JWKKeyType != vm.JWK.Kty || supported.JWKCurve != vm.JWK.Crv) {
			continue
		}

		return createPublicKey(vm, supported.KMSKeyType), nil
	}

	jwkKty := ""
	jwkCrv := ""

	if vm.JWK != nil {
		jwkKty = vm.JWK.Kty
		jwkCrv = vm.JWK.Crv
	}

	return nil, fmt.Errorf("can't verifiy with %q verification method (jwk type %q, jwk curve %q)",
		vm.Type, jwkKty, jwkCrv)
}

func createPublicKey(vm *vermethod.VerificationMethod, keyType kms.KeyType) *pubkey.PublicKey {
	if vm.JWK != nil {
		return pubkey.FromJWK(keyType, vm.JWK)
	}

	return pubkey.FromBytes(keyType, vm.Value)
}

func (c *ProofCheckerBase) getSupportedProofByAlg(jwtAlg string) (jwtCheckDescriptor, error) {
	for _, supported := range c.supportedJWTProofs {
		if supported.proofDescriptor.JWTAlgorithm() == jwtAlg {
			return supported, nil
		}
	}

	return jwtCheckDescriptor{}, fmt.Errorf("unsupported jwt alg: %s", jwtAlg)
}

func (c *ProofCheckerBase) getSupportedCWTProofByAlg(cwtAlg cose.Algorithm) (cwtCheckDescriptor, error) {
	for _, supported := range c.supportedCWTProofs {
		if supported.proofDescriptor.CWTAlgorithm() == cwtAlg {
			return supported, nil
		}
	}

	return cwtCheckDescriptor{}, fmt.Errorf("unsupported cwt alg: %s", cwtAlg)
}

func (c *ProofCheckerBase) getSignatureVerifier(keyType kms.KeyType) (signatureVerifier, error) {
	for _, verifier := range c.signatureVerifiers {
		if verifier.SupportedKeyType(keyType) {
			return verifier, nil
		}
	}

	return nil, fmt.Errorf("no vefiers with supported key type %s", keyType)
}

// EmbeddedVMProofChecker is a proof  checker with embedded verification method.
type EmbeddedVMProofChecker struct {
	ProofCheckerBase
	vm *vermethod.VerificationMethod
}

// CheckJWTProof check jwt proof.
func (c *EmbeddedVMProofChecker) CheckJWTProof(headers jose.Headers, _, msg, signature []byte) error {
	alg, ok := headers.Algorithm()
	if !ok {
		return fmt.Errorf("missed alg in jwt header")
	}

	return c.checkJWTProof(alg, c.vm, msg, signature)
}

// NewEmbeddedJWKProofChecker return new EmbeddedVMProofChecker with embedded jwk.
func NewEmbeddedJWKProofChecker(jwk *jwk.JWK, opts ...Opt) *EmbeddedVMProofChecker {
	return NewEmbeddedVMProofChecker(&vermethod.VerificationMethod{Type: proofdesc.JSONWebKeyMethod, JWK: jwk}, opts...)
}

// NewEmbeddedVMProofChecker return new EmbeddedVMProofChecker.
func NewEmbeddedVMProofChecker(vm *vermethod.VerificationMethod, opts ...Opt) *EmbeddedVMProofChecker {
	c := &EmbeddedVMProofChecker{
		vm: vm,
	}

	for _, opt := range opts {
		opt(&c.ProofCheckerBase)
	}

	return c
}
