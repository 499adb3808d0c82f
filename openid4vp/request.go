/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package openid4vp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/trustbloc/kms-go/doc/jose"
	"github.com/trustbloc/kms-go/doc/jose/jwk"

	signer "github.com/trustbloc/oid4vp-mdl-examples/crypto-ext/signers/ecdsa"
	"github.com/trustbloc/oid4vp-mdl-examples/jwt"
	"github.com/trustbloc/oid4vp-mdl-examples/presexch"
	proofdesc "github.com/trustbloc/oid4vp-mdl-examples/proof"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/creator"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/jwtproofs/es256"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/jwtproofs/es256k"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/jwtproofs/es384"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/jwtproofs/es512"
	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
	"github.com/trustbloc/oid4vp-mdl-examples/vermethod"
)

const (
	// ResponseTypeVPToken is the response type of a presentation request.
	ResponseTypeVPToken = "vp_token"
	// ResponseModeDirectPostJWT posts an encrypted authorization response to the response_uri.
	ResponseModeDirectPostJWT = "direct_post.jwt"
	// ClientIDSchemeX509SanDNS binds the client id to a DNS SAN of the request signing certificate.
	ClientIDSchemeX509SanDNS = "x509_san_dns"
)

// AuthorizationRequest holds the parameters of a request object.
type AuthorizationRequest struct {
	Aud                    string                           `json:"aud"`
	ResponseType           string                           `json:"response_type"`
	PresentationDefinition *presexch.PresentationDefinition `json:"presentation_definition"`
	ClientMetadata         *ClientMetadata                  `json:"client_metadata"`
	State                  string                           `json:"state"`
	Nonce                  string                           `json:"nonce"`
	ClientID               string                           `json:"client_id"`
	ClientIDScheme         string                           `json:"client_id_scheme"`
	ResponseMode           string                           `json:"response_mode"`
	ResponseURI            string                           `json:"response_uri"`
}

// ClientMetadata is the verifier metadata passed by value in the request.
type ClientMetadata struct {
	JWKS                              *JWKS            `json:"jwks"`
	AuthorizationEncryptedResponseAlg string           `json:"authorization_encrypted_response_alg"`
	AuthorizationEncryptedResponseEnc string           `json:"authorization_encrypted_response_enc"`
	VPFormats                         *presexch.Format `json:"vp_formats"`
}

// JWKS is a JSON Web Key Set.
type JWKS struct {
	Keys []*jwk.JWK `json:"keys"`
}

// nolint: gochecknoglobals
var requestProofs = map[string]proofdesc.JWTProofDescriptor{
	es256.JWTAlg:  es256.New(),
	es256k.JWTAlg: es256k.New(),
	es384.JWTAlg:  es384.New(),
	es512.JWTAlg:  es512.New(),
}

// SignRequest signs req into a compact JWS request object. headers are used as the protected
// header as given; their alg selects the signature algorithm and, when present, the leaf
// certificate of x5c must certify the signing key.
func SignRequest(privKey *jwk.JWK, headers jose.Headers, req interface{}) (string, error) {
	alg, ok := headers.Algorithm()
	if !ok {
		return "", errors.New("alg header is not defined")
	}

	desc, ok := requestProofs[alg]
	if !ok {
		return "", fmt.Errorf("%w: unsupported request signing alg %s", keyutil.ErrKeyMismatch, alg)
	}

	priv, err := keyutil.CheckSigningKey(privKey, alg)
	if err != nil {
		return "", err
	}

	if _, hasX5C := headers[jose.HeaderX509CertificateChain]; hasX5C {
		x5c, err := vermethod.CertificateChainHeader(headers)
		if err != nil {
			return "", err
		}

		if err = keyutil.CheckCertificateKey(x5c, &priv.PublicKey); err != nil {
			return "", err
		}
	}

	s, err := signer.NewSigner(priv, alg)
	if err != nil {
		return "", err
	}

	token, err := jwt.NewSigned(req, jwt.SignParameters{
		JWTAlg:            alg,
		AdditionalHeaders: headers,
	}, creator.New(creator.WithJWTAlg(desc, s)))
	if err != nil {
		return "", fmt.Errorf("sign request object: %w", err)
	}

	return token.Serialize(false)
}

// RequestObject is a verified request object.
type RequestObject struct {
	Request *AuthorizationRequest
	Headers jose.Headers
	// Payload is the raw JSON payload.
	Payload []byte
}

// ParseRequestObject verifies a request object and decodes its parameters.
func ParseRequestObject(requestObject string, proofChecker jwt.ProofChecker) (*RequestObject, error) {
	token, payload, err := jwt.Parse(requestObject, jwt.WithProofChecker(proofChecker))
	if err != nil {
		return nil, fmt.Errorf("parse request object: %w", err)
	}

	req := &AuthorizationRequest{}

	if err = token.DecodeClaims(req); err != nil {
		return nil, fmt.Errorf("decode request object: %w", err)
	}

	return &RequestObject{
		Request: req,
		Headers: token.Headers,
		Payload: payload,
	}, nil
}

// CheckClientID checks the client_id against the x5c leaf certificate when the x509_san_dns
// scheme is used. Surrounding whitespace of the client_id is ignored.
func (ro *RequestObject) CheckClientID() error {
	if ro.Request.ClientIDScheme != ClientIDSchemeX509SanDNS {
		return nil
	}

	x5c, err := vermethod.CertificateChainHeader(ro.Headers)
	if err != nil {
		return err
	}

	certs, err := keyutil.ParseCertificateChain(x5c)
	if err != nil {
		return err
	}

	clientID := strings.TrimSpace(ro.Request.ClientID)

	if !lo.Contains(certs[0].DNSNames, clientID) {
		return fmt.Errorf("client_id %q is not a DNS name of the request signing certificate", clientID)
	}

	return nil
}

// ResponseEncryptionKey selects the key the authorization response must be encrypted to from
// the client_metadata.jwks of a request object payload.
func ResponseEncryptionKey(payload []byte) (*jwk.JWK, error) {
	alg := gjson.GetBytes(payload, "client_metadata.authorization_encrypted_response_alg").String()

	for _, key := range gjson.GetBytes(payload, "client_metadata.jwks.keys").Array() {
		if use := key.Get("use").String(); use != "" && use != keyutil.UseEncryption {
			continue
		}

		if keyAlg := key.Get("alg").String(); alg != "" && keyAlg != "" && keyAlg != alg {
			continue
		}

		return keyutil.ParseJWK([]byte(key.Raw))
	}

	return nil, fmt.Errorf("%w: no encryption key in client_metadata.jwks", keyutil.ErrKeyMismatch)
}
