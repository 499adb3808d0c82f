/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package annexb assembles, signs, encrypts and checks the OpenID4VP examples of ISO 18013-7 Annex B.
package annexb

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/trustbloc/kms-go/doc/jose"
	"github.com/trustbloc/kms-go/doc/jose/jwk"

	"github.com/trustbloc/oid4vp-mdl-examples/fixtures"
	"github.com/trustbloc/oid4vp-mdl-examples/jwe"
	"github.com/trustbloc/oid4vp-mdl-examples/mdoc"
	"github.com/trustbloc/oid4vp-mdl-examples/openid4vp"
	"github.com/trustbloc/oid4vp-mdl-examples/presexch"
	"github.com/trustbloc/oid4vp-mdl-examples/util/binary"
	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
)

// Examples is the assembled, not yet signed, example data.
type Examples struct {
	WalletMetadata         *openid4vp.WalletMetadata
	PresentationDefinition *presexch.PresentationDefinition

	// ReaderEncryptionKey is the private key of the verifier the response is encrypted to.
	ReaderEncryptionKey       *jwk.JWK
	ReaderEncryptionPublicKey *jwk.JWK

	Request       *openid4vp.AuthorizationRequest
	RequestHeader jose.Headers
	// ReaderAuthKey is the private key certified by the x5c request header.
	ReaderAuthKey *jwk.JWK

	PresentationSubmission *presexch.PresentationSubmission
	Response               *openid4vp.AuthorizationResponse
	MdocGeneratedNonce     string

	OID4VPHandover    []byte
	SessionTranscript []byte
}

// OID4VPHandoverHex returns the hex encoded OID4VPHandover.
func (e *Examples) OID4VPHandoverHex() string {
	return binary.EncodeHexString(e.OID4VPHandover)
}

// SessionTranscriptHex returns the hex encoded SessionTranscript.
func (e *Examples) SessionTranscriptHex() string {
	return binary.EncodeHexString(e.SessionTranscript)
}

// Build assembles the examples from the fixture set. It does not sign or encrypt anything, so
// building twice yields equal values. The handover and session transcript are recomputed from
// the session values and must equal the fixture encodings.
func Build(set *fixtures.Set) (*Examples, error) {
	encPub, err := keyutil.PublicJWK(set.ReaderEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("reader encryption key: %w", err)
	}

	if err = set.PresentationSubmission.CheckDefinition(set.PresentationDefinition); err != nil {
		return nil, err
	}

	handover, transcript, err := sessionBinding(set)
	if err != nil {
		return nil, err
	}

	return &Examples{
		WalletMetadata:            set.WalletMetadata,
		PresentationDefinition:    set.PresentationDefinition,
		ReaderEncryptionKey:       set.ReaderEncryptionKey,
		ReaderEncryptionPublicKey: encPub,
		Request:                   newRequest(set, encPub),
		RequestHeader:             set.RequestHeader,
		ReaderAuthKey:             set.ReaderAuthKey,
		PresentationSubmission:    set.PresentationSubmission,
		Response: &openid4vp.AuthorizationResponse{
			PresentationSubmission: set.PresentationSubmission,
			VPToken:                set.VPToken,
		},
		MdocGeneratedNonce: set.Session.MdocGeneratedNonce,
		OID4VPHandover:     handover,
		SessionTranscript:  transcript,
	}, nil
}

func newRequest(set *fixtures.Set, encPub *jwk.JWK) *openid4vp.AuthorizationRequest {
	var vpFormats *presexch.Format

	if descriptor, ok := lo.Find(set.PresentationDefinition.InputDescriptors, func(d *presexch.InputDescriptor) bool {
		return d.Format != nil && d.Format.MSOMdoc != nil
	}); ok {
		vpFormats = descriptor.Format
	}

	return &openid4vp.AuthorizationRequest{
		Aud:                    set.Session.Aud,
		ResponseType:           set.Session.ResponseType,
		PresentationDefinition: set.PresentationDefinition,
		ClientMetadata: &openid4vp.ClientMetadata{
			JWKS:                              &openid4vp.JWKS{Keys: []*jwk.JWK{encPub}},
			AuthorizationEncryptedResponseAlg: jwe.AlgECDHES,
			AuthorizationEncryptedResponseEnc: jwe.EncA256GCM,
			VPFormats:                         vpFormats,
		},
		State:          set.Session.State,
		Nonce:          set.Session.Nonce,
		ClientID:       set.Session.ClientID,
		ClientIDScheme: set.Session.ClientIDScheme,
		ResponseMode:   set.Session.ResponseMode,
		ResponseURI:    set.Session.ResponseURI,
	}
}

// sessionBinding computes the OID4VPHandover and SessionTranscript. The client id is hashed
// without surrounding whitespace.
func sessionBinding(set *fixtures.Set) ([]byte, []byte, error) {
	handover, err := mdoc.BuildOID4VPHandover(strings.TrimSpace(set.Session.ClientID), set.Session.ResponseURI,
		set.Session.Nonce, set.Session.MdocGeneratedNonce)
	if err != nil {
		return nil, nil, err
	}

	if len(set.OID4VPHandover) > 0 && !bytes.Equal(handover, set.OID4VPHandover) {
		return nil, nil, errors.New("computed OID4VPHandover differs from the example encoding")
	}

	transcript, err := mdoc.BuildSessionTranscript(handover)
	if err != nil {
		return nil, nil, err
	}

	if len(set.SessionTranscript) > 0 && !bytes.Equal(transcript, set.SessionTranscript) {
		return nil, nil, errors.New("computed SessionTranscript differs from the example encoding")
	}

	return handover, transcript, nil
}
