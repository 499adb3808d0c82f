/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fixtures holds the static example data of the Annex B examples.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/trustbloc/kms-go/doc/jose"
	"github.com/trustbloc/kms-go/doc/jose/jwk"

	"github.com/trustbloc/oid4vp-mdl-examples/openid4vp"
	"github.com/trustbloc/oid4vp-mdl-examples/presexch"
	"github.com/trustbloc/oid4vp-mdl-examples/util/binary"
	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
)

//go:embed data
var data embed.FS

const (
	walletMetadataFile         = "data/wallet_metadata.json"
	presentationDefinitionFile = "data/presentation_definition.json"
	readerEncryptionKeyFile    = "data/reader_encryption_key.json"
	readerAuthKeyFile          = "data/reader_auth_key.json"
	requestHeaderFile          = "data/request_header.json"
	presentationSubmissionFile = "data/presentation_submission.json"
	sessionFile                = "data/session.json"
	vpTokenFile                = "data/vp_token.txt"
	oid4vpHandoverFile         = "data/oid4vp_handover.hex"
	sessionTranscriptFile      = "data/session_transcript.hex"
)

// Session holds the request and session values shared by request and response.
type Session struct {
	// ClientID is the client_id as sent in the request. Surrounding whitespace is dropped when
	// it is hashed into the OID4VPHandover.
	ClientID           string `json:"client_id"`
	ClientIDScheme     string `json:"client_id_scheme"`
	ResponseType       string `json:"response_type"`
	ResponseMode       string `json:"response_mode"`
	ResponseURI        string `json:"response_uri"`
	Aud                string `json:"aud"`
	State              string `json:"state"`
	Nonce              string `json:"nonce"`
	MdocGeneratedNonce string `json:"mdoc_generated_nonce"`
}

// Set is the complete example data.
type Set struct {
	WalletMetadata         *openid4vp.WalletMetadata
	PresentationDefinition *presexch.PresentationDefinition
	// ReaderEncryptionKey is the private key the authorization response is encrypted to.
	ReaderEncryptionKey *jwk.JWK
	// ReaderAuthKey is the private key the request object is signed with.
	ReaderAuthKey          *jwk.JWK
	RequestHeader          jose.Headers
	PresentationSubmission *presexch.PresentationSubmission
	Session                *Session
	VPToken                string
	OID4VPHandover         []byte
	SessionTranscript      []byte
}

// Load reads the embedded example data.
func Load() (*Set, error) {
	set := &Set{
		WalletMetadata:         &openid4vp.WalletMetadata{},
		PresentationDefinition: &presexch.PresentationDefinition{},
		RequestHeader:          jose.Headers{},
		PresentationSubmission: &presexch.PresentationSubmission{},
		Session:                &Session{},
	}

	jsonFiles := []struct {
		name string
		v    interface{}
	}{
		{walletMetadataFile, set.WalletMetadata},
		{presentationDefinitionFile, set.PresentationDefinition},
		{requestHeaderFile, &set.RequestHeader},
		{presentationSubmissionFile, set.PresentationSubmission},
		{sessionFile, set.Session},
	}

	for _, f := range jsonFiles {
		if err := readJSON(f.name, f.v); err != nil {
			return nil, err
		}
	}

	var err error

	set.ReaderEncryptionKey, err = readKey(readerEncryptionKeyFile)
	if err != nil {
		return nil, err
	}

	set.ReaderAuthKey, err = readKey(readerAuthKeyFile)
	if err != nil {
		return nil, err
	}

	vpToken, err := data.ReadFile(vpTokenFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", vpTokenFile, err)
	}

	set.VPToken = strings.TrimSpace(string(vpToken))

	set.OID4VPHandover, err = readHex(oid4vpHandoverFile)
	if err != nil {
		return nil, err
	}

	set.SessionTranscript, err = readHex(sessionTranscriptFile)
	if err != nil {
		return nil, err
	}

	return set, nil
}

func readJSON(name string, v interface{}) error {
	b, err := data.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	if err = json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}

	return nil
}

func readKey(name string) (*jwk.JWK, error) {
	b, err := data.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	k, err := keyutil.ParseJWK(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if _, err = keyutil.ECDSAPrivateKey(k); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if err = keyutil.CheckThumbprintKID(k); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return k, nil
}

func readHex(name string) ([]byte, error) {
	b, err := data.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	decoded, err := binary.DecodeHexString(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return decoded, nil
}
