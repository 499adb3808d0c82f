/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package annexb

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/trustbloc/oid4vp-mdl-examples/mdoc"
	"github.com/trustbloc/oid4vp-mdl-examples/openid4vp"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/defaults"
	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
)

// Verify plays both sides of the exchange over the generated artifacts: the wallet verifies
// the request object and selects the encryption key, the reader decrypts the response and
// checks the mdoc against the request.
func Verify(a *Artifacts) error {
	ro, err := openid4vp.ParseRequestObject(a.JAR, defaults.NewX5CProofChecker())
	if err != nil {
		return err
	}

	if err = ro.CheckClientID(); err != nil {
		return err
	}

	if err = openid4vp.CheckWalletSupport(a.WalletMetadata, ro.Request); err != nil {
		return err
	}

	encKey, err := openid4vp.ResponseEncryptionKey(ro.Payload)
	if err != nil {
		return err
	}

	resp, decrypted, err := openid4vp.DecryptResponse(a.JARM.Compact, a.ReaderEncryptionKey)
	if err != nil {
		return err
	}

	if decrypted.Header.KeyID != encKey.KeyID {
		return fmt.Errorf("%w: response encrypted to kid %q, request publishes %q",
			keyutil.ErrKeyMismatch, decrypted.Header.KeyID, encKey.KeyID)
	}

	mdocGeneratedNonce, nonce, err := openid4vp.SessionNonces(decrypted.Header)
	if err != nil {
		return err
	}

	if nonce != ro.Request.Nonce {
		return fmt.Errorf("apv nonce %q does not match request nonce %q", nonce, ro.Request.Nonce)
	}

	if err = resp.PresentationSubmission.CheckDefinition(ro.Request.PresentationDefinition); err != nil {
		return err
	}

	transcript, err := sessionTranscript(ro.Request, mdocGeneratedNonce)
	if err != nil {
		return err
	}

	if !bytes.Equal(transcript, a.SessionTranscript) {
		return errors.New("session transcript of the exchange differs from the example transcript")
	}

	return verifyVPToken(resp.VPToken, ro.Request, transcript)
}

func sessionTranscript(req *openid4vp.AuthorizationRequest, mdocGeneratedNonce string) ([]byte, error) {
	handover, err := mdoc.BuildOID4VPHandover(strings.TrimSpace(req.ClientID), req.ResponseURI,
		req.Nonce, mdocGeneratedNonce)
	if err != nil {
		return nil, err
	}

	return mdoc.BuildSessionTranscript(handover)
}

func verifyVPToken(vpToken string, req *openid4vp.AuthorizationRequest, transcript []byte) error {
	deviceResponse, err := mdoc.DecodeDeviceResponse(vpToken)
	if err != nil {
		return err
	}

	doc, err := deviceResponse.Document(mdoc.DocTypeMDL)
	if err != nil {
		return err
	}

	proofChecker := defaults.NewCOSEProofChecker()

	if err = doc.VerifyIssuerAuth(proofChecker); err != nil {
		return err
	}

	if err = doc.VerifyDigests(); err != nil {
		return err
	}

	if err = doc.VerifyDeviceAuth(proofChecker, transcript); err != nil {
		return err
	}

	claims, err := doc.Claims()
	if err != nil {
		return err
	}

	for _, descriptor := range req.PresentationDefinition.InputDescriptors {
		if _, err = req.PresentationDefinition.Match(descriptor.ID, claims); err != nil {
			return err
		}
	}

	return nil
}
