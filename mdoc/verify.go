/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mdoc

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"

	"github.com/trustbloc/oid4vp-mdl-examples/proof/checker"
	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
	"github.com/trustbloc/oid4vp-mdl-examples/vermethod"
)

const deviceAuthenticationContext = "DeviceAuthentication"

// VerifyIssuerAuth checks the issuer signature over the MSO with the key of the x5chain leaf
// certificate. The chain is not evaluated against trust anchors.
func (d *Document) VerifyIssuerAuth(proofChecker ProofChecker) error {
	msg := cose.Sign1Message(d.IssuerSigned.IssuerAuth)

	alg, err := msg.Headers.Protected.Algorithm()
	if err != nil {
		return fmt.Errorf("issuer auth alg: %w", err)
	}

	chain, err := d.rawCertificateChain()
	if err != nil {
		return err
	}

	vm, err := vermethod.FromDERChain(chain)
	if err != nil {
		return fmt.Errorf("issuer auth: %w", err)
	}

	err = proofChecker.CheckCWTProof(checker.CheckCWTProofRequest{
		Algo:               alg,
		VerificationMethod: vm,
	}, &msg)
	if err != nil {
		return fmt.Errorf("verify issuer auth: %w", err)
	}

	return nil
}

// VerifyDigests checks that every disclosed item matches its digest in the MSO.
func (d *Document) VerifyDigests() error {
	mso, err := d.MobileSecurityObject()
	if err != nil {
		return err
	}

	if mso.DigestAlgorithm != DigestAlgorithmSHA256 {
		return fmt.Errorf("unsupported digest algorithm %s", mso.DigestAlgorithm)
	}

	if mso.DocType != d.DocType {
		return fmt.Errorf("mso doc type %s does not match document doc type %s", mso.DocType, d.DocType)
	}

	for ns, rawItems := range d.IssuerSigned.NameSpaces {
		digests, ok := mso.ValueDigests[ns]
		if !ok {
			return fmt.Errorf("no value digests for name space %s", ns)
		}

		for i, rawItem := range rawItems {
			item, err := decodeIssuerSignedItem(rawItem)
			if err != nil {
				return fmt.Errorf("name space %s item %d: %w", ns, i, err)
			}

			expected, ok := digests[item.DigestID]
			if !ok {
				return fmt.Errorf("no digest %d for %s/%s", item.DigestID, ns, item.ElementIdentifier)
			}

			// The digest covers the tag 24 encoded item exactly as received.
			actual := sha256.Sum256(rawItem)

			if !bytes.Equal(expected, actual[:]) {
				return fmt.Errorf("digest mismatch for %s/%s", ns, item.ElementIdentifier)
			}
		}
	}

	return nil
}

// DeviceAuthenticationBytes returns the tag 24 encoded DeviceAuthentication structure signed by
// the device.
func (d *Document) DeviceAuthenticationBytes(sessionTranscript []byte) ([]byte, error) {
	if len(d.DeviceSigned.NameSpaces) == 0 {
		return nil, errors.New("missing device name spaces")
	}

	deviceAuthentication, err := encMode.Marshal([]interface{}{
		deviceAuthenticationContext,
		cbor.RawMessage(sessionTranscript),
		d.DocType,
		d.DeviceSigned.NameSpaces,
	})
	if err != nil {
		return nil, fmt.Errorf("encode device authentication: %w", err)
	}

	return wrapEncodedCBOR(deviceAuthentication)
}

// VerifyDeviceAuth checks the device signature against the session transcript.
func (d *Document) VerifyDeviceAuth(proofChecker ProofChecker, sessionTranscript []byte) error {
	if d.DeviceSigned.DeviceAuth.DeviceSignature == nil {
		return errors.New("device signature is missing, device mac is not supported")
	}

	mso, err := d.MobileSecurityObject()
	if err != nil {
		return err
	}

	deviceKey, err := mso.DeviceKey()
	if err != nil {
		return err
	}

	deviceJWK, err := keyutil.NewECJWK(deviceKey)
	if err != nil {
		return err
	}

	vm, err := vermethod.FromJWK(deviceJWK)
	if err != nil {
		return err
	}

	payload, err := d.DeviceAuthenticationBytes(sessionTranscript)
	if err != nil {
		return err
	}

	msg := cose.Sign1Message(*d.DeviceSigned.DeviceAuth.DeviceSignature)
	// the device signature payload is detached
	msg.Payload = payload

	alg, err := msg.Headers.Protected.Algorithm()
	if err != nil {
		return fmt.Errorf("device signature alg: %w", err)
	}

	err = proofChecker.CheckCWTProof(checker.CheckCWTProofRequest{
		Algo:               alg,
		VerificationMethod: vm,
	}, &msg)
	if err != nil {
		return fmt.Errorf("verify device signature: %w", err)
	}

	return nil
}
