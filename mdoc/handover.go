/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mdoc

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/samber/lo"
)

// BuildOID4VPHandover builds the CBOR encoded OID4VPHandover:
//
//	[SHA-256([client_id, mdoc_generated_nonce]), SHA-256([response_uri, mdoc_generated_nonce]), nonce]
//
// Digests are encoded as arrays of unsigned integers.
func BuildOID4VPHandover(clientID, responseURI, nonce, mdocGeneratedNonce string) ([]byte, error) {
	clientIDHash, err := hashArray(clientID, mdocGeneratedNonce)
	if err != nil {
		return nil, fmt.Errorf("client id hash: %w", err)
	}

	responseURIHash, err := hashArray(responseURI, mdocGeneratedNonce)
	if err != nil {
		return nil, fmt.Errorf("response uri hash: %w", err)
	}

	handover, err := encMode.Marshal(&OID4VPHandover{
		ClientIDHash:    toUints(clientIDHash),
		ResponseURIHash: toUints(responseURIHash),
		Nonce:           nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("encode handover: %w", err)
	}

	return handover, nil
}

// BuildSessionTranscript builds the CBOR encoded SessionTranscript of an OpenID4VP
// presentation: [null, null, OID4VPHandover].
func BuildSessionTranscript(handover []byte) ([]byte, error) {
	if _, err := DecodeOID4VPHandover(handover); err != nil {
		return nil, err
	}

	transcript, err := encMode.Marshal([]interface{}{nil, nil, cbor.RawMessage(handover)})
	if err != nil {
		return nil, fmt.Errorf("encode session transcript: %w", err)
	}

	return transcript, nil
}

// DecodeOID4VPHandover parses a CBOR encoded OID4VPHandover.
func DecodeOID4VPHandover(data []byte) (*OID4VPHandover, error) {
	handover := &OID4VPHandover{}

	if err := decMode.Unmarshal(data, handover); err != nil {
		return nil, fmt.Errorf("decode handover: %w", err)
	}

	if len(handover.ClientIDHash) != sha256.Size || len(handover.ResponseURIHash) != sha256.Size {
		return nil, fmt.Errorf("decode handover: hashes must have %d elements", sha256.Size)
	}

	return handover, nil
}

// DecodeSessionTranscript parses a CBOR encoded SessionTranscript and returns its handover.
func DecodeSessionTranscript(data []byte) (*OID4VPHandover, error) {
	var transcript []cbor.RawMessage

	if err := decMode.Unmarshal(data, &transcript); err != nil {
		return nil, fmt.Errorf("decode session transcript: %w", err)
	}

	if len(transcript) != 3 { //nolint:gomnd
		return nil, fmt.Errorf("decode session transcript: expected 3 elements, got %d", len(transcript))
	}

	return DecodeOID4VPHandover(transcript[2])
}

// ClientIDDigest returns the client id hash as bytes.
func (h *OID4VPHandover) ClientIDDigest() []byte {
	return toBytes(h.ClientIDHash)
}

// ResponseURIDigest returns the response uri hash as bytes.
func (h *OID4VPHandover) ResponseURIDigest() []byte {
	return toBytes(h.ResponseURIHash)
}

func hashArray(values ...string) ([]byte, error) {
	data, err := encMode.Marshal(values)
	if err != nil {
		return nil, err
	}

	h := sha256.Sum256(data)

	return h[:], nil
}

func toUints(b []byte) []uint {
	return lo.Map(b, func(v byte, _ int) uint {
		return uint(v)
	})
}

func toBytes(u []uint) []byte {
	return lo.Map(u, func(v uint, _ int) byte {
		return byte(v)
	})
}
