/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package mdoc decodes and verifies ISO/IEC 18013-5 mdoc device responses and builds the
// OpenID4VP session transcript they are bound to.
package mdoc

import (
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"
)

const (
	// DocTypeMDL is the document type of a mobile driving licence.
	DocTypeMDL = "org.iso.18013.5.1.mDL"
	// NameSpaceMDL is the name space of mobile driving licence elements.
	NameSpaceMDL = "org.iso.18013.5.1"
	// DigestAlgorithmSHA256 is the only value digest algorithm supported.
	DigestAlgorithmSHA256 = "SHA-256"
)

// DeviceResponse is the top level structure of an mdoc presentation.
type DeviceResponse struct {
	Version        string                   `cbor:"version"`
	Documents      []Document               `cbor:"documents,omitempty"`
	DocumentErrors []map[string]interface{} `cbor:"documentErrors,omitempty"`
	Status         uint64                   `cbor:"status"`
}

// Document is a single presented document.
type Document struct {
	DocType      string                      `cbor:"docType"`
	IssuerSigned IssuerSigned                `cbor:"issuerSigned"`
	DeviceSigned DeviceSigned                `cbor:"deviceSigned"`
	Errors       map[string]map[string]int64 `cbor:"errors,omitempty"`
}

// IssuerSigned holds the issuer signed items and the issuer signature over the MSO.
type IssuerSigned struct {
	NameSpaces map[string][]cbor.RawMessage `cbor:"nameSpaces,omitempty"`
	IssuerAuth cose.UntaggedSign1Message   `cbor:"issuerAuth"`
}

// IssuerSignedItem is a disclosed data element.
type IssuerSignedItem struct {
	DigestID          uint64      `cbor:"digestID"`
	Random            []byte      `cbor:"random"`
	ElementIdentifier string      `cbor:"elementIdentifier"`
	ElementValue      interface{} `cbor:"elementValue"`
}

// DeviceSigned holds the device signed name spaces and the device authentication.
type DeviceSigned struct {
	// NameSpaces is the tag 24 encoded DeviceNameSpaces, kept raw because the device
	// signature covers these exact bytes.
	NameSpaces cbor.RawMessage `cbor:"nameSpaces"`
	DeviceAuth DeviceAuth      `cbor:"deviceAuth"`
}

// DeviceAuth carries either a device signature or a device MAC.
type DeviceAuth struct {
	DeviceSignature *cose.UntaggedSign1Message `cbor:"deviceSignature,omitempty"`
	DeviceMac       cbor.RawMessage            `cbor:"deviceMac,omitempty"`
}

// MobileSecurityObject is the issuer signed payload binding element digests to the device key.
type MobileSecurityObject struct {
	Version         string                       `cbor:"version"`
	DigestAlgorithm string                       `cbor:"digestAlgorithm"`
	ValueDigests    map[string]map[uint64][]byte `cbor:"valueDigests"`
	DeviceKeyInfo   DeviceKeyInfo                `cbor:"deviceKeyInfo"`
	DocType         string                       `cbor:"docType"`
	ValidityInfo    ValidityInfo                 `cbor:"validityInfo"`
}

// DeviceKeyInfo holds the device key.
type DeviceKeyInfo struct {
	DeviceKey         COSEKey         `cbor:"deviceKey"`
	KeyAuthorizations cbor.RawMessage `cbor:"keyAuthorizations,omitempty"`
	KeyInfo           cbor.RawMessage `cbor:"keyInfo,omitempty"`
}

// COSEKey is an EC2 COSE_Key.
type COSEKey struct {
	Kty int64  `cbor:"1,keyasint"`
	Kid []byte `cbor:"2,keyasint,omitempty"`
	Alg int64  `cbor:"3,keyasint,omitempty"`
	Crv int64  `cbor:"-1,keyasint"`
	X   []byte `cbor:"-2,keyasint"`
	Y   []byte `cbor:"-3,keyasint"`
}

// ValidityInfo is the validity period of the MSO.
type ValidityInfo struct {
	Signed         time.Time  `cbor:"signed"`
	ValidFrom      time.Time  `cbor:"validFrom"`
	ValidUntil     time.Time  `cbor:"validUntil"`
	ExpectedUpdate *time.Time `cbor:"expectedUpdate,omitempty"`
}

// OID4VPHandover binds a device response to an OpenID4VP authorization request.
// The hashes are SHA-256 digests.
type OID4VPHandover struct {
	_ struct{} `cbor:",toarray"`

	ClientIDHash    []uint
	ResponseURIHash []uint
	Nonce           string
}
