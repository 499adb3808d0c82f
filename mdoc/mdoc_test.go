/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mdoc_test

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/oid4vp-mdl-examples/fixtures"
	"github.com/trustbloc/oid4vp-mdl-examples/mdoc"
	"github.com/trustbloc/oid4vp-mdl-examples/proof/defaults"
)

func loadDocument(t *testing.T) (*fixtures.Set, *mdoc.Document) {
	t.Helper()

	set, err := fixtures.Load()
	require.NoError(t, err)

	resp, err := mdoc.DecodeDeviceResponse(set.VPToken)
	require.NoError(t, err)

	doc, err := resp.Document(mdoc.DocTypeMDL)
	require.NoError(t, err)

	return set, doc
}

func TestDecodeDeviceResponse(t *testing.T) {
	set, err := fixtures.Load()
	require.NoError(t, err)

	resp, err := mdoc.DecodeDeviceResponse(set.VPToken)
	require.NoError(t, err)
	require.Equal(t, "1.0", resp.Version)
	require.Equal(t, uint64(0), resp.Status)
	require.Len(t, resp.Documents, 1)
	require.Equal(t, mdoc.DocTypeMDL, resp.Documents[0].DocType)

	_, err = resp.Document("org.iso.23220.photoid.1")
	require.ErrorContains(t, err, "not found")

	t.Run("padding and whitespace are tolerated", func(t *testing.T) {
		_, err := mdoc.DecodeDeviceResponse(set.VPToken + "==\n")
		require.NoError(t, err)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := mdoc.DecodeDeviceResponse("*" + set.VPToken)
		require.ErrorContains(t, err, "decode vp_token")
	})

	t.Run("invalid cbor", func(t *testing.T) {
		_, err := mdoc.ParseDeviceResponse([]byte{0xa1, 0x01})
		require.ErrorContains(t, err, "unmarshal device response")
	})
}

func TestDocument_Claims(t *testing.T) {
	_, doc := loadDocument(t)

	items, err := doc.IssuerSignedItems()
	require.NoError(t, err)
	require.Len(t, items[mdoc.NameSpaceMDL], 11)

	claims, err := doc.Claims()
	require.NoError(t, err)

	mdl, ok := claims[mdoc.NameSpaceMDL].(map[string]interface{})
	require.True(t, ok)
	require.Len(t, mdl, 11)
	require.Equal(t, "Smith", mdl["family_name"])
	require.Equal(t, "Alice", mdl["given_name"])
	require.Equal(t, "1990-01-01", mdl["birth_date"])
	require.Equal(t, "US", mdl["issuing_country"])

	portrait, ok := mdl["portrait"].([]byte)
	require.True(t, ok)
	require.Equal(t, []byte{0xff, 0xd8, 0xff, 0xe0}, portrait[:4])

	privileges, ok := mdl["driving_privileges"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, privileges)

	first, ok := privileges[0].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "2020-01-01", first["issue_date"])
}

func TestDocument_MobileSecurityObject(t *testing.T) {
	_, doc := loadDocument(t)

	mso, err := doc.MobileSecurityObject()
	require.NoError(t, err)
	require.Equal(t, "1.0", mso.Version)
	require.Equal(t, mdoc.DigestAlgorithmSHA256, mso.DigestAlgorithm)
	require.Equal(t, mdoc.DocTypeMDL, mso.DocType)
	require.Len(t, mso.ValueDigests[mdoc.NameSpaceMDL], 30)
	require.True(t, mso.ValidityInfo.ValidFrom.Before(mso.ValidityInfo.ValidUntil))

	deviceKey, err := mso.DeviceKey()
	require.NoError(t, err)
	require.Equal(t, "P-256", deviceKey.Curve.Params().Name)

	certs, err := doc.CertificateChain()
	require.NoError(t, err)
	require.Len(t, certs, 1)
	require.Equal(t, "ISO18013-5 Test Certificate Signer", certs[0].Subject.CommonName)
}

func TestDocument_Verify(t *testing.T) {
	set, doc := loadDocument(t)

	proofChecker := defaults.NewCOSEProofChecker()

	t.Run("issuer auth", func(t *testing.T) {
		require.NoError(t, doc.VerifyIssuerAuth(proofChecker))
	})

	t.Run("digests", func(t *testing.T) {
		require.NoError(t, doc.VerifyDigests())
	})

	t.Run("device auth", func(t *testing.T) {
		require.NoError(t, doc.VerifyDeviceAuth(proofChecker, set.SessionTranscript))
	})

	t.Run("device auth with another transcript", func(t *testing.T) {
		handover, err := mdoc.BuildOID4VPHandover("example.org", set.Session.ResponseURI,
			set.Session.Nonce, set.Session.MdocGeneratedNonce)
		require.NoError(t, err)

		transcript, err := mdoc.BuildSessionTranscript(handover)
		require.NoError(t, err)

		require.ErrorContains(t, doc.VerifyDeviceAuth(proofChecker, transcript), "verify device signature")
	})

	t.Run("tampered item", func(t *testing.T) {
		tampered := *doc
		items := append([]cbor.RawMessage{}, doc.IssuerSigned.NameSpaces[mdoc.NameSpaceMDL]...)

		item := append(cbor.RawMessage{}, items[0]...)
		// flip a byte of the random value, which follows the item header
		item[len(item)/2] ^= 0x01
		items[0] = item

		tampered.IssuerSigned.NameSpaces = map[string][]cbor.RawMessage{mdoc.NameSpaceMDL: items}

		require.Error(t, tampered.VerifyDigests())
	})

	t.Run("tampered mso", func(t *testing.T) {
		tampered := *doc
		payload := append([]byte{}, doc.IssuerSigned.IssuerAuth.Payload...)
		payload[len(payload)-1] ^= 0x01
		tampered.IssuerSigned.IssuerAuth.Payload = payload

		require.ErrorContains(t, tampered.VerifyIssuerAuth(proofChecker), "verify issuer auth")
	})
}

func TestHandover(t *testing.T) {
	set, err := fixtures.Load()
	require.NoError(t, err)

	handover, err := mdoc.BuildOID4VPHandover(strings.TrimSpace(set.Session.ClientID), set.Session.ResponseURI,
		set.Session.Nonce, set.Session.MdocGeneratedNonce)
	require.NoError(t, err)
	require.Equal(t, set.OID4VPHandover, handover)

	transcript, err := mdoc.BuildSessionTranscript(handover)
	require.NoError(t, err)
	require.Equal(t, set.SessionTranscript, transcript)

	decoded, err := mdoc.DecodeSessionTranscript(transcript)
	require.NoError(t, err)
	require.Equal(t, set.Session.Nonce, decoded.Nonce)
	require.Len(t, decoded.ClientIDDigest(), sha256.Size)
	require.Len(t, decoded.ResponseURIDigest(), sha256.Size)

	t.Run("client id is hashed as given", func(t *testing.T) {
		untrimmed, err := mdoc.BuildOID4VPHandover(set.Session.ClientID, set.Session.ResponseURI,
			set.Session.Nonce, set.Session.MdocGeneratedNonce)
		require.NoError(t, err)
		require.NotEqual(t, set.OID4VPHandover, untrimmed)
	})

	t.Run("invalid handover", func(t *testing.T) {
		_, err := mdoc.BuildSessionTranscript([]byte{0x83, 0x01, 0x02, 0x03})
		require.ErrorContains(t, err, "decode handover")

		_, err = mdoc.DecodeSessionTranscript([]byte{0x82, 0xf6, 0xf6})
		require.ErrorContains(t, err, "expected 3 elements")
	})
}
