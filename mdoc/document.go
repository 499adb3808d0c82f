/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mdoc

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/samber/lo"
	"github.com/veraison/go-cose"
)

const (
	coseKeyTypeEC2 = 2

	coseCurveP256 = 1
	coseCurveP384 = 2
	coseCurveP521 = 3
)

// DecodeDeviceResponse decodes a base64url encoded vp_token into a DeviceResponse.
func DecodeDeviceResponse(vpToken string) (*DeviceResponse, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(vpToken), "="))
	if err != nil {
		return nil, fmt.Errorf("decode vp_token: %w", err)
	}

	return ParseDeviceResponse(raw)
}

// ParseDeviceResponse decodes CBOR encoded DeviceResponse.
func ParseDeviceResponse(data []byte) (*DeviceResponse, error) {
	resp := &DeviceResponse{}

	if err := decMode.Unmarshal(data, resp); err != nil {
		return nil, fmt.Errorf("unmarshal device response: %w", err)
	}

	return resp, nil
}

// Document returns the first document of the given type.
func (r *DeviceResponse) Document(docType string) (*Document, error) {
	doc, ok := lo.Find(r.Documents, func(d Document) bool {
		return d.DocType == docType
	})
	if !ok {
		return nil, fmt.Errorf("document %s not found in device response", docType)
	}

	return &doc, nil
}

// IssuerSignedItems decodes the disclosed items of every name space.
func (d *Document) IssuerSignedItems() (map[string][]IssuerSignedItem, error) {
	items := make(map[string][]IssuerSignedItem, len(d.IssuerSigned.NameSpaces))

	for ns, rawItems := range d.IssuerSigned.NameSpaces {
		for i, rawItem := range rawItems {
			item, err := decodeIssuerSignedItem(rawItem)
			if err != nil {
				return nil, fmt.Errorf("name space %s item %d: %w", ns, i, err)
			}

			items[ns] = append(items[ns], *item)
		}
	}

	return items, nil
}

func decodeIssuerSignedItem(raw []byte) (*IssuerSignedItem, error) {
	content, err := unwrapEncodedCBOR(raw)
	if err != nil {
		return nil, err
	}

	item := &IssuerSignedItem{}

	if err = elementDecMode.Unmarshal(content, item); err != nil {
		return nil, fmt.Errorf("unmarshal issuer signed item: %w", err)
	}

	return item, nil
}

// Claims returns the disclosed element values as name space -> element identifier -> value.
// Tagged values such as full-date are reduced to their content.
func (d *Document) Claims() (map[string]interface{}, error) {
	items, err := d.IssuerSignedItems()
	if err != nil {
		return nil, err
	}

	claims := make(map[string]interface{}, len(items))

	for ns, nsItems := range items {
		claims[ns] = lo.SliceToMap(nsItems, func(item IssuerSignedItem) (string, interface{}) {
			return item.ElementIdentifier, plainValue(item.ElementValue)
		})
	}

	return claims, nil
}

// MobileSecurityObject decodes the MSO signed by the issuer.
func (d *Document) MobileSecurityObject() (*MobileSecurityObject, error) {
	content, err := unwrapEncodedCBOR(d.IssuerSigned.IssuerAuth.Payload)
	if err != nil {
		return nil, fmt.Errorf("issuer auth payload: %w", err)
	}

	mso := &MobileSecurityObject{}

	if err = decMode.Unmarshal(content, mso); err != nil {
		return nil, fmt.Errorf("unmarshal mobile security object: %w", err)
	}

	return mso, nil
}

// CertificateChain returns the x5chain of the issuer signature, leaf first.
func (d *Document) CertificateChain() ([]*x509.Certificate, error) {
	chain, err := d.rawCertificateChain()
	if err != nil {
		return nil, err
	}

	certs := make([]*x509.Certificate, 0, len(chain))

	for i, der := range chain {
		cert, err := x509.ParseCertificate(der)
		if err != nil {
			return nil, fmt.Errorf("parse x5chain certificate %d: %w", i, err)
		}

		certs = append(certs, cert)
	}

	return certs, nil
}

func (d *Document) rawCertificateChain() ([][]byte, error) {
	headers := d.IssuerSigned.IssuerAuth.Headers

	rawChain, ok := headerValue(headers.Unprotected, cose.HeaderLabelX5Chain)
	if !ok {
		rawChain, ok = headerValue(headers.Protected, cose.HeaderLabelX5Chain)
	}

	if !ok {
		return nil, errors.New("x5chain not found in issuer auth")
	}

	switch v := rawChain.(type) {
	case []byte:
		return [][]byte{v}, nil
	case [][]byte:
		return v, nil
	case []interface{}:
		chain := make([][]byte, 0, len(v))

		for _, c := range v {
			b, isBytes := c.([]byte)
			if !isBytes {
				return nil, fmt.Errorf("invalid x5chain element %T", c)
			}

			chain = append(chain, b)
		}

		return chain, nil
	default:
		return nil, fmt.Errorf("invalid x5chain %T", rawChain)
	}
}

func headerValue(h map[interface{}]interface{}, label int64) (interface{}, bool) {
	if v, ok := h[label]; ok {
		return v, true
	}

	v, ok := h[uint64(label)]

	return v, ok
}

// DeviceKey returns the device public key from the MSO.
func (m *MobileSecurityObject) DeviceKey() (*ecdsa.PublicKey, error) {
	key := m.DeviceKeyInfo.DeviceKey

	if key.Kty != coseKeyTypeEC2 {
		return nil, fmt.Errorf("unsupported device key type %d", key.Kty)
	}

	var curve elliptic.Curve

	switch key.Crv {
	case coseCurveP256:
		curve = elliptic.P256()
	case coseCurveP384:
		curve = elliptic.P384()
	case coseCurveP521:
		curve = elliptic.P521()
	default:
		return nil, fmt.Errorf("unsupported device key curve %d", key.Crv)
	}

	pub := &ecdsa.PublicKey{
		Curve: curve,
		X:     new(big.Int).SetBytes(key.X),
		Y:     new(big.Int).SetBytes(key.Y),
	}

	if !curve.IsOnCurve(pub.X, pub.Y) {
		return nil, errors.New("device key is not on its curve")
	}

	return pub, nil
}
