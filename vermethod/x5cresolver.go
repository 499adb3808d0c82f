/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vermethod

import (
	"errors"
	"fmt"

	"github.com/trustbloc/kms-go/doc/jose"

	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
)

// X5CResolver resolves the verification key of a JWS from the leaf certificate of its x5c header.
// The chain itself is not evaluated against trust anchors.
type X5CResolver struct{}

// NewX5CResolver creates X5CResolver.
func NewX5CResolver() *X5CResolver {
	return &X5CResolver{}
}

// ResolveVerificationMethod resolves verification method from JWS headers.
func (r *X5CResolver) ResolveVerificationMethod(headers jose.Headers) (*VerificationMethod, error) {
	x5c, err := CertificateChainHeader(headers)
	if err != nil {
		return nil, err
	}

	certs, err := keyutil.ParseCertificateChain(x5c)
	if err != nil {
		return nil, fmt.Errorf("x5c header: %w", err)
	}

	return FromCertificate(certs[0])
}

// CertificateChainHeader returns the x5c header values.
func CertificateChainHeader(headers jose.Headers) ([]string, error) {
	raw, ok := headers[jose.HeaderX509CertificateChain]
	if !ok {
		return nil, errors.New("missed x5c in jwt header")
	}

	switch v := raw.(type) {
	case []string:
		return v, nil
	case []interface{}:
		x5c := make([]string, 0, len(v))

		for i, c := range v {
			s, ok := c.(string)
			if !ok {
				return nil, fmt.Errorf("x5c entry %d is not a string", i)
			}

			x5c = append(x5c, s)
		}

		return x5c, nil
	default:
		return nil, fmt.Errorf("invalid x5c header format %T", raw)
	}
}
