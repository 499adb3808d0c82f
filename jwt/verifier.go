/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwt

import "github.com/trustbloc/kms-go/doc/jose"

// ProofChecker checks the signature of a JWS.
type ProofChecker interface {
	CheckJWTProof(headers jose.Headers, payload, msg, signature []byte) error
}
