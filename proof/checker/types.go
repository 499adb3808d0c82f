/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package checker

import (
	"github.com/veraison/go-cose"

	"github.com/trustbloc/oid4vp-mdl-examples/vermethod"
)

// CheckCWTProofRequest is the request for checking a COSE_Sign1 signature.
type CheckCWTProofRequest struct {
	Algo               cose.Algorithm
	VerificationMethod *vermethod.VerificationMethod
	ExternalAAD        []byte
}
