/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mdoc

import (
	"github.com/veraison/go-cose"

	"github.com/trustbloc/oid4vp-mdl-examples/proof/checker"
)

// ProofChecker checks COSE_Sign1 signatures of issuer and device authentication.
type ProofChecker interface {
	CheckCWTProof(checkCWTRequest checker.CheckCWTProofRequest, msg *cose.Sign1Message) error
}
