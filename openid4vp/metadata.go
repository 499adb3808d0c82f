/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package openid4vp

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/trustbloc/oid4vp-mdl-examples/presexch"
)

// ErrUnsupportedByWallet is returned when a request asks for something the wallet metadata
// does not advertise.
var ErrUnsupportedByWallet = errors.New("not supported by wallet")

// WalletMetadata is the static metadata of a wallet acting as self-issued OP.
type WalletMetadata struct {
	Issuer                                    string           `json:"issuer"`
	AuthorizationEndpoint                     string           `json:"authorization_endpoint"`
	ResponseTypesSupported                    []string         `json:"response_types_supported"`
	VPFormatsSupported                        *presexch.Format `json:"vp_formats_supported"`
	ClientIDSchemesSupported                  []string         `json:"client_id_schemes_supported"`
	AuthorizationEncryptionAlgValuesSupported []string         `json:"authorization_encryption_alg_values_supported"`
	AuthorizationEncryptionEncValuesSupported []string         `json:"authorization_encryption_enc_values_supported"`
}

// CheckWalletSupport checks that the wallet described by meta can answer req.
func CheckWalletSupport(meta *WalletMetadata, req *AuthorizationRequest) error {
	if !lo.Contains(meta.ResponseTypesSupported, req.ResponseType) {
		return fmt.Errorf("%w: response_type %s", ErrUnsupportedByWallet, req.ResponseType)
	}

	if !lo.Contains(meta.ClientIDSchemesSupported, req.ClientIDScheme) {
		return fmt.Errorf("%w: client_id_scheme %s", ErrUnsupportedByWallet, req.ClientIDScheme)
	}

	if req.ClientMetadata == nil {
		return nil
	}

	alg := req.ClientMetadata.AuthorizationEncryptedResponseAlg
	if alg != "" && !lo.Contains(meta.AuthorizationEncryptionAlgValuesSupported, alg) {
		return fmt.Errorf("%w: authorization_encrypted_response_alg %s", ErrUnsupportedByWallet, alg)
	}

	enc := req.ClientMetadata.AuthorizationEncryptedResponseEnc
	if enc != "" && !lo.Contains(meta.AuthorizationEncryptionEncValuesSupported, enc) {
		return fmt.Errorf("%w: authorization_encrypted_response_enc %s", ErrUnsupportedByWallet, enc)
	}

	formats := req.ClientMetadata.VPFormats
	if formats != nil && formats.MSOMdoc != nil && (meta.VPFormatsSupported == nil || meta.VPFormatsSupported.MSOMdoc == nil) {
		return fmt.Errorf("%w: vp format %s", ErrUnsupportedByWallet, presexch.FormatMSOMdoc)
	}

	return nil
}
