/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package openid4vp

//go:generate mockgen -destination interfaces_mocks_test.go -package openid4vp_test -source=interfaces.go

// ResponseWriter persists an encrypted authorization response.
type ResponseWriter interface {
	WriteResponse(compactJWE string) error
}
