/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package openid4vp

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/trustbloc/kms-go/doc/jose/jwk"
	"go.uber.org/zap"

	"github.com/trustbloc/oid4vp-mdl-examples/jwe"
	"github.com/trustbloc/oid4vp-mdl-examples/presexch"
)

const (
	// DefaultResponseFile is where FileResponseWriter writes when no path is given.
	DefaultResponseFile = "encrypted.txt"

	responseFileMode = 0o600
)

// ErrPersist is returned when an encrypted response can not be written.
var ErrPersist = errors.New("persist encrypted response")

// AuthorizationResponse holds the parameters of an authorization response.
type AuthorizationResponse struct {
	PresentationSubmission *presexch.PresentationSubmission `json:"presentation_submission"`
	VPToken                string                           `json:"vp_token"`
}

// EncryptedResponse is an authorization response encrypted to the verifier.
type EncryptedResponse struct {
	*jwe.Result

	// Persisted is false when the response writer failed.
	Persisted bool
}

// ResponseEncryptor encrypts authorization responses.
type ResponseEncryptor struct {
	writer ResponseWriter
	logger *zap.Logger
}

// EncryptorOpt is an option of ResponseEncryptor.
type EncryptorOpt func(e *ResponseEncryptor)

// WithResponseWriter sets the writer encrypted responses are handed to.
func WithResponseWriter(w ResponseWriter) EncryptorOpt {
	return func(e *ResponseEncryptor) {
		e.writer = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) EncryptorOpt {
	return func(e *ResponseEncryptor) {
		e.logger = l
	}
}

// NewResponseEncryptor creates ResponseEncryptor.
func NewResponseEncryptor(opts ...EncryptorOpt) *ResponseEncryptor {
	e := &ResponseEncryptor{
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// EncryptResponse encrypts resp to recipient with ECDH-ES and A256GCM. apu and apv carry the
// mdoc generated nonce and the request nonce. The result is handed to the response writer;
// a write failure is logged and does not fail the call.
func (e *ResponseEncryptor) EncryptResponse(
	recipient *jwk.JWK,
	resp *AuthorizationResponse,
	mdocGeneratedNonce, nonce string,
) (*EncryptedResponse, error) {
	params := jwe.EncryptParams{
		Alg: jwe.AlgECDHES,
		Enc: jwe.EncA256GCM,
		APU: []byte(mdocGeneratedNonce),
		APV: []byte(nonce),
	}

	if recipient != nil {
		params.KeyID = recipient.KeyID
	}

	res, err := jwe.Encrypt(recipient, params, resp)
	if err != nil {
		return nil, fmt.Errorf("encrypt authorization response: %w", err)
	}

	encrypted := &EncryptedResponse{Result: res}

	if e.writer == nil {
		return encrypted, nil
	}

	if err = e.writer.WriteResponse(res.Compact); err != nil {
		if !errors.Is(err, ErrPersist) {
			err = fmt.Errorf("%w: %w", ErrPersist, err)
		}

		e.logger.Error("failed to persist encrypted response", zap.Error(err))

		return encrypted, nil
	}

	encrypted.Persisted = true

	return encrypted, nil
}

// DecryptResponse opens an encrypted authorization response.
func DecryptResponse(compactJWE string, recipient *jwk.JWK) (*AuthorizationResponse, *jwe.Decrypted, error) {
	decrypted, err := jwe.Decrypt(compactJWE, recipient)
	if err != nil {
		return nil, nil, fmt.Errorf("decrypt authorization response: %w", err)
	}

	resp := &AuthorizationResponse{}

	if err = json.Unmarshal(decrypted.Plaintext, resp); err != nil {
		return nil, nil, fmt.Errorf("decode authorization response: %w", err)
	}

	return resp, decrypted, nil
}

// SessionNonces returns the mdoc generated nonce and the request nonce bound into the apu and
// apv header parameters of an encrypted response.
func SessionNonces(header *jwe.ProtectedHeader) (string, string, error) {
	apu, err := base64.RawURLEncoding.DecodeString(header.APU)
	if err != nil {
		return "", "", fmt.Errorf("decode apu: %w", err)
	}

	apv, err := base64.RawURLEncoding.DecodeString(header.APV)
	if err != nil {
		return "", "", fmt.Errorf("decode apv: %w", err)
	}

	return string(apu), string(apv), nil
}

// FileResponseWriter writes encrypted responses to a file, replacing its content.
type FileResponseWriter struct {
	Path string
}

// NewFileResponseWriter creates FileResponseWriter. An empty path selects DefaultResponseFile.
func NewFileResponseWriter(path string) *FileResponseWriter {
	if path == "" {
		path = DefaultResponseFile
	}

	return &FileResponseWriter{Path: path}
}

// WriteResponse writes compactJWE to the file.
func (w *FileResponseWriter) WriteResponse(compactJWE string) error {
	if err := os.WriteFile(w.Path, []byte(compactJWE), responseFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	return nil
}
