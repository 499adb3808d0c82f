/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package annexb

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/trustbloc/oid4vp-mdl-examples/openid4vp"
)

// Artifacts are the signed and encrypted examples.
type Artifacts struct {
	*Examples

	// JAR is the signed authorization request object.
	JAR string
	// JARM is the encrypted authorization response object.
	JARM *openid4vp.EncryptedResponse
}

// Generator signs the request and encrypts the response of the examples.
type Generator struct {
	writer openid4vp.ResponseWriter
	logger *zap.Logger
}

// Opt is a Generator option.
type Opt func(g *Generator)

// WithResponseWriter sets where the encrypted response is persisted.
func WithResponseWriter(w openid4vp.ResponseWriter) Opt {
	return func(g *Generator) {
		g.writer = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Opt {
	return func(g *Generator) {
		g.logger = l
	}
}

// NewGenerator creates Generator.
func NewGenerator(opts ...Opt) *Generator {
	g := &Generator{
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate signs the authorization request with the reader auth key and encrypts the
// authorization response to the reader encryption key published in the request.
func (g *Generator) Generate(ex *Examples) (*Artifacts, error) {
	jar, err := openid4vp.SignRequest(ex.ReaderAuthKey, ex.RequestHeader, ex.Request)
	if err != nil {
		return nil, fmt.Errorf("sign authorization request: %w", err)
	}

	g.logger.Debug("authorization request signed", zap.Int("length", len(jar)))

	encryptorOpts := []openid4vp.EncryptorOpt{openid4vp.WithLogger(g.logger)}
	if g.writer != nil {
		encryptorOpts = append(encryptorOpts, openid4vp.WithResponseWriter(g.writer))
	}

	jarm, err := openid4vp.NewResponseEncryptor(encryptorOpts...).EncryptResponse(
		ex.ReaderEncryptionPublicKey, ex.Response, ex.MdocGeneratedNonce, ex.Request.Nonce)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("authorization response encrypted",
		zap.String("kid", ex.ReaderEncryptionPublicKey.KeyID),
		zap.Bool("persisted", jarm.Persisted))

	return &Artifacts{
		Examples: ex,
		JAR:      jar,
		JARM:     jarm,
	}, nil
}
