/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwe produces and opens compact JWE objects encrypted with direct ECDH-ES key agreement.
package jwe

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	gojose "github.com/go-jose/go-jose/v3"
	josecipher "github.com/go-jose/go-jose/v3/cipher"
	"github.com/mitchellh/mapstructure"
	"github.com/trustbloc/kms-go/doc/jose"
	"github.com/trustbloc/kms-go/doc/jose/jwk"

	utiljson "github.com/trustbloc/oid4vp-mdl-examples/util/json"
	"github.com/trustbloc/oid4vp-mdl-examples/util/keyutil"
)

const (
	// AlgECDHES is direct ECDH-ES key agreement.
	AlgECDHES = keyutil.AlgECDHES
	// EncA256GCM is AES-256-GCM content encryption.
	EncA256GCM = "A256GCM"

	headerEncryption = "enc"
	headerEPK        = "epk"
	headerAPU        = "apu"
	headerAPV        = "apv"

	cekSize       = 32
	ivSize        = 12
	tagSize       = 16
	compactChunks = 5
)

// ErrUnsupportedAlgorithm is returned for alg or enc values other than ECDH-ES and A256GCM.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// EncryptParams holds the protected header values of a JWE.
type EncryptParams struct {
	Alg   string
	Enc   string
	APU   []byte
	APV   []byte
	KeyID string
}

// Result is the outcome of an encryption.
type Result struct {
	Compact string
	Headers jose.Headers
	// EphemeralKey is the private ephemeral key used for the key agreement.
	EphemeralKey *jwk.JWK
}

// ProtectedHeader is the typed protected header of a decrypted JWE.
type ProtectedHeader struct {
	Alg   string   `mapstructure:"alg"`
	Enc   string   `mapstructure:"enc"`
	APU   string   `mapstructure:"apu"`
	APV   string   `mapstructure:"apv"`
	KeyID string   `mapstructure:"kid"`
	EPK   *jwk.JWK `mapstructure:"-"`
}

// PartyUInfo returns the decoded apu value.
func (h *ProtectedHeader) PartyUInfo() ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(h.APU)
}

// PartyVInfo returns the decoded apv value.
func (h *ProtectedHeader) PartyVInfo() ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(h.APV)
}

// Decrypted holds the plaintext and protected header of a JWE.
type Decrypted struct {
	Plaintext []byte
	Header    *ProtectedHeader
	Headers   jose.Headers
}

type encryptOpts struct {
	rand io.Reader
}

// EncryptOpt is an option of Encrypt.
type EncryptOpt func(opts *encryptOpts)

// WithRandReader sets the source of the ephemeral key and the IV.
func WithRandReader(r io.Reader) EncryptOpt {
	return func(opts *encryptOpts) {
		opts.rand = r
	}
}

// Encrypt encrypts the JSON encoding of payload to recipient.
func Encrypt(recipient *jwk.JWK, params EncryptParams, payload interface{}, opts ...EncryptOpt) (*Result, error) {
	eOpts := &encryptOpts{rand: rand.Reader}

	for _, opt := range opts {
		opt(eOpts)
	}

	if params.Alg != AlgECDHES {
		return nil, fmt.Errorf("%w: alg %q", ErrUnsupportedAlgorithm, params.Alg)
	}

	if params.Enc != EncA256GCM {
		return nil, fmt.Errorf("%w: enc %q", ErrUnsupportedAlgorithm, params.Enc)
	}

	recipientKey, err := recipientPublicKey(recipient)
	if err != nil {
		return nil, err
	}

	plaintext, err := utiljson.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ephPriv, err := ecdsa.GenerateKey(recipientKey.Curve, eOpts.rand)
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral key: %w", err)
	}

	ephPrivJWK, err := keyutil.NewECJWK(ephPriv)
	if err != nil {
		return nil, err
	}

	headers, err := protectedHeaders(params, &ephPriv.PublicKey)
	if err != nil {
		return nil, err
	}

	headersBytes, err := utiljson.Marshal(headers)
	if err != nil {
		return nil, err
	}

	encodedHeaders := base64.RawURLEncoding.EncodeToString(headersBytes)

	cek := josecipher.DeriveECDHES(params.Enc, params.APU, params.APV, ephPriv, recipientKey, cekSize)

	iv, ciphertext, tag, err := seal(cek, plaintext, []byte(encodedHeaders), eOpts.rand)
	if err != nil {
		return nil, err
	}

	compact := strings.Join([]string{
		encodedHeaders,
		"",
		base64.RawURLEncoding.EncodeToString(iv),
		base64.RawURLEncoding.EncodeToString(ciphertext),
		base64.RawURLEncoding.EncodeToString(tag),
	}, ".")

	return &Result{
		Compact:      compact,
		Headers:      headers,
		EphemeralKey: ephPrivJWK,
	}, nil
}

func recipientPublicKey(recipient *jwk.JWK) (*ecdsa.PublicKey, error) {
	if recipient == nil {
		return nil, fmt.Errorf("%w: missing recipient key", keyutil.ErrKeyMismatch)
	}

	if recipient.Kty != "" && recipient.Kty != keyutil.KeyTypeEC {
		return nil, fmt.Errorf("%w: recipient key type %s, EC required", keyutil.ErrKeyMismatch, recipient.Kty)
	}

	if recipient.Algorithm != "" && recipient.Algorithm != AlgECDHES {
		return nil, fmt.Errorf("%w: recipient key alg %s, %s required",
			keyutil.ErrKeyMismatch, recipient.Algorithm, AlgECDHES)
	}

	if recipient.Use != "" && recipient.Use != keyutil.UseEncryption {
		return nil, fmt.Errorf("%w: recipient key use %s, %s required",
			keyutil.ErrKeyMismatch, recipient.Use, keyutil.UseEncryption)
	}

	pub, err := keyutil.ECDSAPublicKey(recipient)
	if err != nil {
		return nil, err
	}

	if recipient.Crv != "" && recipient.Crv != pub.Curve.Params().Name {
		return nil, fmt.Errorf("%w: recipient key crv %s does not match key curve %s",
			keyutil.ErrKeyMismatch, recipient.Crv, pub.Curve.Params().Name)
	}

	return pub, nil
}

func protectedHeaders(params EncryptParams, ephPub *ecdsa.PublicKey) (jose.Headers, error) {
	ephPubJWK, err := keyutil.NewECJWK(ephPub)
	if err != nil {
		return nil, err
	}

	epk, err := utiljson.ToMap(ephPubJWK)
	if err != nil {
		return nil, fmt.Errorf("encode epk: %w", err)
	}

	headers := jose.Headers{
		jose.HeaderAlgorithm: params.Alg,
		headerEncryption:     params.Enc,
		headerAPU:            base64.RawURLEncoding.EncodeToString(params.APU),
		headerAPV:            base64.RawURLEncoding.EncodeToString(params.APV),
		headerEPK:            epk,
	}

	if params.KeyID != "" {
		headers[jose.HeaderKeyID] = params.KeyID
	}

	return headers, nil
}

func seal(cek, plaintext, aad []byte, r io.Reader) ([]byte, []byte, []byte, error) {
	block, err := aes.NewCipher(cek)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create gcm: %w", err)
	}

	iv := make([]byte, ivSize)

	if _, err = io.ReadFull(r, iv); err != nil {
		return nil, nil, nil, fmt.Errorf("generate iv: %w", err)
	}

	sealed := gcm.Seal(nil, iv, plaintext, aad)
	ctLen := len(sealed) - tagSize

	return iv, sealed[:ctLen], sealed[ctLen:], nil
}

// Decrypt opens a compact JWE with the recipient private key.
func Decrypt(compact string, recipient *jwk.JWK) (*Decrypted, error) {
	priv, err := keyutil.ECDSAPrivateKey(recipient)
	if err != nil {
		return nil, err
	}

	headers, err := ParseHeaders(compact)
	if err != nil {
		return nil, err
	}

	header, err := DecodeProtectedHeader(headers)
	if err != nil {
		return nil, err
	}

	if header.Alg != AlgECDHES || header.Enc != EncA256GCM {
		return nil, fmt.Errorf("%w: alg %q enc %q", ErrUnsupportedAlgorithm, header.Alg, header.Enc)
	}

	obj, err := parseEncrypted(compact)
	if err != nil {
		return nil, err
	}

	plaintext, err := obj.Decrypt(priv)
	if err != nil {
		return nil, fmt.Errorf("decrypt jwe: %w", err)
	}

	return &Decrypted{
		Plaintext: plaintext,
		Header:    header,
		Headers:   headers,
	}, nil
}

func parseEncrypted(compact string) (*gojose.JSONWebEncryption, error) {
	obj, err := gojose.ParseEncrypted(compact)
	if err != nil {
		return nil, fmt.Errorf("parse jwe: %w", err)
	}

	return obj, nil
}

// ParseHeaders returns the protected header of a compact JWE without decrypting it.
func ParseHeaders(compact string) (jose.Headers, error) {
	parts := strings.Split(compact, ".")
	if len(parts) != compactChunks {
		return nil, fmt.Errorf("invalid compact jwe: %d segments", len(parts))
	}

	if parts[1] != "" {
		return nil, errors.New("invalid compact jwe: direct key agreement has no encrypted key")
	}

	headersBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("decode jwe header: %w", err)
	}

	headers := jose.Headers{}

	if err = json.Unmarshal(headersBytes, &headers); err != nil {
		return nil, fmt.Errorf("unmarshal jwe header: %w", err)
	}

	return headers, nil
}

// DecodeProtectedHeader converts raw JWE headers to a ProtectedHeader.
func DecodeProtectedHeader(headers jose.Headers) (*ProtectedHeader, error) {
	epkObj, rest := utiljson.SplitJSONObj(headers, headerEPK)

	header := &ProtectedHeader{}

	if err := mapstructure.Decode(rest, header); err != nil {
		return nil, fmt.Errorf("decode jwe header: %w", err)
	}

	if epk, ok := epkObj[headerEPK]; ok {
		epkBytes, err := utiljson.Marshal(epk)
		if err != nil {
			return nil, err
		}

		header.EPK, err = keyutil.ParseJWK(epkBytes)
		if err != nil {
			return nil, fmt.Errorf("decode epk: %w", err)
		}
	}

	return header, nil
}
