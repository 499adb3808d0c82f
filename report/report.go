/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package report prints the Annex B example artifacts.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/trustbloc/oid4vp-mdl-examples/annexb"
	utiljson "github.com/trustbloc/oid4vp-mdl-examples/util/json"
)

const (
	// Title is the heading printed before all sections.
	Title = "Annex B Examples"

	titleRule = 16

	labelPrefix = "Example: "
)

// Section labels, in print order.
const (
	LabelWalletMetadata         = "Static Wallet Metadata"
	LabelPresentationDefinition = "Presentation Definition"
	LabelReaderPrivateKey       = "Ephemeral Private Reader Key JWK"
	LabelReaderPublicKey        = "Ephemeral Public Reader Key JWK"
	LabelRequestParameters      = "Authorization Request Object parameters"
	LabelJARHeader              = "Authorization Request Object JWT (JAR) Header"
	LabelReaderAuthKey          = "Static Private Reader Key JWK corresponding to 'x5c' JWT Header"
	LabelJAR                    = "Authorization Request Object encoded as JWT (JAR)"
	LabelPresentationSubmission = "Presentation Submission"
	LabelVPToken                = "VP Token"
	LabelResponseParameters     = "Authorization Response Object parameters"
	LabelJARM                   = "Authorization Response Object encoded as JWT (JARM)"
	LabelJARMHeader             = "Authorization Response Object JWT (JARM) Header"
	LabelMdocPublicKey          = "Ephemeral Public MDOC Key JWK"
	LabelMdocPrivateKey         = "Ephemeral Private MDOC Key JWK"
	LabelOID4VPHandover         = "OID4VPHandover CBOR Hex"
	LabelSessionTranscript      = "SessionTranscript CBOR Hex"
)

type section struct {
	label   string
	// rule is the width of the dash lines around the banner.
	rule    int
	content func() (string, error)
}

// Printer writes the artifacts as labeled sections. JSON values are indented with two spaces
// and their keys sorted. Tokens and hex strings are printed as they are.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter creates Printer.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes all sections. It stops at the first error.
func (p *Printer) Print(a *annexb.Artifacts) error {
	p.banner(Title, titleRule)

	for _, s := range sections(a) {
		if p.err != nil {
			return p.err
		}

		content, err := s.content()
		if err != nil {
			return fmt.Errorf("section %q: %w", s.label, err)
		}

		p.banner(labelPrefix+s.label, s.rule)
		p.println(content)
	}

	return p.err
}

func (p *Printer) banner(label string, rule int) {
	line := strings.Repeat("-", rule)

	p.println(line)
	p.println(label)
	p.println(line)
}

func (p *Printer) println(s string) {
	if p.err != nil {
		return
	}

	_, p.err = fmt.Fprintln(p.w, s)
}

// Rule widths are fixed per section and do not always match the label length.
func sections(a *annexb.Artifacts) []section {
	return []section{
		{LabelWalletMetadata, 31, jsonOf(a.WalletMetadata)},
		{LabelPresentationDefinition, 32, jsonOf(a.PresentationDefinition)},
		{LabelReaderPrivateKey, 41, jsonOf(a.ReaderEncryptionKey)},
		{LabelReaderPublicKey, 41, jsonOf(a.ReaderEncryptionPublicKey)},
		{LabelRequestParameters, 48, jsonOf(a.Request)},
		{LabelJARHeader, 54, jsonOf(a.RequestHeader)},
		{LabelReaderAuthKey, 72, jsonOf(a.ReaderAuthKey)},
		{LabelJAR, 58, raw(a.JAR)},
		{LabelPresentationSubmission, 32, jsonOf(a.PresentationSubmission)},
		{LabelVPToken, 17, raw(a.Response.VPToken)},
		{LabelResponseParameters, 49, jsonOf(a.Response)},
		{LabelJARM, 59, raw(a.JARM.Compact)},
		{LabelJARMHeader, 56, jsonOf(a.JARM.Headers)},
		{LabelMdocPublicKey, 38, jsonOf(a.JARM.Headers["epk"])},
		{LabelMdocPrivateKey, 38, jsonOf(a.JARM.EphemeralKey)},
		{LabelOID4VPHandover, 59, raw(a.OID4VPHandoverHex())},
		{LabelSessionTranscript, 59, raw(a.SessionTranscriptHex())},
	}
}

func raw(s string) func() (string, error) {
	return func() (string, error) {
		return s, nil
	}
}

// jsonOf renders v through a generic JSON object so that keys come out sorted, also for
// values with their own JSON encoding such as JWKs.
func jsonOf(v interface{}) func() (string, error) {
	return func() (string, error) {
		obj, err := utiljson.ToMap(v)
		if err != nil {
			return "", err
		}

		b, err := utiljson.MarshalIndent(obj)
		if err != nil {
			return "", err
		}

		return string(b), nil
	}
}
