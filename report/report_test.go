/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/oid4vp-mdl-examples/annexb"
	"github.com/trustbloc/oid4vp-mdl-examples/fixtures"
	"github.com/trustbloc/oid4vp-mdl-examples/report"
)

var labels = []string{
	report.LabelWalletMetadata,
	report.LabelPresentationDefinition,
	report.LabelReaderPrivateKey,
	report.LabelReaderPublicKey,
	report.LabelRequestParameters,
	report.LabelJARHeader,
	report.LabelReaderAuthKey,
	report.LabelJAR,
	report.LabelPresentationSubmission,
	report.LabelVPToken,
	report.LabelResponseParameters,
	report.LabelJARM,
	report.LabelJARMHeader,
	report.LabelMdocPublicKey,
	report.LabelMdocPrivateKey,
	report.LabelOID4VPHandover,
	report.LabelSessionTranscript,
}

func newArtifacts(t *testing.T) *annexb.Artifacts {
	t.Helper()

	set, err := fixtures.Load()
	require.NoError(t, err)

	ex, err := annexb.Build(set)
	require.NoError(t, err)

	artifacts, err := annexb.NewGenerator().Generate(ex)
	require.NoError(t, err)

	return artifacts
}

// sectionsOf splits the printed report into label -> content.
func sectionsOf(t *testing.T, out string) ([]string, map[string]string) {
	t.Helper()

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	var (
		order   []string
		current string
	)

	content := map[string]string{}

	for i := 0; i < len(lines); i++ {
		isBanner := i+2 < len(lines) && strings.Trim(lines[i], "-") == "" && lines[i] != "" &&
			lines[i] == lines[i+2]
		if isBanner {
			current = lines[i+1]
			order = append(order, current)
			i += 2

			continue
		}

		if content[current] != "" {
			content[current] += "\n"
		}

		content[current] += lines[i]
	}

	return order, content
}

func TestPrinter_Print(t *testing.T) {
	artifacts := newArtifacts(t)

	buf := &bytes.Buffer{}
	require.NoError(t, report.NewPrinter(buf).Print(artifacts))

	order, content := sectionsOf(t, buf.String())
	require.Len(t, order, len(labels)+1)
	require.Equal(t, report.Title, order[0])

	for i, label := range labels {
		require.Equal(t, "Example: "+label, order[i+1])
	}

	section := func(label string) string {
		return content["Example: "+label]
	}

	require.Equal(t, artifacts.JAR, section(report.LabelJAR))
	require.Equal(t, artifacts.JARM.Compact, section(report.LabelJARM))
	require.Equal(t, artifacts.Response.VPToken, section(report.LabelVPToken))
	require.Equal(t, artifacts.OID4VPHandoverHex(), section(report.LabelOID4VPHandover))
	require.Equal(t, "83f6f6"+artifacts.OID4VPHandoverHex(), section(report.LabelSessionTranscript))

	t.Run("json sections", func(t *testing.T) {
		var walletMetadata map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(section(report.LabelWalletMetadata)), &walletMetadata))
		require.Equal(t, "mdoc-openid4vp://", walletMetadata["authorization_endpoint"])

		require.Contains(t, section(report.LabelRequestParameters), "\n  \"aud\": \"https://self-issued.me/v2\",")
		require.Contains(t, section(report.LabelRequestParameters), "\"$['org.iso.18013.5.1']['birth_date']\"")
		require.Contains(t, section(report.LabelReaderPrivateKey), "\"d\": ")
		require.NotContains(t, section(report.LabelReaderPublicKey), "\"d\": ")
		require.Contains(t, section(report.LabelMdocPrivateKey), "\"d\": ")
		require.NotContains(t, section(report.LabelMdocPublicKey), "\"d\": ")

		var epk, mdocKey map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(section(report.LabelMdocPublicKey)), &epk))
		require.NoError(t, json.Unmarshal([]byte(section(report.LabelMdocPrivateKey)), &mdocKey))
		require.Equal(t, epk["x"], mdocKey["x"])
		require.Equal(t, epk["y"], mdocKey["y"])

		var header map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(section(report.LabelJARMHeader)), &header))
		require.Equal(t, "ECDH-ES", header["alg"])
		require.Equal(t, epk, header["epk"])
	})

	t.Run("non ascii is printed as is", func(t *testing.T) {
		require.Contains(t, section(report.LabelRequestParameters), "\"nonce\": \"Safdaer§$45_3342\"")
	})
}

func TestPrinter_BannerRules(t *testing.T) {
	artifacts := newArtifacts(t)

	buf := &bytes.Buffer{}
	require.NoError(t, report.NewPrinter(buf).Print(artifacts))

	tests := []struct {
		label string
		rule  int
	}{
		{label: report.Title, rule: 16},
		{label: "Example: " + report.LabelWalletMetadata, rule: 31},
		{label: "Example: " + report.LabelReaderPublicKey, rule: 41},
		{label: "Example: " + report.LabelReaderAuthKey, rule: 72},
		{label: "Example: " + report.LabelVPToken, rule: 17},
		{label: "Example: " + report.LabelJARM, rule: 59},
		{label: "Example: " + report.LabelMdocPrivateKey, rule: 38},
		{label: "Example: " + report.LabelOID4VPHandover, rule: 59},
		{label: "Example: " + report.LabelSessionTranscript, rule: 59},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			line := strings.Repeat("-", tc.rule)

			require.Contains(t, buf.String(), line+"\n"+tc.label+"\n"+line+"\n")
		})
	}
}

type failingWriter struct {
	after int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after == 0 {
		return 0, errors.New("closed pipe")
	}

	w.after--

	return len(p), nil
}

func TestPrinter_WriteError(t *testing.T) {
	artifacts := newArtifacts(t)

	for _, after := range []int{0, 5, 20} {
		err := report.NewPrinter(&failingWriter{after: after}).Print(artifacts)
		require.EqualError(t, err, "closed pipe")
	}
}
