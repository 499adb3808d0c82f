/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/edge-core/pkg/utils/cmd"
	"go.uber.org/zap"

	"github.com/trustbloc/oid4vp-mdl-examples/annexb"
	"github.com/trustbloc/oid4vp-mdl-examples/fixtures"
	"github.com/trustbloc/oid4vp-mdl-examples/internal/logger"
	"github.com/trustbloc/oid4vp-mdl-examples/openid4vp"
	"github.com/trustbloc/oid4vp-mdl-examples/report"
)

const (
	component = "mdl-examples"

	outputFileFlagName  = "output-file"
	outputFileFlagUsage = "File the encrypted authorization response (JARM) is written to." +
		" Default: " + openid4vp.DefaultResponseFile + "." +
		" Alternatively, this can be set with the following environment variable: " + outputFileEnvKey
	outputFileEnvKey = "MDL_EXAMPLES_OUTPUT_FILE"

	logLevelFlagName  = "log-level"
	logLevelFlagUsage = "Logging level. Possible values [debug] [info] [warn] [error]. Default: info." +
		" Alternatively, this can be set with the following environment variable: " + logLevelEnvKey
	logLevelEnvKey = "MDL_EXAMPLES_LOG_LEVEL"

	logFormatFlagName  = "log-format"
	logFormatFlagUsage = "Logging format. Possible values [console] [json]. Default: console." +
		" Alternatively, this can be set with the following environment variable: " + logFormatEnvKey
	logFormatEnvKey = "MDL_EXAMPLES_LOG_FORMAT"
)

// nolint: gochecknoglobals
var verifyArtifacts = annexb.Verify

type parameters struct {
	outputFile string
	logLevel   string
	logFormat  string
}

// GetStartCmd returns the Cobra command that prints the Annex B examples.
func GetStartCmd() *cobra.Command {
	startCmd := createStartCmd()

	createFlags(startCmd)

	return startCmd
}

func createStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   component,
		Short: "Print the OpenID4VP examples of ISO 18013-7 Annex B",
		Long: "Sign the authorization request, encrypt the authorization response and print every" +
			" example artifact to stdout",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getParameters(cmd)
			if err != nil {
				return err
			}

			return run(cmd, params)
		},
	}
}

func getParameters(cmd *cobra.Command) (*parameters, error) {
	outputFile, err := cmdutils.GetUserSetVarFromString(cmd, outputFileFlagName, outputFileEnvKey, true)
	if err != nil {
		return nil, err
	}

	logLevel, err := cmdutils.GetUserSetVarFromString(cmd, logLevelFlagName, logLevelEnvKey, true)
	if err != nil {
		return nil, err
	}

	logFormat, err := cmdutils.GetUserSetVarFromString(cmd, logFormatFlagName, logFormatEnvKey, true)
	if err != nil {
		return nil, err
	}

	return &parameters{
		outputFile: outputFile,
		logLevel:   logLevel,
		logFormat:  logFormat,
	}, nil
}

func createFlags(startCmd *cobra.Command) {
	startCmd.Flags().StringP(outputFileFlagName, "o", "", outputFileFlagUsage)
	startCmd.Flags().StringP(logLevelFlagName, "", "", logLevelFlagUsage)
	startCmd.Flags().StringP(logFormatFlagName, "", "", logFormatFlagUsage)
}

func run(cmd *cobra.Command, params *parameters) error {
	lg, err := logger.New(logger.Config{
		Component: component,
		Level:     params.logLevel,
		Format:    params.logFormat,
	})
	if err != nil {
		return err
	}

	defer lg.Sync() //nolint:errcheck

	set, err := fixtures.Load()
	if err != nil {
		return err
	}

	examples, err := annexb.Build(set)
	if err != nil {
		return fmt.Errorf("build examples: %w", err)
	}

	writer := openid4vp.NewFileResponseWriter(params.outputFile)

	artifacts, err := annexb.NewGenerator(
		annexb.WithResponseWriter(writer),
		annexb.WithLogger(lg.Named("generator")),
	).Generate(examples)
	if err != nil {
		return err
	}

	verified := true

	// signing and encryption succeeded, so the artifacts are printed even when they do not verify
	if err = verifyArtifacts(artifacts); err != nil {
		verified = false

		lg.Error("examples do not verify", zap.Error(err))
	}

	lg.Info("examples generated",
		zap.String("responseFile", writer.Path),
		zap.Bool("persisted", artifacts.JARM.Persisted),
		zap.Bool("verified", verified))

	return report.NewPrinter(cmd.OutOrStdout()).Print(artifacts)
}
