/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/trustbloc/oid4vp-mdl-examples/cmd/mdl-examples/startcmd"
)

func main() {
	// a missing .env file is fine, flags and the environment still apply
	_ = godotenv.Load()

	if err := startcmd.GetStartCmd().Execute(); err != nil {
		log.Fatalf("failed to run mdl-examples: %s", err.Error())
	}
}
