// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergei Gerasimov

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sgerasimov/passvault/internal/breach"
	"github.com/sgerasimov/passvault/internal/cli"
	"github.com/sgerasimov/passvault/internal/config"
	"github.com/sgerasimov/passvault/internal/crypto"
	"github.com/sgerasimov/passvault/internal/logger"
	"github.com/sgerasimov/passvault/internal/secondfactor"
	"github.com/sgerasimov/passvault/internal/service"
	"github.com/sgerasimov/passvault/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewFileLogger("passvault", cfg.App.LogPath)

	sealer := crypto.NewSealer()

	vaultRepo, err := store.NewVaultRepository(cfg.Storage.ResourcesDir, sealer, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create vault repository")
	}

	accountRepo, err := store.NewAccountRepository(cfg.Storage.ResourcesDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create account repository")
	}

	codes := secondfactor.NewGenerator(cfg.App.TOTPIssuer)
	authService := service.NewAuthService(accountRepo, vaultRepo, codes, cfg.App, log)

	breachClient := breach.NewClient(cfg.Breach, log)
	policyService := service.NewPolicyService(breachClient, log)

	app := cli.NewApp(authService, policyService, vaultRepo, os.Stdin, os.Stdout, log)
	app.Run(context.Background())
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
