package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ruteri/kyc-onboarding-backend/api"
	"github.com/ruteri/kyc-onboarding-backend/api/clients"
	"github.com/ruteri/kyc-onboarding-backend/api/onboardinghandler"
	"github.com/ruteri/kyc-onboarding-backend/cmd/flags"
	"github.com/ruteri/kyc-onboarding-backend/config"
	"github.com/ruteri/kyc-onboarding-backend/credentials"
	"github.com/ruteri/kyc-onboarding-backend/cryptoutils"
	"github.com/ruteri/kyc-onboarding-backend/onboarding"
	"github.com/urfave/cli/v2"
)

var flagServerAddr = &cli.StringFlag{
	Name:    "server",
	EnvVars: []string{"ONBOARDING_SERVER"},
	Usage:   "onboarding server to call, e.g. http://127.0.0.1:3007. The handshake runs locally when empty",
}
var flagName = &cli.StringFlag{
	Name:  "name",
	Usage: "user's display name",
}
var flagEmail = &cli.StringFlag{
	Name:     "email",
	Required: true,
	Usage:    "user's email",
}
var flagUserDID = &cli.StringFlag{
	Name:  "user-did",
	Usage: "existing user DID; a new one is registered when empty",
}
var flagNamespace = &cli.StringFlag{
	Name:  "namespace",
	Value: "testnet",
	Usage: "DID namespace for newly registered DIDs",
}

func main() {
	app := &cli.App{
		Name:  "kycctl",
		Usage: "Operate the KYC onboarding backend",
		Flags: append(append(flags.ProviderFlags, flags.LogServiceFlagFn("kycctl")), flags.LogFlags...),
		Commands: []*cli.Command{
			{
				Name:  "admin-tokens",
				Usage: "print a valid admin credential pair, refreshing the store if needed",
				Action: func(cCtx *cli.Context) error {
					cfg := flags.ConfigFromFlags(cCtx)
					cache, err := setupCache(cCtx, cfg)
					if err != nil {
						return err
					}

					pair, err := cache.GetValidPair(cCtx.Context)
					if err != nil {
						return err
					}

					return printJSON(map[string]any{
						"kycAdminToken":     pair.KYCAdminToken,
						"kycAdminExpiresAt": cryptoutils.ExpiresAt(pair.KYCAdminToken).UTC().Format(time.RFC3339),
						"ssiAdminToken":     pair.SSIAdminToken,
						"ssiAdminExpiresAt": cryptoutils.ExpiresAt(pair.SSIAdminToken).UTC().Format(time.RFC3339),
						"refreshed":         cache.Stats().Refreshes > 0,
					})
				},
			},
			{
				Name:  "onboard",
				Usage: "run the onboarding handshake for a user",
				Flags: []cli.Flag{flagServerAddr, flagName, flagEmail, flagUserDID, flagNamespace},
				Action: func(cCtx *cli.Context) error {
					req := api.OnboardingRequest{
						Name:      cCtx.String(flagName.Name),
						Email:     cCtx.String(flagEmail.Name),
						UserDID:   cCtx.String(flagUserDID.Name),
						Namespace: cCtx.String(flagNamespace.Name),
					}

					if server := cCtx.String(flagServerAddr.Name); server != "" {
						resp, err := onboardinghandler.NewClient(server, clients.NewHTTPClient(config.DefaultUpstreamTimeout)).Onboard(cCtx.Context, req)
						if err != nil {
							return err
						}
						return printJSON(resp)
					}

					cfg := flags.ConfigFromFlags(cCtx)
					if err := cfg.Validate(); err != nil {
						return err
					}
					orchestrator, err := setupOrchestrator(cCtx, cfg)
					if err != nil {
						return err
					}

					result, err := orchestrator.Onboard(cCtx.Context, req.ToOnboarding())
					if err != nil {
						return err
					}
					return printJSON(api.NewOnboardingResponse(result))
				},
			},
			{
				Name:  "create-did",
				Usage: "register a new user DID with the SSI service",
				Flags: []cli.Flag{flagNamespace},
				Action: func(cCtx *cli.Context) error {
					cfg := flags.ConfigFromFlags(cCtx)
					cache, err := setupCache(cCtx, cfg)
					if err != nil {
						return err
					}

					pair, err := cache.GetValidPair(cCtx.Context)
					if err != nil {
						return err
					}

					ssi := clients.NewSSIClient(cfg.SSIBaseURL, cfg.Issuer, cfg.Audience, clients.NewHTTPClient(cfg.UpstreamTimeout), flags.SetupLogger(cCtx))
					did, err := ssi.CreateDID(cCtx.Context, cCtx.String(flagNamespace.Name), pair.SSIAdminToken)
					if err != nil {
						return err
					}
					return printJSON(did)
				},
			},
			{
				Name:      "expiry",
				Usage:     "print the expiry of a JWT without verifying it",
				ArgsUsage: "<token>",
				Action: func(cCtx *cli.Context) error {
					token := cCtx.Args().First()
					if token == "" {
						return errors.New("token argument is required")
					}

					expiresAt := cryptoutils.ExpiresAt(token)
					if expiresAt.IsZero() {
						return errors.New("token carries no readable expiry")
					}
					fmt.Printf("%s (in %s)\n", expiresAt.UTC().Format(time.RFC3339), time.Until(expiresAt).Round(time.Second))
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupCache(cCtx *cli.Context, cfg config.Config) (*credentials.Cache, error) {
	if cfg.KYCAPISecret == "" || cfg.SSIAPISecret == "" {
		return nil, errors.New("both KYC and SSI API secrets are required")
	}

	logger := flags.SetupLogger(cCtx)
	store, err := flags.SetupCredentialStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential store: %w", err)
	}

	return credentials.NewCache(credentials.CacheConfig{
		Issuer:       clients.NewDashboardClient(cfg.DashboardBaseURL, clients.NewHTTPClient(cfg.UpstreamTimeout), logger),
		Store:        store,
		Secrets:      credentials.APISecrets{KYC: cfg.KYCAPISecret, SSI: cfg.SSIAPISecret},
		ExpiryBuffer: cfg.ExpiryBuffer,
		Log:          logger,
	}), nil
}

func setupOrchestrator(cCtx *cli.Context, cfg config.Config) (*onboarding.Orchestrator, error) {
	cache, err := setupCache(cCtx, cfg)
	if err != nil {
		return nil, err
	}

	logger := flags.SetupLogger(cCtx)
	httpClient := clients.NewHTTPClient(cfg.UpstreamTimeout)
	ssi := clients.NewSSIClient(cfg.SSIBaseURL, cfg.Issuer, cfg.Audience, httpClient, logger)

	return onboarding.New(onboarding.Config{
		Credentials: cache,
		Sessions:    clients.NewKYCClient(cfg.KYCBaseURL, httpClient, logger),
		Signer:      ssi,
		Registrar:   ssi,
		Issuer:      cfg.Issuer,
		Log:         logger,
	}), nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
