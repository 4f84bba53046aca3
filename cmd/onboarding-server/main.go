package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruteri/kyc-onboarding-backend/api/clients"
	"github.com/ruteri/kyc-onboarding-backend/api/onboardinghandler"
	"github.com/ruteri/kyc-onboarding-backend/cmd/flags"
	"github.com/ruteri/kyc-onboarding-backend/credentials"
	"github.com/ruteri/kyc-onboarding-backend/httpserver"
	"github.com/ruteri/kyc-onboarding-backend/onboarding"
	"github.com/urfave/cli/v2"
)

var ServiceLogFlag = flags.LogServiceFlagFn("kyc-onboarding")

var ListenAddrFlag = &cli.StringFlag{
	Name:    "listen-addr",
	EnvVars: []string{"LISTEN_ADDR"},
	Value:   "127.0.0.1:3007",
	Usage:   "address to listen on for the onboarding API",
}

var WarmCacheFlag = &cli.BoolFlag{
	Name:  "warm-cache",
	Value: true,
	Usage: "acquire admin credentials before accepting requests",
}

func main() {
	app := &cli.App{
		Name:  "onboarding-server",
		Usage: "Serve KYC onboarding sessions",
		Flags: append(append(flags.ProviderFlags, []cli.Flag{ListenAddrFlag, WarmCacheFlag, ServiceLogFlag}...), flags.CommonFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			cfg := flags.ConfigFromFlags(cCtx)
			if err := cfg.Validate(); err != nil {
				logger.Error("Invalid configuration", "err", err)
				return err
			}

			store, err := flags.SetupCredentialStore(cfg, logger)
			if err != nil {
				logger.Error("Failed to create credential store", "err", err)
				return err
			}
			logger.Info("Credential store configured", "store", store.Name(), "location", store.LocationURI())

			httpClient := clients.NewHTTPClient(cfg.UpstreamTimeout)

			cache := credentials.NewCache(credentials.CacheConfig{
				Issuer:       clients.NewDashboardClient(cfg.DashboardBaseURL, httpClient, logger),
				Store:        store,
				Secrets:      credentials.APISecrets{KYC: cfg.KYCAPISecret, SSI: cfg.SSIAPISecret},
				ExpiryBuffer: cfg.ExpiryBuffer,
				Log:          logger,
			})

			if cCtx.Bool(WarmCacheFlag.Name) {
				ctx, cancel := context.WithTimeout(cCtx.Context, 2*cfg.UpstreamTimeout)
				_, err := cache.GetValidPair(ctx)
				cancel()
				if err != nil {
					// Requests retry the refresh, so a cold start is not fatal.
					logger.Warn("Failed to warm admin credential cache", "err", err)
				}
			}

			ssi := clients.NewSSIClient(cfg.SSIBaseURL, cfg.Issuer, cfg.Audience, httpClient, logger)
			orchestrator := onboarding.New(onboarding.Config{
				Credentials: cache,
				Sessions:    clients.NewKYCClient(cfg.KYCBaseURL, httpClient, logger),
				Signer:      ssi,
				Registrar:   ssi,
				Issuer:      cfg.Issuer,
				Log:         logger,
			})

			server, err := httpserver.New(flags.ConfigureServer(cCtx, logger, cCtx.String(ListenAddrFlag.Name)), onboardinghandler.NewHandler(orchestrator, logger))
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}
			server.SetReadinessCheck(store.Available)

			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()

			stats := cache.Stats()
			logger.Info("Server shutdown complete",
				"cacheHits", stats.Hits,
				"refreshes", stats.Refreshes,
				"refreshFailures", stats.RefreshFailures)

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
