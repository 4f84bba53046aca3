package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ruteri/kyc-onboarding-backend/api"
	"github.com/ruteri/kyc-onboarding-backend/common"
	"github.com/ruteri/kyc-onboarding-backend/config"
	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/ruteri/kyc-onboarding-backend/storage"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String("log-service")

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *api.HTTPServerConfig {
	metricsAddr := cCtx.String("metrics-addr")
	enablePprof := cCtx.Bool("pprof")
	drainDuration := time.Duration(cCtx.Int64("drain-seconds")) * time.Second

	return &api.HTTPServerConfig{
		ListenAddr:               listenAddr,
		MetricsAddr:              metricsAddr,
		Log:                      logger,
		EnablePprof:              enablePprof,
		DrainDuration:            drainDuration,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

// ConfigFromFlags collects the service config from the provider flags.
// The result is not validated.
func ConfigFromFlags(cCtx *cli.Context) config.Config {
	return config.Config{
		KYCAPISecret:     cCtx.String(KYCAPISecretFlag.Name),
		SSIAPISecret:     cCtx.String(SSIAPISecretFlag.Name),
		KYCBaseURL:       cCtx.String(KYCBaseURLFlag.Name),
		SSIBaseURL:       cCtx.String(SSIBaseURLFlag.Name),
		DashboardBaseURL: cCtx.String(DashboardBaseURLFlag.Name),
		Audience:         cCtx.String(AudienceFlag.Name),
		Issuer: interfaces.IssuerIdentity{
			DID:                  cCtx.String(IssuerDIDFlag.Name),
			VerificationMethodID: cCtx.String(IssuerVerificationMethodFlag.Name),
		},
		CredentialStore:           cCtx.String(CredentialStoreFlag.Name),
		CredentialStorePassphrase: cCtx.String(CredentialStorePassphraseFlag.Name),
		VaultToken:                cCtx.String(VaultTokenFlag.Name),
		ExpiryBuffer:              cCtx.Duration(ExpiryBufferFlag.Name),
		UpstreamTimeout:           cCtx.Duration(UpstreamTimeoutFlag.Name),
	}
}

// SetupCredentialStore builds the (possibly multi-location) credential store
// described by cfg. The record is sealed when a passphrase is configured.
func SetupCredentialStore(cfg config.Config, logger *slog.Logger) (interfaces.CredentialStore, error) {
	locations, err := storage.ParseLocations(cfg.CredentialStore)
	if err != nil {
		return nil, err
	}

	var codec storage.RecordCodec
	if cfg.CredentialStorePassphrase != "" {
		codec = storage.NewSealedCodec(cfg.CredentialStorePassphrase, common.PackageName)
	}

	return storage.NewStoreFactory(logger, codec, cfg.VaultToken).CreateMultiStore(locations)
}

var KYCAPISecretFlag = &cli.StringFlag{
	Name:    "kyc-api-secret",
	EnvVars: []string{"KYC_API_SECRET"},
	Usage:   "application secret exchanged for the KYC admin token",
}
var SSIAPISecretFlag = &cli.StringFlag{
	Name:    "ssi-api-secret",
	EnvVars: []string{"SSI_API_SECRET"},
	Usage:   "application secret exchanged for the SSI admin token",
}
var KYCBaseURLFlag = &cli.StringFlag{
	Name:    "kyc-base-url",
	EnvVars: []string{"KYC_BASE_URL"},
	Value:   config.DefaultKYCBaseURL,
	Usage:   "base URL of the KYC service",
}
var SSIBaseURLFlag = &cli.StringFlag{
	Name:    "ssi-base-url",
	EnvVars: []string{"SSI_BASE_URL"},
	Value:   config.DefaultSSIBaseURL,
	Usage:   "base URL of the SSI service",
}
var DashboardBaseURLFlag = &cli.StringFlag{
	Name:    "dashboard-base-url",
	EnvVars: []string{"DASHBOARD_BASE_URL"},
	Value:   config.DefaultDashboardBaseURL,
	Usage:   "base URL of the developer dashboard issuing admin tokens",
}
var AudienceFlag = &cli.StringFlag{
	Name:    "kyc-audience",
	EnvVars: []string{"KYC_AUDIENCE"},
	Value:   config.DefaultAudience,
	Usage:   "audience of signed claim assertions",
}
var IssuerDIDFlag = &cli.StringFlag{
	Name:    "issuer-did",
	EnvVars: []string{"ISSUER_DID"},
	Usage:   "DID that signs user claim assertions",
}
var IssuerVerificationMethodFlag = &cli.StringFlag{
	Name:    "issuer-verification-method-id",
	EnvVars: []string{"ISSUER_VERIFICATION_METHOD_ID"},
	Usage:   "verification method of the issuer DID, e.g. did:hid:z6Mk...#key-1",
}
var CredentialStoreFlag = &cli.StringFlag{
	Name:    "credential-store",
	EnvVars: []string{"CREDENTIAL_STORE"},
	Value:   config.DefaultCredentialStore,
	Usage:   "comma separated admin credential store URIs (file://, mem://, s3://, vault://, redis://)",
}
var CredentialStorePassphraseFlag = &cli.StringFlag{
	Name:    "credential-store-passphrase",
	EnvVars: []string{"CREDENTIAL_STORE_PASSPHRASE"},
	Usage:   "if set, the persisted admin credentials are encrypted with a key derived from it",
}
var VaultTokenFlag = &cli.StringFlag{
	Name:    "vault-token",
	EnvVars: []string{"VAULT_TOKEN"},
	Usage:   "token for vault:// credential stores",
}
var ExpiryBufferFlag = &cli.DurationFlag{
	Name:    "expiry-buffer",
	EnvVars: []string{"ADMIN_TOKEN_EXPIRY_BUFFER"},
	Value:   config.DefaultExpiryBuffer,
	Usage:   "refresh admin tokens this long before they expire",
}
var UpstreamTimeoutFlag = &cli.DurationFlag{
	Name:    "upstream-timeout",
	EnvVars: []string{"UPSTREAM_TIMEOUT"},
	Value:   config.DefaultUpstreamTimeout,
	Usage:   "timeout of each request to the identity providers",
}

var ProviderFlags = []cli.Flag{
	KYCAPISecretFlag,
	SSIAPISecretFlag,
	KYCBaseURLFlag,
	SSIBaseURLFlag,
	DashboardBaseURLFlag,
	AudienceFlag,
	IssuerDIDFlag,
	IssuerVerificationMethodFlag,
	CredentialStoreFlag,
	CredentialStorePassphraseFlag,
	VaultTokenFlag,
	ExpiryBufferFlag,
	UpstreamTimeoutFlag,
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "log-service",
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: "127.0.0.1:8090",
	Usage: "address to listen on for Prometheus metrics",
}

var LogFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
}

var CommonFlags = append(append([]cli.Flag{}, LogFlags...),
	PprofFlag,
	DrainSecondsFlag,
	MetricsAddrFlag,
)
