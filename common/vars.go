package common

var (
	// Version is overridden at build time with -ldflags "-X .../common.Version=..."
	Version = "dev"

	// PackageName is used as the metrics namespace.
	PackageName = "kyc_onboarding"
)
