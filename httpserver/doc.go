/*
Package httpserver runs the onboarding service's HTTP listener.

The server mounts any number of route registrars (the onboarding handler in
production) next to a fixed set of operational endpoints:

  - GET /livez - process is up
  - GET /readyz - serving traffic; 503 while draining or when the readiness
    check (credential store reachability) fails
  - GET /drain, GET /undrain - toggle readiness for load balancer rotation
  - /debug/pprof - when EnablePprof is set

Prometheus metrics are served by a separate listener on MetricsAddr.

# Usage Example

	srv, err := httpserver.New(&api.HTTPServerConfig{
		ListenAddr:               ":8080",
		MetricsAddr:              ":8090",
		Log:                      logger,
		DrainDuration:            15 * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
	}, onboardinghandler.NewHandler(orchestrator, logger))
	if err != nil {
		return err
	}
	srv.SetReadinessCheck(store.Available)
	srv.RunInBackground()
	defer srv.Shutdown()
*/
package httpserver
