package telemetry

// defaultService backs the package-level convenience API. Applications that
// need isolated runtimes (or several of them) use NewService directly.
var defaultService = NewService()

// Default returns the process-wide service used by the package-level
// functions.
func Default() *Service {
	return defaultService
}

// Setup installs cfg on the process-wide service.
func Setup(cfg Config) error {
	return defaultService.Setup(cfg)
}

// SetupFromEnv configures the process-wide service from the TELEMETRY_*
// environment variables.
func SetupFromEnv() error {
	return defaultService.SetupFromEnv()
}

// GetLogger returns a named handle on the process-wide service.
func GetLogger(name string) *Logger {
	return defaultService.GetLogger(name)
}

// Shutdown drains and deactivates the process-wide service.
func Shutdown() error {
	return defaultService.Shutdown()
}
