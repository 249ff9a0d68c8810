package vconsole

import "go.uber.org/zap"

// NewLogger builds the package's structured logger. Debug selects the
// human-readable development encoder; production builds use the
// default JSON encoder, the same split the daemon's boot config
// exposes via BootConfig.Debug.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
