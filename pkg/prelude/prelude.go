// Package prelude is the convenience import for scripts and services that
// talk to SnapTrade. It exports exactly five names: Pprint, SnapTrade, OS,
// LoadDotenv and Default.
package prelude

import (
	"fmt"

	"github.com/kr/pretty"

	"snaptrade-core/pkg/config"
	"snaptrade-core/pkg/snaptrade"
)

// SnapTrade is the API client type.
type SnapTrade = snaptrade.Client

// OS is the process environment, including keys loaded from .env.
var OS config.Environ = config.OSEnv{}

// Pprint pretty-prints each value on its own line with field names.
func Pprint(a ...interface{}) {
	for _, v := range a {
		fmt.Fprintf(output, "%# v\n", pretty.Formatter(v))
	}
}

// LoadDotenv loads key=value files (default .env) into the environment.
// Missing files are ignored and existing variables are never overridden.
func LoadDotenv(filenames ...string) error {
	return config.LoadDotenv(filenames...)
}

// Default returns the process-wide client, bootstrapping it on first use.
// A construction failure is returned on every call and no client is
// published.
func Default() (*SnapTrade, error) {
	return std.client()
}
