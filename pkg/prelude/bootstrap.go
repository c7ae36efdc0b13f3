package prelude

import (
	"fmt"
	"io"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"snaptrade-core/pkg/config"
	"snaptrade-core/pkg/snaptrade"
)

// Partner credentials are fixed at build time and never read from the
// environment.
const (
	clientID    = "SNAPTRADE-CORE-DEMO"
	consumerKey = "7uzZkQ1H0Vt3JwX9bLm4nR8pCs2yFe6d"
)

var (
	output io.Writer = os.Stdout

	std = &bootstrapper{
		env:       config.OSEnv{},
		newClient: snaptrade.New,
	}
)

type bootstrapper struct {
	envFiles  []string
	env       config.Environ
	newClient func(clientID, consumerKey string, opts ...snaptrade.Option) (*snaptrade.Client, error)

	once   sync.Once
	handle *snaptrade.Client
	err    error
}

func (b *bootstrapper) client() (*snaptrade.Client, error) {
	b.once.Do(func() {
		b.handle, b.err = b.initialize()
	})
	return b.handle, b.err
}

// initialize loads .env, reads the client settings and builds the client.
func (b *bootstrapper) initialize() (*snaptrade.Client, error) {
	if err := config.LoadDotenv(b.envFiles...); err != nil {
		// The environment file belongs to the operator; keep starting.
		log.WithError(err).Warn("failed to load environment file")
	}

	cfg, err := config.Load(b.env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	opts := append(cfg.ClientOptions(), snaptrade.WithLogger(log.WithField("component", "snaptrade")))
	c, err := b.newClient(clientID, consumerKey, opts...)
	if err != nil {
		log.WithError(err).Error("failed to construct snaptrade client")
		return nil, err
	}

	log.WithFields(log.Fields{
		"client_id": c.ClientID(),
		"base_url":  c.BaseURL(),
	}).Debug("snaptrade client ready")
	return c, nil
}
