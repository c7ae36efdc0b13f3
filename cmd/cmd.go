package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"snaptrade-core/pkg/config"
	"snaptrade-core/pkg/i18n"
	"snaptrade-core/pkg/logging"
	"snaptrade-core/pkg/prelude"
)

const requestTimeout = 30 * time.Second

// Execute builds the command tree and executes commands.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	c := &cobra.Command{
		Use:           "snaptrade-core",
		Short:         "Bootstrap the SnapTrade client and query the API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		// Without a subcommand, report the API status.
		RunE: runStatus,
	}

	c.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the SnapTrade API status",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	})
	c.AddCommand(&cobra.Command{
		Use:   "users",
		Short: "List users registered under this client",
		Args:  cobra.NoArgs,
		RunE:  runUsers,
	})
	c.AddCommand(&cobra.Command{
		Use:   "register [user-id]",
		Short: "Register a user; a UUID is generated when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRegister,
	})
	return c
}

// setup loads .env and configures logging and language before the client is
// bootstrapped.
func setup() error {
	if err := prelude.LoadDotenv(); err != nil {
		log.WithError(err).Warn("failed to load environment file")
	}
	cfg, err := config.Load(prelude.OS)
	if err != nil {
		return fmt.Errorf(i18n.Get("ConfigLoadFailed"), err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	i18n.SetLanguage(i18n.Language(cfg.Language))
	log.Info(i18n.Get("Starting"))
	return nil
}

func client() (*prelude.SnapTrade, error) {
	c, err := prelude.Default()
	if err != nil {
		return nil, fmt.Errorf(i18n.Get("ClientInitFailed"), err)
	}
	log.Infof(i18n.Get("ClientReady"), c.ClientID(), c.BaseURL())
	return c, nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	c, err := client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	status, err := c.APIStatus(ctx)
	if err != nil {
		return fmt.Errorf(i18n.Get("StatusCheckFailed"), err)
	}
	if status.Online {
		log.Infof(i18n.Get("APIOnline"), status.Version)
	} else {
		log.Warn(i18n.Get("APIOffline"))
	}
	prelude.Pprint(status)
	return nil
}

func runUsers(cmd *cobra.Command, args []string) error {
	c, err := client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	users, err := c.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf(i18n.Get("ListUsersFailed"), err)
	}
	log.Infof(i18n.Get("UserCount"), len(users))
	prelude.Pprint(users)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	c, err := client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	var userID string
	if len(args) == 1 {
		userID = args[0]
	}
	user, err := c.RegisterUser(ctx, userID)
	if err != nil {
		return err
	}
	prelude.Pprint(user)
	return nil
}
