package main

import (
	"github.com/jimyag/qosd/internal/qosd"
	"github.com/jimyag/qosd/internal/qosd/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "qosd",
		Short:         "QoS specs control plane",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (QOSD_* environment variables take precedence)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the qosd HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			server, err := qosd.New(cfg)
			if err != nil {
				return err
			}
			return server.Run(cmd.Context())
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			out, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	rootCmd.AddCommand(serveCmd, configCmd)
	return rootCmd
}
