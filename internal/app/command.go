package app

import (
	"fmt"

	"github.com/m4ur1n0/rtvf-information-automation/internal/delivery"
	"github.com/m4ur1n0/rtvf-information-automation/internal/feed"
	"github.com/m4ur1n0/rtvf-information-automation/internal/pkg/pkgconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func (a *App) initCommands() {
	a.root = &cobra.Command{
		Use:           "rtvf",
		Short:         "Export the RTVF listserv feed and deliver it to the ingestion webhook",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initConfig(cmd); err != nil {
				return err
			}
			return a.initLibraries()
		},
	}

	a.root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath(), "path to the config file")
	configFlag(a.root.PersistentFlags(), "log-level", "log.level", "", "log level (debug, info, warn, error)")

	a.root.AddCommand(a.exportCommand(), a.uploadCommand(), a.serveCommand())
}

// configFlag declares a string flag that overrides key when set.
func configFlag(fs *pflag.FlagSet, name, key, value, usage string) {
	fs.String(name, value, usage)
	//nolint:errcheck // the flag was just declared
	fs.SetAnnotation(name, pkgconfig.FlagAnnotation, []string{key})
}

func configIntFlag(fs *pflag.FlagSet, name, key string, value int, usage string) {
	fs.Int(name, value, usage)
	//nolint:errcheck // the flag was just declared
	fs.SetAnnotation(name, pkgconfig.FlagAnnotation, []string{key})
}

func (a *App) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert the saved feed document into the csv record file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := a.config.GetString("feed.input_path")
			out := a.config.GetString("feed.output_path")

			n, err := feed.ExportFile(in, out)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Success! Processed %d items into %s\n", n, out)
			return nil
		},
	}

	configFlag(cmd.Flags(), "input", "feed.input_path", "", "feed document to read")
	configFlag(cmd.Flags(), "output", "feed.output_path", "", "csv file to write")

	return cmd
}

func (a *App) uploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Deliver the csv record file to the ingestion webhook in chunks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mod, err := delivery.New(delivery.Dependency{
				Config:    a.config,
				UUID:      a.uuid,
				Snowflake: a.snowflake,
			})
			if err != nil {
				return err
			}

			report, err := mod.Upload(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), report.String())

			return err
		},
	}

	configFlag(cmd.Flags(), "source", "delivery.source.path", "", "csv file to deliver")
	configFlag(cmd.Flags(), "endpoint", "delivery.endpoint.base_url", "", "base url of the ingestion service")
	configIntFlag(cmd.Flags(), "chunk-size", "delivery.chunk_size", 0, "rows per request")

	return cmd
}

func (a *App) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local in-memory ingestion webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.initHTTPServer()
			if err := a.initModules(); err != nil {
				return err
			}
			return a.serve(cmd.Context())
		},
	}

	configFlag(cmd.Flags(), "address", "receiver.address", "", "listen address")

	return cmd
}
