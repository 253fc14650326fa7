package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tdclient "github.com/gotd/td/telegram"

	"github.com/gnomegl/tgpin/internal/config"
	"github.com/gnomegl/tgpin/internal/flags"
	"github.com/gnomegl/tgpin/internal/logging"
	"github.com/gnomegl/tgpin/pkg/authflow"
	"github.com/gnomegl/tgpin/pkg/fileutil"
	"github.com/gnomegl/tgpin/pkg/pipeline"
	"github.com/gnomegl/tgpin/pkg/telegram"
	"github.com/gnomegl/tgpin/pkg/upload"
)

var exportFlags flags.ExportFlags

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run one authenticate-collect-deliver pass over the configured chats",
	Long: `Run the export pipeline once: authenticate (interactively if the saved
session is missing or expired), collect the pinned messages of every chat
listed in the config, sort them by date and deliver the JSON artifact.

Chat resolution failures and senders without a public handle abort the run
with no output. A failed upload does not: the run still succeeds and the
local artifact (if configured) is kept.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	flags.AddExportFlags(exportCmd, &exportFlags)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if exportFlags.SessionFile != "" {
		cfg.Telegram.SessionFile = exportFlags.SessionFile
	}
	if exportFlags.Output != "" {
		cfg.Export.Output = exportFlags.Output
	}

	level := cfg.Log.Level
	if quiet {
		level = "warn"
	}
	log := logging.Setup(level, os.Stderr)

	// Provider validation happens here, before anything touches the
	// network.
	uploader, err := upload.ForProvider(cfg.Upload.Provider, cfg.Upload.Token)
	if err != nil {
		return err
	}
	if exportFlags.NoUpload {
		uploader = nil
	}

	if !fileutil.FileExists(cfg.Telegram.SessionFile) {
		printStatus("No saved session found, you will be asked to sign in.")
	}

	store := telegram.NewSessionStore(cfg.Telegram.SessionFile)
	client := tdclient.NewClient(cfg.Telegram.APIID, cfg.Telegram.APIHash, tdclient.Options{
		SessionStorage: store,
	})

	printStatus("Connecting to Telegram...")
	err = client.Run(cmd.Context(), func(ctx context.Context) error {
		printStatus("Connected!")
		return pipeline.Run(ctx, pipeline.Options{
			Client:   telegram.NewMTProto(client),
			Prompt:   authflow.NewConsolePrompter(os.Stdin, os.Stderr),
			Session:  store,
			Uploader: uploader,
			Chats:    cfg.Export.Chats,
			Output:   cfg.Export.Output,
			Log:      log,
		})
	})
	if err != nil {
		return err
	}
	printDone("Export complete")
	return nil
}
