package flags

import "github.com/spf13/cobra"

type ExportFlags struct {
	SessionFile string
	Output      string
	NoUpload    bool
}

func AddExportFlags(cmd *cobra.Command, flags *ExportFlags) {
	cmd.Flags().StringVarP(&flags.SessionFile, "session", "s", "", "Session file path (overrides telegram.session_file)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Local JSON artifact path (overrides export.output)")
	cmd.Flags().BoolVar(&flags.NoUpload, "no-upload", false, "Skip delivery, only collect and write locally")
}
