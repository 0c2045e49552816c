package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/feds01/cs3099/internal/core/domain"
)

var (
	uploadFile string
	uploadID   string
	uploadName string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a zip archive to a publication",
	Long: `Upload a zip archive as the sources of a publication.

The publication is selected with --id or --name (not both). When the
publication is no longer a draft its sources cannot be replaced; you are
then offered to create a new revision and the archive is uploaded to it.

Examples:
  pubcli upload --file paper.zip --name trinity
  pubcli upload --file paper.zip --id 61a4c2`,
	Args: cobra.NoArgs,
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadFile, "file", "f", "", "Path of the zip file to upload")
	uploadCmd.Flags().StringVar(&uploadID, "id", "", "Publication ID")
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "Publication name")
	uploadCmd.MarkFlagsMutuallyExclusive("id", "name")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if publicationService == nil {
		return errors.New("publication service not configured")
	}
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	prompter := newTerminalPrompter(cmd)
	file := uploadFile
	if file == "" {
		var err error
		if file, err = prompter.required("File path"); err != nil {
			return err
		}
	}
	lookup, err := prompter.lookup(uploadID, uploadName)
	if err != nil {
		return err
	}

	identity, err := sessionService.Resolve(cmd.Context())
	if err != nil {
		return reportError(cmd, err)
	}
	ref, err := publicationService.Resolve(cmd.Context(), identity, lookup)
	if err != nil {
		return reportError(cmd, err)
	}

	result, err := uploadService.Upload(cmd.Context(), identity, *ref, file, prompter)
	if err != nil {
		return reportError(cmd, err)
	}
	printUploadResult(cmd, result)
	return nil
}

func printUploadResult(cmd *cobra.Command, result *domain.UploadResult) {
	if rev := result.Revision; rev != nil {
		printRevision(cmd, rev)
	}

	outcome := result.Outcome
	switch {
	case result.Declined:
		cmd.Println("Aborted!")
	case outcome.Kind == domain.OutcomeSuccess:
		cmd.Printf("Success: File uploaded to %s(%s)\n", result.Target.Name, outcome.PublicationURL)
	default:
		cmd.Printf("Response Error: %s\n", outcome.Message)
	}
}
