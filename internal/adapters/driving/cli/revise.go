package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/feds01/cs3099/internal/core/domain"
)

var (
	reviseRevision      string
	reviseChangelog     string
	reviseChangelogFile string
	reviseID            string
	reviseName          string
)

var reviseCmd = &cobra.Command{
	Use:   "revise",
	Short: "Create a new revision of a publication",
	Long: `Create a new revision of a publication.

A revision is a new publication that takes over the name; its sources can
be uploaded again. The changelog is given inline with --changelog or read
from a file with --changelog-file.

Examples:
  pubcli revise --name trinity --revision v2 --changelog "Added results"
  pubcli revise --id 61a4c2 --revision v2 --changelog-file CHANGELOG.md`,
	Args: cobra.NoArgs,
	RunE: runRevise,
}

func init() {
	reviseCmd.Flags().StringVarP(&reviseRevision, "revision", "r", "", "Revision number, e.g. v2")
	reviseCmd.Flags().StringVar(&reviseChangelog, "changelog", "", "Changelog text")
	reviseCmd.Flags().StringVar(&reviseChangelogFile, "changelog-file", "", "Path of a file holding the changelog")
	reviseCmd.Flags().StringVar(&reviseID, "id", "", "Publication ID")
	reviseCmd.Flags().StringVar(&reviseName, "name", "", "Publication name")
	reviseCmd.MarkFlagsMutuallyExclusive("id", "name")
	reviseCmd.MarkFlagsMutuallyExclusive("changelog", "changelog-file")
	rootCmd.AddCommand(reviseCmd)
}

func runRevise(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if publicationService == nil {
		return errors.New("publication service not configured")
	}

	prompter := newTerminalPrompter(cmd)
	req, err := revisionRequest(prompter)
	if err != nil {
		return err
	}
	lookup, err := prompter.lookup(reviseID, reviseName)
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

	result, err := publicationService.Revise(cmd.Context(), identity, *ref, req)
	if err != nil {
		return reportError(cmd, err)
	}
	printRevision(cmd, result)
	return nil
}

// revisionRequest builds the request from flags, prompting for the rest.
func revisionRequest(prompter *terminalPrompter) (domain.RevisionRequest, error) {
	var err error
	req := domain.RevisionRequest{Revision: reviseRevision, Changelog: reviseChangelog}
	if req.Revision == "" {
		if req.Revision, err = prompter.required("Revision number"); err != nil {
			return req, err
		}
	}

	switch {
	case reviseChangelogFile != "":
		req.Changelog, err = readChangelogFile(reviseChangelogFile)
	case req.Changelog == "":
		var input string
		if input, err = prompter.line("Changelog"); err == nil {
			req.Changelog, err = loadChangelog(input)
		}
	}
	return req, err
}

func printRevision(cmd *cobra.Command, result *domain.RevisionResult) {
	created := domain.Reference{ID: result.NewID, Name: result.Original.Name}
	cmd.Printf("Success: Revision %s of %s created as %s\n", result.Revision, result.Original, created)
}
