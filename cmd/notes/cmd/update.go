package cmd

import (
	"fmt"

	"notetaking-be/pkg/noteclient"

	"github.com/spf13/cobra"
)

var (
	updateTitle        string
	updateContent      string
	updateClearContent bool
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a note's title or content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := noteclient.UpdateInput{ClearContent: updateClearContent}
		if cmd.Flags().Changed("title") {
			in.Title = &updateTitle
		}
		if cmd.Flags().Changed("content") {
			if updateClearContent {
				return fmt.Errorf("--content and --clear-content are mutually exclusive")
			}
			in.Content = &updateContent
		}

		note, err := store.UpdateNote(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Note updated: %s", note.Title)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title (empty keeps the current one)")
	updateCmd.Flags().StringVar(&updateContent, "content", "", "new content")
	updateCmd.Flags().BoolVar(&updateClearContent, "clear-content", false, "remove the content")
}
