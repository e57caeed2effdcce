package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"notetaking-be/pkg/noteclient"

	"github.com/spf13/cobra"
)

var (
	createTitle   string
	createContent string
	createFile    string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a text, audio or image note",
}

var createTextCmd = &cobra.Command{
	Use:   "text",
	Short: "Create a text note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		note, err := store.CreateTextNote(cmd.Context(), createTitle, optionalContent(cmd))
		if err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Note created: %s", note.ID)
		return nil
	},
}

var createAudioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Create an audio note from a local file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, closeFn, err := openFile(createFile)
		if err != nil {
			return err
		}
		defer closeFn()

		note, err := store.CreateAudioNote(cmd.Context(), createTitle, file)
		if err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Audio note created: %s (%s)", note.ID, deref(note.FilePath))
		return nil
	},
}

var createImageCmd = &cobra.Command{
	Use:   "image",
	Short: "Create an image note from a local file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, closeFn, err := openFile(createFile)
		if err != nil {
			return err
		}
		defer closeFn()

		note, err := store.CreateImageNote(cmd.Context(), createTitle, optionalContent(cmd), file)
		if err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Image note created: %s (%s)", note.ID, deref(note.FilePath))
		return nil
	},
}

// optionalContent distinguishes an omitted --content from an empty one.
func optionalContent(cmd *cobra.Command) *string {
	if !cmd.Flags().Changed("content") {
		return nil
	}
	return &createContent
}

func openFile(path string) (noteclient.File, func(), error) {
	if path == "" {
		return noteclient.File{}, nil, fmt.Errorf("--file is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return noteclient.File{}, nil, err
	}

	return noteclient.File{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Reader:      f,
	}, func() { _ = f.Close() }, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func init() {
	for _, c := range []*cobra.Command{createTextCmd, createAudioCmd, createImageCmd} {
		c.Flags().StringVar(&createTitle, "title", "", "note title")
		_ = c.MarkFlagRequired("title")
	}
	createTextCmd.Flags().StringVar(&createContent, "content", "", "note body")
	createImageCmd.Flags().StringVar(&createContent, "content", "", "image caption")
	createAudioCmd.Flags().StringVar(&createFile, "file", "", "audio file to upload")
	createImageCmd.Flags().StringVar(&createFile, "file", "", "image file to upload")

	createCmd.AddCommand(createTextCmd, createAudioCmd, createImageCmd)
}
