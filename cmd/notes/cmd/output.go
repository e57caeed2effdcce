package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"notetaking-be/pkg/noteclient"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const (
	formatSimple = "simple"
	formatTable  = "table"
	formatJSON   = "json"
	formatYAML   = "yaml"
)

func printNotes(w io.Writer, format string, notes []noteclient.Note) error {
	switch format {
	case formatJSON:
		return printJSON(w, notes)
	case formatYAML:
		return printYAML(w, notes)
	case formatTable:
		return printNotesTable(w, notes)
	case formatSimple, "":
		return printNotesSimple(w, notes)
	default:
		return fmt.Errorf("unknown format %q (simple, table, json, yaml)", format)
	}
}

func printNote(w io.Writer, format string, note *noteclient.Note) error {
	switch format {
	case formatJSON:
		return printJSON(w, note)
	case formatYAML:
		return printYAML(w, note)
	default:
		return printNoteDetail(w, note)
	}
}

func printNotesSimple(w io.Writer, notes []noteclient.Note) error {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found")
		return nil
	}

	fmt.Fprintf(w, "Notes: %d\n\n", len(notes))
	for i, n := range notes {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, typeLabel(n.Type), n.Title)
		fmt.Fprintf(w, "   ID: %s | Updated: %s\n\n", n.ID, n.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printNotesTable(w io.Writer, notes []noteclient.Note) error {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tType\tTitle\tFile\tUpdated\t\n")
	fmt.Fprintf(tw, "---\t---\t---\t---\t---\t\n")
	for _, n := range notes {
		file := "-"
		if n.FilePath != nil {
			file = *n.FilePath
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			n.ID,
			n.Type,
			truncate(n.Title, 30),
			file,
			n.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d\n", len(notes))
	return nil
}

func printNoteDetail(w io.Writer, n *noteclient.Note) error {
	fmt.Fprintf(w, "%s %s\n", typeLabel(n.Type), color.New(color.Bold).Sprint(n.Title))
	fmt.Fprintf(w, "ID:      %s\n", n.ID)
	if n.Content != nil {
		fmt.Fprintf(w, "Content: %s\n", *n.Content)
	}
	if n.FilePath != nil {
		fmt.Fprintf(w, "File:    %s\n", *n.FilePath)
	}
	fmt.Fprintf(w, "Created: %s\n", n.CreatedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "Updated: %s\n", n.UpdatedAt.Local().Format(time.RFC3339))
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

func typeLabel(t noteclient.NoteType) string {
	switch t {
	case noteclient.NoteTypeAudio:
		return color.MagentaString("[audio]")
	case noteclient.NoteTypeImage:
		return color.CyanString("[image]")
	default:
		return color.BlueString("[text]")
	}
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, color.GreenString("✓ "+format, args...))
}
