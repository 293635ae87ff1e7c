package root

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pulsestudy/internal/engine"
	"pulsestudy/internal/ui"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes",
	}
	cmd.AddCommand(
		newNoteAddCmd(),
		newNoteEditCmd(),
		newNoteListCmd(),
		newNoteShowCmd(),
		newNoteRmCmd(),
		newNoteAttachCmd(),
	)
	return cmd
}

func readAttachment(path string) (*engine.NoteFile, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	typ := mime.TypeByExtension(filepath.Ext(path))
	if typ == "" {
		typ = "application/octet-stream"
	}
	return &engine.NoteFile{Name: filepath.Base(path), Type: typ, Data: data}, nil
}

func newNoteAddCmd() *cobra.Command {
	var title, body, file string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note (+15 XP)",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readAttachment(file)
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			note, created, err := svc.SaveNote(ctx, engine.NoteInput{Title: title, Body: body, File: f})
			if err != nil {
				return err
			}
			if note.ID == "" {
				return errors.New("note needs a title, a body or a file")
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconNote, "Note saved"))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render(shortID(note.ID)), note.Title)
			if created {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(fmt.Sprintf("%s +%d XP", ui.IconSparkle, engine.NoteCreatedXP)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "Note body")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Attach a file")

	return cmd
}

func newNoteEditCmd() *cobra.Command {
	var title, body string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note's title or body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.ResolveNote(args[0])
			if err != nil {
				return err
			}
			current, _ := svc.Note(id)
			in := engine.NoteInput{ID: id, Title: current.Title, Body: current.Body}
			if cmd.Flags().Changed("title") {
				in.Title = title
			}
			if cmd.Flags().Changed("body") {
				in.Body = body
			}
			note, _, err := svc.SaveNote(ctx, in)
			if err != nil {
				return err
			}
			if note.ID == "" {
				return errors.New("note needs a title or a body")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render("Updated:"), note.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "New body")

	return cmd
}

func newNoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			notes := svc.Notes()
			fmt.Fprintln(out, ui.Heading(ui.IconNote, "Notes"))
			if len(notes) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No notes yet."))
				return nil
			}
			for _, n := range notes {
				line := fmt.Sprintf("%s %s %s", ui.Muted.Render(shortID(n.ID)), n.Title, ui.Muted.Render(n.Created.Format("2006-01-02")))
				if n.File != nil {
					line += " " + ui.Muted.Render("["+n.File.Name+"]")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newNoteShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.ResolveNote(args[0])
			if err != nil {
				return err
			}
			n, _ := svc.Note(id)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconNote, n.Title))
			if n.Body != "" {
				fmt.Fprintln(out, n.Body)
			}
			if n.File != nil {
				fmt.Fprintln(out, ui.LabelValue("Attachment", fmt.Sprintf("%s (%s, %d bytes)", n.File.Name, n.File.Type, len(n.File.Data))))
			}
			return nil
		},
	}
}

func newNoteRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.ResolveNote(args[0])
			if err != nil {
				return err
			}
			if _, err := svc.DeleteNote(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Note deleted."))
			return nil
		},
	}
}

func newNoteAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <id> <file>",
		Short: "Replace a note's attachment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readAttachment(args[1])
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := svc.ResolveNote(args[0])
			if err != nil {
				return err
			}
			if _, err := svc.AttachFile(ctx, id, *f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Attached: ")+f.Name)
			return nil
		},
	}
}
