package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/save"
)

const (
	cmdStatus        = "status"
	cmdExport        = "export"
	cmdImport        = "import"
	cmdRestoreBackup = "restore-backup"
	cmdReset         = "reset"
	cmdDiscard       = "discard"

	optionRestoreBackup = save.RecoverRestoreBackup
	optionReset         = save.RecoverReset
	optionDiscard       = save.RecoverDiscard

	stdinPath = "-"
)

var errConfirmFlag = errors.New("refusing to overwrite without -confirm")

// loadCurrent brings the stored game into memory. An empty store and a
// corrupt main slot are both reported but not fatal.
func loadCurrent(ctx context.Context, tb *Toolbox) error {
	report, err := tb.Session.Saves.Load(ctx)
	var recovery *save.RecoveryRequiredError
	switch {
	case err == nil:
		if msg := report.WelcomeMessage(); msg != "" {
			PrintInfo(tb.Out, "%s", msg)
		}
		return nil
	case errors.Is(err, domain.ErrNoSave):
		PrintWarning(tb.Out, "No saved game found")
		return nil
	case errors.As(err, &recovery):
		PrintWarning(tb.Out, "Main save is corrupted: %v", recovery.Cause)
		return nil
	default:
		return err
	}
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

type StatusCommand struct{}

func (c *StatusCommand) Name() string { return cmdStatus }

func (c *StatusCommand) Description() string {
	return "Show which save slots hold data"
}

func (c *StatusCommand) Run(ctx context.Context, tb *Toolbox, args []string) error {
	if err := loadCurrent(ctx, tb); err != nil {
		return err
	}
	st, err := tb.Session.Saves.Status(ctx)
	if err != nil {
		return err
	}

	PrintHeader(tb.Out, "Save slots")
	fmt.Fprintf(tb.Out, "  main:     %s\n", present(st.HasSave))
	fmt.Fprintf(tb.Out, "  backup:   %s\n", present(st.HasBackup))
	fmt.Fprintf(tb.Out, "  recovery: %s\n", pending(st.RecoveryPending))

	balance := tb.Session.Game.Balance()
	crops, trees := tb.Session.Game.ReadyCounts()
	fmt.Fprintf(tb.Out, "  coins:    %d\n", balance)
	fmt.Fprintf(tb.Out, "  ready:    %d crops, %d trees\n", crops, trees)
	return nil
}

func present(ok bool) string {
	if ok {
		return "present"
	}
	return "empty"
}

func pending(ok bool) string {
	if ok {
		return "pending"
	}
	return "none"
}

type ExportCommand struct{}

func (c *ExportCommand) Name() string { return cmdExport }

func (c *ExportCommand) Description() string {
	return "Print the main save as base64 text (-o file to write it instead)"
}

func (c *ExportCommand) Run(ctx context.Context, tb *Toolbox, args []string) error {
	fs := newFlagSet(cmdExport, tb.Out)
	output := fs.String("o", "", "write the export to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := tb.Session.Saves.Load(ctx); err != nil {
		return err
	}

	text, err := tb.Session.Saves.ExportText(ctx)
	if err != nil {
		return err
	}

	if *output == "" {
		_, err := fmt.Fprintln(tb.Out, text)
		return err
	}
	if err := os.WriteFile(*output, []byte(text+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	PrintSuccess(tb.Out, "Exported save to %s", *output)
	return nil
}

type ImportCommand struct{}

func (c *ImportCommand) Name() string { return cmdImport }

func (c *ImportCommand) Description() string {
	return "Replace the main save with exported text from a file or - for stdin (-confirm required)"
}

func (c *ImportCommand) Run(ctx context.Context, tb *Toolbox, args []string) error {
	fs := newFlagSet(cmdImport, tb.Out)
	confirm := fs.Bool("confirm", false, "overwrite the current save")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := stdinPath
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	var (
		raw []byte
		err error
	)
	if path == stdinPath {
		raw, err = io.ReadAll(tb.In)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read import: %w", err)
	}

	if err := loadCurrent(ctx, tb); err != nil {
		return err
	}

	report, err := tb.Session.Saves.ImportText(ctx, strings.TrimSpace(string(raw)), *confirm)
	if errors.Is(err, domain.ErrConfirmationRequired) {
		return errConfirmFlag
	}
	if err != nil {
		return err
	}

	PrintSuccess(tb.Out, "Imported save, previous game kept as backup")
	if msg := report.WelcomeMessage(); msg != "" {
		PrintInfo(tb.Out, "%s", msg)
	}
	return nil
}

// RecoverCommand runs one recovery option against the store
type RecoverCommand struct {
	name        string
	option      string
	description string
	destructive bool
}

func (c *RecoverCommand) Name() string { return c.name }

func (c *RecoverCommand) Description() string {
	if c.destructive {
		return c.description + " (-confirm required)"
	}
	return c.description
}

func (c *RecoverCommand) Run(ctx context.Context, tb *Toolbox, args []string) error {
	fs := newFlagSet(c.name, tb.Out)
	confirm := fs.Bool("confirm", false, "allow destroying the current save")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.destructive && !*confirm {
		return errConfirmFlag
	}

	report, err := tb.Session.Saves.Recover(ctx, c.option)
	if err != nil {
		return err
	}

	PrintSuccess(tb.Out, "%s complete", c.name)
	if msg := report.WelcomeMessage(); msg != "" {
		PrintInfo(tb.Out, "%s", msg)
	}
	return nil
}
