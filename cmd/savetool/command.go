package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/osse101/idlefarm/internal/bootstrap"
)

// Toolbox is what every command works against
type Toolbox struct {
	Session *bootstrap.Session
	In      io.Reader
	Out     io.Writer
}

// Command interface that all savetool commands must implement
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, tb *Toolbox, args []string) error
}

// Registry manages the available commands
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// DefaultRegistry holds every savetool command
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&StatusCommand{})
	r.Register(&ExportCommand{})
	r.Register(&ImportCommand{})
	r.Register(&RecoverCommand{name: cmdRestoreBackup, option: optionRestoreBackup, description: "Replace the main save with the backup slot"})
	r.Register(&RecoverCommand{name: cmdReset, option: optionReset, description: "Start a new farm and save it over the main slot", destructive: true})
	r.Register(&RecoverCommand{name: cmdDiscard, option: optionDiscard, description: "Delete the main and backup saves", destructive: true})
	return r
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns a sorted list of all registered commands
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// PrintHelp prints the usage information
func (r *Registry) PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: savetool <command> [flags]")
	fmt.Fprintln(w, "\nAvailable Commands:")

	cmds := r.List()
	maxLen := 0
	for _, cmd := range cmds {
		if len(cmd.Name()) > maxLen {
			maxLen = len(cmd.Name())
		}
	}

	for _, cmd := range cmds {
		padding := maxLen - len(cmd.Name()) + 2
		fmt.Fprintf(w, "  %s%*s%s\n", cmd.Name(), padding, "", cmd.Description())
	}
}
