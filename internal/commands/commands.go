// Package commands parses and runs the console's slash commands (e.g. "/lang en").
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
)

const prefix = "/"

// ErrUnknown is returned by Execute for a name nobody registered.
var ErrUnknown = errors.New("unknown command")

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state and
// positional arguments via FlagSet.Args().
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns a registry that already knows "help".
func NewRegistry() *Registry {
	r := &Registry{cmds: make(map[string]*Command)}
	r.Register("help", "list commands", NewFlagSet("help"), nil)
	return r
}

// NewFlagSet returns a FlagSet that reports parse errors instead of exiting or printing.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. name is the first token after "/" (e.g. "lang").
// fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Help returns one "/name  usage" line per command.
func (r *Registry) Help() []string {
	var lines []string
	for _, n := range r.Names() {
		lines = append(lines, fmt.Sprintf("%s%s  %s", prefix, n, r.cmds[n].Usage))
	}
	return lines
}

// Parse interprets line as a console line. If line starts with "/", the rest is tokenized by
// spaces and returned with ok true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	return strings.Fields(line[len(prefix):]), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// "help" returns the command list as output. Returns an error for an unknown command, a parse
// error, or from Run().
func (r *Registry) Execute(args []string) (output []string, err error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing command (try %shelp)", prefix)
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if name == "help" {
		return r.Help(), nil
	}
	return nil, cmd.Run()
}
