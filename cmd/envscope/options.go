package main

import (
	"fmt"
	"strings"

	"github.com/abhinav/envscope"
	"github.com/abhinav/envscope/internal/envfile"
	flags "github.com/jessevdk/go-flags"
)

type options struct {
	Version bool      `long:"version"`
	Print   *printCmd `command:"print"`
	Exec    *execCmd  `command:"exec"`
}

// overrideOptions are the flags shared by commands that build an overlay.
type overrideOptions struct {
	Files []string `short:"f" long:"file" value-name:"FILE"`
	Set   []string `short:"e" long:"env" value-name:"NAME=VALUE"`
	Unset []string `short:"u" long:"unset" value-name:"NAME"`
}

type printCmd struct {
	overrideOptions

	Args struct {
		Names []string `positional-arg-name:"NAME"`
	} `positional-args:"yes"`
}

type execCmd struct {
	overrideOptions

	Verbose bool `short:"v" long:"verbose"`
}

func newParser() (*flags.Parser, *options) {
	opts := options{
		Print: new(printCmd),
		Exec:  new(execCmd),
	}
	parser := flags.NewParser(&opts,
		flags.HelpFlag|flags.PassDoubleDash|flags.PassAfterNonOption)
	parser.Name = "envscope"

	// If --version was specified, a command probably was not. So we need to
	// make subcommands optional and validate manually.
	parser.SubcommandsOptional = true

	parser.FindOptionByLongName("version").Description =
		"Prints the current version of envscope."

	printCommand := parser.Find("print")
	printCommand.ShortDescription =
		"Prints the environment with overrides applied"
	printCommand.LongDescription =
		"Prints NAME=VALUE for every variable visible with the given overrides, " +
			"or only for the named variables. " +
			"Fails if any named variable is not set."
	describeOverrides(printCommand)
	printCommand.Args()[0].Description =
		"Variables to print. Prints all variables if omitted."

	execCommand := parser.Find("exec")
	execCommand.ShortDescription =
		"Runs a command with overrides applied"
	execCommand.LongDescription =
		"Runs the command after -- with an environment built from the current one " +
			"and the given overrides. " +
			"The environment of envscope itself is never modified."
	describeOverrides(execCommand)
	execCommand.FindOptionByLongName("verbose").Description =
		"Log the names of overridden variables to stderr."

	return parser, &opts
}

func describeOverrides(cmd *flags.Command) {
	cmd.FindOptionByLongName("file").Description =
		"YAML file mapping names to values. A null value unsets the variable. " +
			"May be repeated; later files take precedence."
	cmd.FindOptionByLongName("env").Description =
		"Set a variable. May be repeated. Applied after files."
	cmd.FindOptionByLongName("unset").Description =
		"Unset a variable. May be repeated. Applied last."
}

// apply records the overrides described by the flags on the Overlay.
func (o *overrideOptions) apply(overlay *envscope.Overlay) error {
	if len(o.Files) > 0 {
		overrides, err := envfile.Load(o.Files...)
		if err != nil {
			return err
		}
		overlay.Apply(overrides)
	}

	for _, kv := range o.Set {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("invalid --env %q: expected NAME=VALUE", kv)
		}
		overlay.Set(name, value)
	}

	for _, name := range o.Unset {
		overlay.Unset(name)
	}

	return nil
}
