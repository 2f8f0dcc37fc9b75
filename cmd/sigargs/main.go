// Package main provides the sigargs inspection CLI.
//
// sigargs resolves a registered class path, derives its constructor
// arguments into a fresh parser, and prints the resulting option table.
// It is a living example of the derivation pipeline:
//   - struct prototypes become class descriptors
//   - descriptors are registered under dotted class paths
//   - the deriver turns initializer chains into parser options
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"sigargs/actions"
	"sigargs/argreg"
	_ "sigargs/demo" // registers the demo class paths
	"sigargs/derive"
)

func main() {
	classPath := flag.String("class", "demo.Processor", "registered class path to inspect")
	debug := flag.Bool("debug", false, "log skipped parameters and dump raw registrations")
	flag.Parse()

	if err := run(*classPath, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "sigargs:", err)
		os.Exit(1)
	}
}

func run(classPath string, debug bool) error {
	class, ok := actions.LookupClass(classPath)
	if !ok {
		return fmt.Errorf("unknown class path %q, registered paths:\n  %s",
			classPath, strings.Join(actions.RegisteredPaths(), "\n  "))
	}

	log := zap.NewNop()
	if debug {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = dev.Sync() }()
		log = dev
	}

	parser := argreg.NewParser()
	n, err := derive.New(parser, derive.WithLogger(log)).AddClassArguments(class, "")
	if err != nil {
		return err
	}

	title := color.New(color.FgCyan, color.Bold)
	flagStyle := color.New(color.FgGreen)
	reqStyle := color.New(color.FgRed)

	title.Printf("%s (%d options)\n", class.Name, n)
	for _, opt := range parser.Options() {
		if opt.Config.Hidden {
			continue
		}
		flagStyle.Printf("  %s", opt.Flag)
		if opt.Config.Type != nil {
			fmt.Printf("  %v", opt.Config.Type)
		}
		if choice, ok := opt.Config.Action.(*actions.EnumChoice); ok {
			fmt.Printf("  {%s}", strings.Join(choice.Choices(), ","))
		}
		if opt.Config.Required {
			reqStyle.Print("  [required]")
		} else if opt.Config.HasDefault {
			fmt.Printf("  (default: %v)", opt.Config.Default)
		}
		if opt.Config.Help != "" {
			fmt.Printf("\n      %s", opt.Config.Help)
		}
		fmt.Println()
	}

	if debug {
		spew.Dump(parser.Options())
	}

	return nil
}
