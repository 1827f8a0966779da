package main

// main.go - Development driver
//
// nbasic's code-generation core is driven by a front end that is not
// part of this module. This driver exists for development: it wires the
// components together, lowers a built-in smoke sequence against the
// recording backend and prints the primitive trace. It is not a BASIC
// compiler entry point.

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/samber/do"
)

const versionString = "nbasic core 0.3.0"

func main() {
	opts := OptionsFromEnv()
	verbose := flag.Bool("v", opts.Verbose, "verbose primitive trace")
	explicit := flag.Bool("explicit", opts.OptionExplicit, "forbid implicit variable definition")
	profilePath := flag.String("profile", opts.ProfilePath, "target profile TOML")
	dump := flag.Bool("dump", false, "dump the variable registry after lowering")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(versionString)
		return
	}

	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (*TargetProfile, error) {
		if *profilePath != "" {
			return LoadProfile(*profilePath)
		}
		return DefaultProfile(), nil
	})
	do.Provide(injector, func(i *do.Injector) (*TraceISA, error) {
		return NewTraceISA(), nil
	})
	do.Provide(injector, func(i *do.Injector) (*CompilationContext, error) {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: false,
		})
		if *verbose {
			logger.SetLevel(log.DebugLevel)
		}
		ctx := NewCompilationContext(do.MustInvoke[*TraceISA](i), logger)
		ctx.OptionExplicit = *explicit
		profile := do.MustInvoke[*TargetProfile](i)
		if err := profile.Apply(ctx); err != nil {
			return nil, err
		}
		return ctx, nil
	})

	ctx, err := do.Invoke[*CompilationContext](injector)
	if err != nil {
		fmt.Fprintln(os.Stderr, RenderDiag(err, true))
		os.Exit(1)
	}

	if err := smoke(ctx); err != nil {
		fmt.Fprintln(os.Stderr, RenderDiag(err, true))
		os.Exit(1)
	}

	isa := do.MustInvoke[*TraceISA](injector)
	if *verbose {
		for _, call := range isa.Calls {
			fmt.Println(call)
		}
	}
	if *dump {
		spew.Fdump(os.Stderr, ctx.Areas())
	}
	for _, warning := range ctx.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", warning.String())
	}
	fmt.Printf("lowered smoke sequence: %d primitives, %d warnings\n",
		len(isa.Calls), len(ctx.Warnings))
}

// smoke exercises the registry, pool, move and arithmetic layers the
// way a front end would across a couple of statements.
func smoke(ctx *CompilationContext) error {
	if _, err := ctx.Define("score", Word, 0); err != nil {
		return err
	}
	if _, err := ctx.Define("delta", Byte, 3); err != nil {
		return err
	}
	sum, err := ctx.Add("score", "delta")
	if err != nil {
		return err
	}
	score, err := ctx.Retrieve("score", true)
	if err != nil {
		return err
	}
	if err := ctx.Move(sum, score); err != nil {
		return err
	}
	ctx.Reset()

	if _, err := ctx.DefineArray("board", Byte, []int{3, 4}); err != nil {
		return err
	}
	ctx.ArrayIndexInit()
	ctx.ArrayIndexNumeric(1)
	ctx.ArrayIndexNumeric(2)
	if err := ctx.MoveArray("board", "delta"); err != nil {
		return err
	}
	ctx.ArrayIndexCleanup()
	ctx.Reset()

	if _, err := ctx.DefineString("greeting", "HELLO "); err != nil {
		return err
	}
	if _, err := ctx.DefineString("who", "WORLD"); err != nil {
		return err
	}
	if _, err := ctx.Add("greeting", "who"); err != nil {
		return err
	}
	ctx.Reset()
	return nil
}
