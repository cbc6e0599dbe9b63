package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	md2text "github.com/alnah/go-md2text"
)

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	os.Exit(run(ctx, os.Args[1:], DefaultEnv()))
}

// hasVerboseFlag scans raw arguments for -v/--verbose ahead of command
// dispatch, so maxprocs logging is decided before any flag set runs.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// run dispatches to the named command and returns the process exit code.
// An unrecognized first argument is treated as convert input.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "convert":
		return report(runConvertCmd(ctx, rest, env), env)
	case "serve":
		return report(runServe(ctx, rest, env), env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		return report(runCompletion(rest, env), env)
	case "version":
		fmt.Fprintf(env.Stdout, "md2text %s\n", md2text.Version())
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		return report(runConvertCmd(ctx, args, env), env)
	}
}

// report prints err to stderr (if any) and maps it to an exit code.
func report(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, err)
	return exitCodeFor(err)
}
