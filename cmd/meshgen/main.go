// meshgen generates grid meshes from the command line and writes them as
// Wavefront OBJ files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/gridmesh/internal/logger"
)

var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	logger.Sync()
	switch {
	case err == nil:
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return errUsage
	}

	command, args := args[0], args[1:]
	switch command {
	case "sheet":
		return cmdSheet(args, stdout, stderr)
	case "cubes", "cube":
		return cmdCubes(args, stdout, stderr)
	case "check":
		return cmdCheck(args, stdout, stderr)
	case "atlas":
		return cmdAtlas(args, stdout, stderr)
	case "config":
		return cmdConfig(args, stdout, stderr)
	case "batch":
		return cmdBatch(args, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `meshgen - procedural grid mesh generator

Usage:
  meshgen <command> [options]

Commands:
  sheet   Generate a flat quad sheet
  cubes   Generate a lattice of unit cubes
  check   Report vertex counts and 16-bit index fit without generating
  atlas   Draw a labelled face atlas PNG for a cube UV layout
  config  Write the default configuration as YAML
  batch   Generate every job in a YAML batch file concurrently

Examples:
  meshgen sheet -w 10 -h 10 -dim2 0,0,1 -o sheet.obj
  meshgen cubes -w 4 -h 2 -d 3 -mode shared -normals -o cubes.obj
  meshgen check -w 300 -h 300
  meshgen atlas -layout cross -cell 128 -o atlas.png
  meshgen batch -f jobs.yaml -dir out -j 4

Run "meshgen <command> -help" for command options.`)
}

// initLogging routes logs to stderr so OBJ output can go to stdout.
func initLogging(verbose bool, stderr io.Writer) error {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.InitWithFileConfig(level, logger.FileConfig{}, stderr)
}
