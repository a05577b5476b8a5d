package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/gridmesh/pkg/math"
)

// vec3Value is a flag.Value holding "x,y,z".
type vec3Value struct {
	v *math.Vec3
}

func (f vec3Value) String() string {
	if f.v == nil {
		return ""
	}
	return formatVec3(*f.v)
}

func (f vec3Value) Set(s string) error {
	v, err := parseVec3(s)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("vector %q: want x,y,z", s)
	}
	var c [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("vector %q: %w", s, err)
		}
		c[i] = float32(f)
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

func formatVec3(v math.Vec3) string {
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}

// commandFlags is a FlagSet with the options every command shares.
type commandFlags struct {
	*flag.FlagSet
	verbose *bool
}

func newCommandFlags(name string, stderr io.Writer) *commandFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return &commandFlags{
		FlagSet: fs,
		verbose: fs.Bool("v", false, "Verbose (debug) logging"),
	}
}

func (c *commandFlags) vec3(name string, def math.Vec3, usage string) *math.Vec3 {
	v := def
	c.Var(vec3Value{&v}, name, usage)
	return &v
}

// parse parses args and initialises logging.
func (c *commandFlags) parse(args []string, stderr io.Writer) error {
	if err := c.Parse(args); err != nil {
		return err
	}
	return initLogging(*c.verbose, stderr)
}
