// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command midc checks and lowers typed programs.
//
// Typed programs are read from JSON files produced by the type annotation
// stage. The check command validates programs. The lower command validates
// a program and writes its simplified representation.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	midfmt "github.com/midend-lang/midend/base/fmt"
	"github.com/midend-lang/midend/build/builder"
	"github.com/midend-lang/midend/build/ir/irjson"
	"github.com/midend-lang/midend/build/sir"
	"github.com/midend-lang/midend/build/sir/sirjson"
	"github.com/midend-lang/midend/tools/midflag"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const version = "v0.1.0"

func exit(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, `midc checks and lowers typed programs.

Usage:
  midc check [-v] [-j workers] [-files a.json,b.json] [file.json...]
  midc lower [-o out] [-format json|text] [-n] file.json
  midc version

Commands:
  check    validate typed programs
  lower    validate a typed program and write its simplified representation
  version  print the version of midc and of the formats it supports`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "check":
		err = cmdCheck(args)
	case "lower":
		err = cmdLower(args)
	case "version":
		cmdVersion(os.Stdout)
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		exit("unknown command: %s", cmd)
	}
	if err != nil {
		exit("%+v", err)
	}
}

func newBuilder() *builder.Builder {
	return builder.New([]builder.Loader{builder.FileLoader{}})
}

func cmdCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "print the name of the programs being checked")
	numWorkers := fs.Int("j", builder.DefaultNumWorkers, "number of programs checked in parallel")
	files := midflag.StringList(fs, "files", "comma separated list of typed programs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	names := append(*files, fs.Args()...)
	if len(names) == 0 {
		return errors.Errorf("check: no input file")
	}
	progs, err := newBuilder().BuildAll(names, *numWorkers)
	if *verbose {
		for i, name := range names {
			status := "ok"
			if progs[i] == nil {
				status = "FAIL"
			}
			fmt.Fprintf(os.Stderr, "%s\t%s\n", status, name)
		}
	}
	if err == nil {
		return nil
	}
	errs := multierr.Errors(err)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	return errors.Errorf("check: %d program(s) out of %d failed", len(errs), len(names))
}

func writeText(w io.Writer, prog *sir.Program, lineNumbers bool) error {
	s := prog.String()
	if lineNumbers {
		s = midfmt.Number(s)
	}
	_, err := io.WriteString(w, s)
	return err
}

func cmdLower(args []string) error {
	fs := flag.NewFlagSet("lower", flag.ExitOnError)
	out := fs.String("o", "", "output file (default: standard output)")
	format := midflag.OneOf(fs, "format", "output format", "json", "text")
	lineNumbers := fs.Bool("n", false, "number the lines of the text output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.Errorf("lower: want one input file but got %d", fs.NArg())
	}
	prog, err := newBuilder().Build(fs.Arg(0))
	if err != nil {
		return err
	}
	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return errors.Errorf("cannot create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}
	switch *format {
	case "text":
		return writeText(w, prog, *lineNumbers)
	default:
		return sirjson.EncodeWriter(w, prog)
	}
}

func cmdVersion(w io.Writer) {
	fmt.Fprintf(w, "midc %s\n", version)
	fmt.Fprintf(w, "typed program format %s\n", irjson.FormatVersion)
	fmt.Fprintf(w, "simplified program format %s\n", sirjson.FormatVersion)
}
