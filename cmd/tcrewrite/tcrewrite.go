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

// Utility tcrewrite prints the functions of a Go file after rewriting their
// tensor-index notation into calls to a contraction primitive.
//
// Usage:
//
//	tcrewrite -input contract.go [-dummy i,j,k] [-einsum num.Einsum] [-n]
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gx-org/tensorcontract/api/options"
	tcfmt "github.com/gx-org/tensorcontract/base/fmt"
	"github.com/gx-org/tensorcontract/stdlib/einsum"
)

var (
	input    = flag.String("input", "", "Go file declaring the functions to rewrite (required)")
	dummy    = flag.String("dummy", "", "Comma-separated dummy indices (default: the parameters of each function)")
	contract = flag.String("einsum", einsum.DefaultRef, "Reference to the contraction primitive called by the rewritten code")
	number   = flag.Bool("n", false, "Prefix the output lines with their line number")
)

func exit(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func parseDummy(s string) []options.Option {
	if s == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return []options.Option{options.DummyIndex{Names: names}}
}

func main() {
	flag.Parse()
	if *input == "" {
		flag.Usage()
		exit("-input flag is required")
	}
	src, err := os.ReadFile(*input)
	if err != nil {
		exit("cannot read input: %v", err)
	}
	opts := append(parseDummy(*dummy), options.Contraction{Ref: *contract})
	var out strings.Builder
	if err := rewriteFile(&out, *input, src, opts); err != nil {
		exit("%+v", err)
	}
	if *number {
		fmt.Print(tcfmt.Number(out.String()))
		return
	}
	fmt.Print(out.String())
}
