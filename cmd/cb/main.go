/*
 * Cb - a statically typed, C-family interpreted systems language
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command cb is a minimal driver over the interpreter core: a
// file-runner for the cataloged end-to-end scenarios (S1-S6) and a
// go-prompt REPL that re-runs them interactively. Lexing and parsing
// real Cb source are out of scope for this repository (see spec.md
// §1 Non-goals), so cb's programs come from the samples package rather
// than from a file on disk; the logic it exercises — Run/Invoke, error
// pretty-printing, the generic-instantiation cache dump, and the async
// scheduler — is the same surface a real front end would drive.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/cb-lang/cb/cbconfig"
	"github.com/cb-lang/cb/cmd/cb/samples"
	"github.com/cb-lang/cb/common"
	cberrors "github.com/cb-lang/cb/errors"
	"github.com/cb-lang/cb/interpreter"
	"github.com/cb-lang/cb/pretty"
	"github.com/cb-lang/cb/stdlib"
)

// stdoutBuffer adapts a bytes.Buffer to interpreter.Writer.
type stdoutBuffer struct{ bytes.Buffer }

func (b *stdoutBuffer) WriteString(s string) (int, error) { return b.Buffer.WriteString(s) }

func main() {
	var (
		configPath = flag.String("config", "", "path to a cb.yaml config file")
		dumpCache  = flag.Bool("dump-cache", false, "CBOR-dump the generic instantiation cache after running")
		repl       = flag.Bool("repl", false, "start an interactive REPL over the sample catalog")
	)
	flag.Parse()

	cfg := cbconfig.Default()
	if *configPath != "" {
		loaded, err := cbconfig.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cb: loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *repl {
		runREPL(cfg, *dumpCache)
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		for _, s := range samples.All() {
			names = append(names, s.Name)
		}
	}

	exit := 0
	for _, name := range names {
		if !runSample(name, cfg, *dumpCache) {
			exit = 1
		}
	}
	os.Exit(exit)
}

func findSample(name string) (samples.Sample, bool) {
	for _, s := range samples.All() {
		if s.Name == name {
			return s, true
		}
	}
	return samples.Sample{}, false
}

// runSample executes one cataloged scenario to completion, printing its
// stdout and reporting ("Exit codes") whether it matched the
// expected output. Returns false on any interpreter-surfaced error or
// output mismatch.
func runSample(name string, cfg cbconfig.Config, dumpCache bool) bool {
	s, ok := findSample(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "cb: unknown sample %q\n", name)
		return false
	}

	module := common.ModuleLocation{Name: name}
	inter := interpreter.NewInterpreter(s.Program, module)
	inter.AutoYield = cfg.AutoYield
	out := &stdoutBuffer{}
	inter.Stdout = out
	stdlib.Register(inter)

	if err := inter.Run(); err != nil {
		reportError(err, module, cfg)
		return false
	}

	if _, err := inter.Invoke("main"); err != nil {
		reportError(err, module, cfg)
		fmt.Fprintf(os.Stdout, "%s: %s\n", name, strings.TrimRight(out.String(), "\n"))
		if s.ExpectedErr == "" {
			return false
		}
		re, ok := err.(*cberrors.RuntimeError)
		return ok && re.Variant == s.ExpectedErr && out.String() == ""
	}

	if s.ExpectedErr != "" {
		fmt.Fprintf(os.Stderr, "cb: %s: expected %s, but main returned without error\n", name, s.ExpectedErr)
		return false
	}

	got := strings.TrimRight(out.String(), "\n")
	fmt.Printf("%s: %s\n", name, got)

	if dumpCache {
		dumpGenericCache(inter)
	}

	return got == s.Expected
}

func dumpGenericCache(inter *interpreter.Interpreter) {
	data, err := inter.DumpGenericCache()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cb: dumping generic cache: %v\n", err)
		return
	}
	fmt.Printf("  generic cache (%d bytes CBOR)\n", len(data))
}

func reportError(err error, module common.ModuleLocation, cfg cbconfig.Config) {
	printer := pretty.NewErrorPrettyPrinter(os.Stderr, cfg.Color)
	_ = printer.PrettyPrintError(err, module, nil)
}

// runREPL drives an interactive loop where the user types a sample name
// to run it, "list" to enumerate the catalog, or "exit"/Ctrl-D to quit.
func runREPL(cfg cbconfig.Config, dumpCache bool) {
	executor := func(line string) {
		line = strings.TrimSpace(line)
		switch line {
		case "":
			return
		case "exit", "quit":
			os.Exit(0)
		case "list":
			for _, s := range samples.All() {
				fmt.Println(" ", s.Name)
			}
		default:
			runSample(line, cfg, dumpCache)
		}
	}

	completer := func(d prompt.Document) []prompt.Suggest {
		suggestions := []prompt.Suggest{
			{Text: "list", Description: "list runnable samples"},
			{Text: "exit", Description: "quit the REPL"},
		}
		for _, s := range samples.All() {
			suggestions = append(suggestions, prompt.Suggest{Text: s.Name})
		}
		sort.Slice(suggestions, func(i, j int) bool { return suggestions[i].Text < suggestions[j].Text })
		return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
	}

	p := prompt.New(executor, completer, prompt.OptionPrefix("cb> "))
	p.Run()
}
