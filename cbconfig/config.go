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

// Package cbconfig loads the small set of options the driver needs
// before it can construct an interpreter.Interpreter: whether async
// tasks auto-yield after every statement, a stack-trace depth setting,
// and whether diagnostics are colorized. This is the
// systems-language analogue of the original's cb_config.cpp, which read
// the same three knobs from a flat key=value file; here they live in an
// optional YAML document instead.
package cbconfig

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config controls driver-level behavior that sits above the interpreter
// core but below the CLI's own flag parsing (flags always win over the
// file; see cmd/cb).
type Config struct {
	// AutoYield mirrors "auto_yield" ( "Suspension points"):
	// when true (the default), every statement executed inside a
	// scheduled task is itself a yield point. Disabling it is only
	// useful for a task the caller knows never blocks, letting it run
	// to completion in one scheduler turn.
	AutoYield bool `yaml:"auto_yield"`

	// StackTraceDepth is loaded and saved with the rest of the file,
	// 0 by default. Nothing reads it: cmd/cb does not pass it on, and
	// the pretty package prints every recorded frame.
	StackTraceDepth int `yaml:"stack_trace_depth"`

	// Color enables ANSI-colored diagnostics ( pretty package).
	Color bool `yaml:"color"`
}

// Default returns the configuration used when no file is given: yield
// after every statement, StackTraceDepth 0, color on.
func Default() Config {
	return Config{
		AutoYield:       true,
		StackTraceDepth: 0,
		Color:           true,
	}
}

// Load reads and parses a YAML config file, starting from Default so an
// omitted field keeps its default rather than zeroing out.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg out as YAML, in the form Load reads back.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
