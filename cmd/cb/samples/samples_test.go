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

package samples_test

import (
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cb-lang/cb/cmd/cb/samples"
	"github.com/cb-lang/cb/common"
	cberrors "github.com/cb-lang/cb/errors"
	"github.com/cb-lang/cb/interpreter"
	"github.com/cb-lang/cb/stdlib"
)

// TestAllSamplesProduceTheirCatalogedOutput runs every cataloged
// scenario end to end the way cmd/cb does, asserting the literal stdout
// (or error variant) each one documents.
func TestAllSamplesProduceTheirCatalogedOutput(t *testing.T) {
	t.Parallel()

	for _, s := range samples.All() {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			t.Parallel()

			inter := interpreter.NewInterpreter(s.Program, common.ModuleLocation{Name: s.Name})
			var out strings.Builder
			inter.Stdout = &out
			stdlib.Register(inter)
			require.NoError(t, inter.Run())

			_, err := inter.Invoke("main")

			if s.ExpectedErr != "" {
				require.Error(t, err)
				re, ok := err.(*cberrors.RuntimeError)
				require.True(t, ok)
				assert.Equal(t, s.ExpectedErr, re.Variant)
				assert.Empty(t, out.String(), "a failing scenario must not print before the error")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, s.Expected, strings.TrimRight(out.String(), "\n"))
		})
	}
}

// TestGenericSampleInstantiatesOnce backs the S6 requirement that the
// second identity<int> call reuses the cached instantiation: the CBOR
// cache dump must contain exactly one entry after the run.
func TestGenericSampleInstantiatesOnce(t *testing.T) {
	t.Parallel()

	var sample samples.Sample
	for _, s := range samples.All() {
		if s.Name == "s6-generic-cache" {
			sample = s
		}
	}
	require.NotNil(t, sample.Program)

	inter := interpreter.NewInterpreter(sample.Program, common.ModuleLocation{Name: sample.Name})
	var out strings.Builder
	inter.Stdout = &out
	stdlib.Register(inter)
	require.NoError(t, inter.Run())

	_, err := inter.Invoke("main")
	require.NoError(t, err)
	assert.Equal(t, "15", strings.TrimRight(out.String(), "\n"))

	data, err := inter.DumpGenericCache()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	var entries []map[string]any
	require.NoError(t, cbor.Unmarshal(data, &entries))
	assert.Len(t, entries, 1)
}
