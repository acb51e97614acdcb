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

package interpreter

import "math/big"

func newBigInt(v int64) *big.Int     { return big.NewInt(v) }
func newBigFloat(v float64) *big.Float { return big.NewFloat(v) }

// AsFloat64 widens any numeric Value to float64 for mixed arithmetic and
// for boolean/ternary coercion helpers.
func AsFloat64(v Value) float64 {
	switch val := v.(type) {
	case IntValue:
		return float64(val.Value)
	case BigValue:
		f := new(big.Float).SetInt(val.Value)
		r, _ := f.Float64()
		return r
	case FloatValue:
		return float64(val.Value)
	case DoubleValue:
		return val.Value
	case QuadValue:
		r, _ := val.Value.Float64()
		return r
	default:
		return 0
	}
}

// AsInt64 narrows any integer-family Value to int64.
func AsInt64(v Value) int64 {
	switch val := v.(type) {
	case IntValue:
		return val.Value
	case BigValue:
		return val.Value.Int64()
	case FloatValue:
		return int64(val.Value)
	case DoubleValue:
		return int64(val.Value)
	case QuadValue:
		r, _ := val.Value.Int64()
		return r
	default:
		return 0
	}
}
