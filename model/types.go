// Copyright 2017-26 the original author or authors.
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

package model

import "strconv"

// Degrees is the decimal degree representation of a longitude or latitude.
type Degrees float64

// Float32 returns the single precision value stored in encoded features.
func (d Degrees) Float32() float32 { return float32(d) }

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
