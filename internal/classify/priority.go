// Copyright 2026 the original author or authors.
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

package classify

// priorities ranks registered types; "key.*" entries cover every value of a
// key.
var priorities = map[string]uint64{
	"aerialway.cable_car":  100,
	"aerialway.chair_lift": 100,
	"aeroway.aerodrome":    100,
	"amenity.*":            60,
	"amenity.university":   100,
	"boundary.*":           5,
	"building.*":           20,
	"building.yes":         20,
	"craft.*":              10,
	"landuse.*":            10,
	"man_made.lighthouse":  70,
	"military.*":           70,
	"place.*":              10,
	"power.*":              100,
	"public_transport.*":   50,
	"railway.*":            100,
	"route.*":              10,
	"sport.*":              1,
}

// Priority returns the larger of the exact and wildcard priorities of the
// tag, or DefaultPriority when neither is listed.
func Priority(key, value string) uint64 {
	exact, okExact := priorities[key+"."+value]
	wild, okWild := priorities[key+".*"]

	switch {
	case okExact && okWild:
		return max(exact, wild)
	case okExact:
		return exact
	case okWild:
		return wild
	default:
		return DefaultPriority
	}
}
