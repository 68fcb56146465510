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

// Package isarea decides whether a closed way or a relation describes an
// area rather than a linear feature.
package isarea

import (
	"m4o.io/georender/model"
)

type set map[string]struct{}

func newSet(values ...string) set {
	s := make(set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}

	return s
}

// areaKeys maps the keys implying an area to the values for which the key
// is linear instead.
var areaKeys = map[string]set{
	"aerialway":        newSet("cable_car", "chair_lift", "drag_lift", "gondola", "goods", "magic_carpet", "mixed_lift", "platter", "rope_tow", "t-bar", "zip_line"),
	"aeroway":          newSet("jet_bridge", "parking_position", "runway", "taxilane", "taxiway"),
	"allotments":       newSet(),
	"amenity":          newSet("bench", "weighbridge"),
	"area:highway":     newSet(),
	"attraction":       newSet("dark_ride", "river_rafting", "summer_toboggan", "train", "water_slide"),
	"boundary":         newSet("administrative", "maritime", "political", "postal_code"),
	"bridge:support":   newSet(),
	"building":         newSet(),
	"building:part":    newSet(),
	"club":             newSet(),
	"craft":            newSet(),
	"emergency":        newSet("designated", "destination", "no", "official", "private", "yes"),
	"golf":             newSet("cartpath", "hole", "path"),
	"healthcare":       newSet(),
	"historic":         newSet("citywalls"),
	"indoor":           newSet("corridor", "wall"),
	"industrial":       newSet(),
	"junction":         newSet(),
	"landuse":          newSet(),
	"leisure":          newSet("slipway", "track"),
	"man_made":         newSet("breakwater", "crane", "cutline", "dyke", "embankment", "goods_conveyor", "groyne", "pier", "pipeline"),
	"military":         newSet("trench"),
	"natural":          newSet("arete", "bay", "cliff", "coastline", "gully", "ridge", "tree_row", "valley"),
	"office":           newSet(),
	"piste:type":       newSet("downhill", "hike", "ice_skate", "nordic", "skitour", "sled", "sleigh"),
	"place":            newSet(),
	"playground":       newSet("balancebeam", "slide", "zipwire"),
	"police":           newSet(),
	"power":            newSet("cable", "line", "minor_line"),
	"public_transport": newSet("platform"),
	"shop":             newSet(),
	"tourism":          newSet("artwork"),
	"waterway":         newSet("canal", "dam", "ditch", "drain", "fish_pass", "lock_gate", "river", "stream", "tidal_channel", "weir"),
}

// Way reports whether a way with the given tags and node refs is an area.
// Only closed ways of at least three distinct nodes qualify.
func Way(tags model.Tags, refs []model.ID) bool {
	if !Closed(refs) {
		return false
	}

	switch tags.Find("area") {
	case "yes":
		return true
	case "no":
		return false
	}

	for _, tag := range tags {
		if tag.Value == "no" {
			continue
		}

		linear, ok := areaKeys[tag.Key]
		if !ok {
			continue
		}

		if _, ok := linear[tag.Value]; !ok {
			return true
		}
	}

	return false
}

// Closed reports whether refs form a ring of at least three distinct nodes
// whose first and last refs are equal.
func Closed(refs []model.ID) bool {
	if len(refs) < 4 || refs[0] != refs[len(refs)-1] {
		return false
	}

	distinct := make(map[model.ID]struct{}, len(refs))
	for _, ref := range refs {
		distinct[ref] = struct{}{}
		if len(distinct) >= 3 {
			return true
		}
	}

	return false
}

// Relation reports whether a relation with the given tags is an area.
func Relation(tags model.Tags) bool {
	switch tags.Find("type") {
	case "multipolygon", "boundary":
		return true
	default:
		return false
	}
}
