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

package georender_test

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"m4o.io/georender"
	"m4o.io/georender/feature"
	"m4o.io/georender/model"
)

func Example() {
	var out bytes.Buffer

	enc, err := georender.NewEncoder(&out)
	if err != nil {
		log.Fatal(err)
	}

	entities := []model.Entity{
		&model.Node{ID: 1, Lat: 0, Lon: 0},
		&model.Node{ID: 2, Lat: 0, Lon: 1},
		&model.Node{ID: 3, Lat: 1, Lon: 1},
		&model.Node{ID: 4, Lat: 1, Lon: 0},
		&model.Node{ID: 5, Lat: 0.5, Lon: 0.5, Tags: model.Tags{{Key: "amenity", Value: "cafe"}, {Key: "name", Value: "Corner"}}},
		&model.Way{ID: 10, Tags: model.Tags{{Key: "building", Value: "yes"}}, NodeIDs: []model.ID{1, 2, 3, 4, 1}},
		&model.Way{ID: 11, Tags: model.Tags{{Key: "highway", Value: "footway"}}, NodeIDs: []model.ID{1, 3}},
	}

	if err = enc.EncodeBatch(entities); err != nil {
		log.Fatal(err)
	}

	if err = enc.Close(); err != nil {
		log.Fatal(err)
	}

	features, err := georender.ReadAll(context.Background(), &out)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range features {
		switch v := f.(type) {
		case *feature.Point:
			fmt.Printf("point %d %q\n", v.ID, feature.Name(v.Labels))
		case *feature.Line:
			fmt.Printf("line %d with %d vertices\n", v.ID, len(v.Positions)/2)
		case *feature.Area:
			fmt.Printf("area %d with %d triangles\n", v.ID, v.Triangles())
		}
	}

	// Output:
	// point 5 "Corner"
	// area 10 with 2 triangles
	// line 11 with 2 vertices
}
