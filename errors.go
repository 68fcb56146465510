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

package georender

import (
	"errors"
	"fmt"

	"m4o.io/georender/model"
)

// ErrMissingDependency is matched by MissingDependencyError.
var ErrMissingDependency = errors.New("missing dependency")

// ErrEncoderClosed is returned when entities are sent to a closed Encoder.
var ErrEncoderClosed = errors.New("encoder closed")

// DependencyKind names the kind of entity an element depends on.
type DependencyKind string

const NodeDependency DependencyKind = "node"

// MissingDependencyError reports an element referencing an entity whose
// data is not known.
type MissingDependencyError struct {
	Kind DependencyKind
	ID   model.ID
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing %s %d", e.Kind, e.ID)
}

func (e *MissingDependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}
