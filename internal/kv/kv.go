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

// Package kv holds the lookup tables that resolve way and relation
// dependencies while a stream is encoded.
package kv

import (
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/exp/constraints"
)

// XMap is a map safe for one writer and many concurrent readers.
type XMap[K constraints.Integer, V any] struct {
	m *xsync.MapOf[K, V]
}

// NewXMap creates an XMap presized for sizeHint entries.
func NewXMap[K constraints.Integer, V any](sizeHint int) *XMap[K, V] {
	if sizeHint <= 0 {
		return &XMap[K, V]{m: xsync.NewMapOf[K, V]()}
	}

	return &XMap[K, V]{m: xsync.NewMapOf[K, V](xsync.WithPresize(sizeHint))}
}

// Get returns the value stored under key.
func (m *XMap[K, V]) Get(key K) (V, bool) {
	return m.m.Load(key)
}

// Set stores value under key.
func (m *XMap[K, V]) Set(key K, value V) {
	m.m.Store(key, value)
}
