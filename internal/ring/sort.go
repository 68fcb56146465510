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

package ring

import (
	"slices"

	"m4o.io/georender/model"
)

// Sort orders the members so that consecutive members of the same role
// share endpoints, and flags the members that must be walked backwards.
// Members that are not ways, have no role, or reference unknown or empty
// ways are dropped.
func Sort(members []Member, ways WayNodes) []Member {
	drained, refs := drain(members, ways)
	if !slices.ContainsFunc(drained, func(m Member) bool { return m.Role == Outer }) {
		return nil
	}

	order := leadIn(drained)
	drained = permute(drained, order)
	refs = permute(refs, order)

	out := walk(drained, refs)
	normalizeRuns(out)

	return out
}

// drain keeps the way members with a role and known, non-empty node lists.
func drain(members []Member, ways WayNodes) ([]Member, [][]model.ID) {
	kept := make([]Member, 0, len(members))
	refs := make([][]model.ID, 0, len(members))

	for _, m := range members {
		if m.Type != Way || m.Role == Unused {
			continue
		}

		nodes, ok := ways.Get(m.WayID)
		if !ok || len(nodes) == 0 {
			continue
		}

		m.Reverse = false
		kept = append(kept, m)
		refs = append(refs, nodes)
	}

	return kept, refs
}

// leadIn returns an ordering that moves a leading run of inner members to
// just after the first run of outer members.
func leadIn(members []Member) []int {
	order := make([]int, 0, len(members))

	i := 0
	for i < len(members) && members[i].Role == Inner {
		i++
	}

	j := i
	for j < len(members) && members[j].Role == Outer {
		j++
	}

	for k := i; k < j; k++ {
		order = append(order, k)
	}

	for k := 0; k < i; k++ {
		order = append(order, k)
	}

	for k := j; k < len(members); k++ {
		order = append(order, k)
	}

	return order
}

func permute[T any](s []T, order []int) []T {
	out := make([]T, len(order))
	for i, o := range order {
		out[i] = s[o]
	}

	return out
}

// endpoints indexes member positions by the first and last node of their
// ways.
type endpoints struct {
	firsts map[model.ID][]int
	lasts  map[model.ID][]int
}

func indexEndpoints(refs [][]model.ID) endpoints {
	e := endpoints{
		firsts: make(map[model.ID][]int, len(refs)),
		lasts:  make(map[model.ID][]int, len(refs)),
	}

	for i, r := range refs {
		e.firsts[r[0]] = append(e.firsts[r[0]], i)
		e.lasts[r[len(r)-1]] = append(e.lasts[r[len(r)-1]], i)
	}

	return e
}

// link is a member placed in a chain.
type link struct {
	index   int
	reverse bool
}

// walk chains members through shared endpoints. A chain grows at its tail
// first, then at its head, until it closes or runs out of candidates; the
// next chain starts at the lowest unvisited member.
func walk(members []Member, refs [][]model.ID) []Member {
	idx := indexEndpoints(refs)
	visited := make([]bool, len(members))
	out := make([]Member, 0, len(members))

	first := func(l link) model.ID {
		r := refs[l.index]
		if l.reverse {
			return r[len(r)-1]
		}

		return r[0]
	}

	last := func(l link) model.ID {
		r := refs[l.index]
		if l.reverse {
			return r[0]
		}

		return r[len(r)-1]
	}

	candidate := func(byNode map[model.ID][]int, node model.ID, role Role) (int, bool) {
		for _, i := range byNode[node] {
			if !visited[i] && members[i].Role == role {
				return i, true
			}
		}

		return 0, false
	}

	for start := range members {
		if visited[start] {
			continue
		}

		visited[start] = true
		role := members[start].Role
		chain := []link{{index: start}}

		for {
			head, tail := chain[0], chain[len(chain)-1]
			headFirst, tailLast := first(head), last(tail)

			if headFirst == tailLast {
				break
			}

			if i, ok := candidate(idx.firsts, tailLast, role); ok {
				visited[i] = true
				chain = append(chain, link{index: i})
			} else if i, ok := candidate(idx.lasts, tailLast, role); ok {
				visited[i] = true
				chain = append(chain, link{index: i, reverse: true})
			} else if i, ok := candidate(idx.lasts, headFirst, role); ok {
				visited[i] = true
				chain = slices.Insert(chain, 0, link{index: i})
			} else if i, ok := candidate(idx.firsts, headFirst, role); ok {
				visited[i] = true
				chain = slices.Insert(chain, 0, link{index: i, reverse: true})
			} else {
				break
			}
		}

		for _, l := range chain {
			m := members[l.index]
			m.Reverse = l.reverse
			out = append(out, m)
		}
	}

	return out
}

// normalizeRuns flips every run of same-role members in which most members
// are reversed, so that the run is walked in its natural direction.
func normalizeRuns(members []Member) {
	for start := 0; start < len(members); {
		end := start + 1
		for end < len(members) && members[end].Role == members[start].Role {
			end++
		}

		run := members[start:end]

		reversed := 0
		for _, m := range run {
			if m.Reverse {
				reversed++
			}
		}

		if 2*reversed > len(run) {
			for i := range run {
				run[i].Reverse = !run[i].Reverse
			}
			slices.Reverse(run)
		}

		start = end
	}
}
