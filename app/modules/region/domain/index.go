package regiondomain

import (
	"cmp"
	"fmt"
	"slices"
)

// Index is an immutable, arena-backed view of the region hierarchy. Regions
// live in one slice ordered by id; parent and children links are slot
// indexes into that slice.
type Index struct {
	regions  []Region
	slot     map[int32]int
	parent   []int
	children [][]int
	depth    []int
	roots    []int
}

const noParent = -1

// Build indexes regions in one pass over the id-sorted set. It fails with
// ErrIntegrity when a parent id is unresolvable, a non-World region has no
// parent, a World region has one, an id repeats, a type is unknown, or the
// parent links form a cycle.
func Build(regions []Region) (*Index, error) {
	sorted := slices.Clone(regions)
	slices.SortFunc(sorted, func(a, b Region) int { return cmp.Compare(a.ID, b.ID) })

	idx := &Index{
		regions:  sorted,
		slot:     make(map[int32]int, len(sorted)),
		parent:   make([]int, len(sorted)),
		children: make([][]int, len(sorted)),
		depth:    make([]int, len(sorted)),
	}

	for i, r := range sorted {
		if !r.Type.Valid() {
			return nil, fmt.Errorf("%w: region %d has unknown type %d", ErrIntegrity, r.ID, int8(r.Type))
		}
		if _, dup := idx.slot[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate region id %d", ErrIntegrity, r.ID)
		}
		idx.slot[r.ID] = i
	}

	for i, r := range sorted {
		switch {
		case r.ParentID == nil && r.Type != World:
			return nil, fmt.Errorf("%w: %s region %d has no parent", ErrIntegrity, r.Type, r.ID)
		case r.ParentID == nil:
			idx.parent[i] = noParent
			idx.roots = append(idx.roots, i)
		case r.Type == World:
			return nil, fmt.Errorf("%w: world region %d has parent %d", ErrIntegrity, r.ID, *r.ParentID)
		default:
			p, ok := idx.slot[*r.ParentID]
			if !ok {
				return nil, fmt.Errorf("%w: region %d references missing parent %d", ErrIntegrity, r.ID, *r.ParentID)
			}
			idx.parent[i] = p
			// sorted iteration keeps every children list in ascending id order
			idx.children[p] = append(idx.children[p], i)
		}
	}

	if err := idx.computeDepths(); err != nil {
		return nil, err
	}
	return idx, nil
}

// computeDepths walks each chain upward once, memoizing finished slots, and
// reports a cycle when a walk revisits a slot still on its own path.
func (x *Index) computeDepths() error {
	const (
		unvisited = iota
		onPath
		done
	)
	state := make([]uint8, len(x.regions))
	var path []int

	for start := range x.regions {
		path = path[:0]
		cur := start
		for cur != noParent && state[cur] != done {
			if state[cur] == onPath {
				return fmt.Errorf("%w: cycle through region %d", ErrIntegrity, x.regions[cur].ID)
			}
			state[cur] = onPath
			path = append(path, cur)
			cur = x.parent[cur]
		}

		base := -1
		if cur != noParent {
			base = x.depth[cur]
		}
		for i := len(path) - 1; i >= 0; i-- {
			base++
			x.depth[path[i]] = base
			state[path[i]] = done
		}
	}
	return nil
}

// Len reports the number of indexed regions.
func (x *Index) Len() int {
	return len(x.regions)
}

// Regions returns the indexed regions in ascending id order.
func (x *Index) Regions() []Region {
	return slices.Clone(x.regions)
}

// Get returns the region with the given id.
func (x *Index) Get(id int32) (Region, bool) {
	i, ok := x.slot[id]
	if !ok {
		return Region{}, false
	}
	return x.regions[i], true
}

// Depth returns the number of edges between id and its root.
func (x *Index) Depth(id int32) (int, error) {
	i, ok := x.slot[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return x.depth[i], nil
}

// Ancestors returns the chain from the root down to id, root first and id
// last.
func (x *Index) Ancestors(id int32) ([]int32, error) {
	i, ok := x.slot[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	out := make([]int32, 0, x.depth[i]+1)
	for cur := i; cur != noParent; cur = x.parent[cur] {
		out = append(out, x.regions[cur].ID)
	}
	slices.Reverse(out)
	return out, nil
}

// Descendants returns every region below id in ascending id order. The region
// itself is not included; a leaf yields an empty, non-nil slice.
func (x *Index) Descendants(id int32) ([]int32, error) {
	i, ok := x.slot[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	out := []int32{}
	stack := slices.Clone(x.children[i])
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, x.regions[cur].ID)
		stack = append(stack, x.children[cur]...)
	}
	slices.Sort(out)
	return out, nil
}

// Scope returns the region ids a ranking restricted to id must draw players
// from: id plus its descendants. A World region imposes no restriction and
// yields nil.
func (x *Index) Scope(id int32) ([]int32, error) {
	i, ok := x.slot[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if x.regions[i].Type == World {
		return nil, nil
	}

	desc, err := x.Descendants(id)
	if err != nil {
		return nil, err
	}
	return append([]int32{id}, desc...), nil
}

// AncestorOfType returns the nearest region of type t on the chain from id up
// to its root, id included.
func (x *Index) AncestorOfType(id int32, t RegionType) (int32, bool) {
	i, ok := x.slot[id]
	if !ok {
		return 0, false
	}
	for cur := i; cur != noParent; cur = x.parent[cur] {
		if x.regions[cur].Type == t {
			return x.regions[cur].ID, true
		}
	}
	return 0, false
}

// Tree returns the hierarchy as nested maps rooted at the World regions.
func (x *Index) Tree() ChildrenTree {
	tree := make(ChildrenTree, len(x.roots))
	for _, r := range x.roots {
		tree[x.regions[r].ID] = x.subtree(r)
	}
	return tree
}

func (x *Index) subtree(i int) ChildrenTree {
	node := make(ChildrenTree, len(x.children[i]))
	for _, c := range x.children[i] {
		node[x.regions[c].ID] = x.subtree(c)
	}
	return node
}

// TypePartition groups region ids by type in ascending id order. Every type is
// present as a key even when no region has it.
func TypePartition(regions []Region) (map[RegionType][]int32, error) {
	out := make(map[RegionType][]int32, len(AllRegionTypes))
	for _, t := range AllRegionTypes {
		out[t] = []int32{}
	}
	for _, r := range regions {
		ids, ok := out[r.Type]
		if !ok {
			return nil, fmt.Errorf("%w: region %d has unknown type %d", ErrIntegrity, r.ID, int8(r.Type))
		}
		out[r.Type] = append(ids, r.ID)
	}
	for _, ids := range out {
		slices.Sort(ids)
	}
	return out, nil
}

// CollapsePlayerCounts sets each row's PlayerCount to its DirectCount plus the
// PlayerCount of every child, visiting rows deepest first so each child is
// final before its parent reads it. Rows are returned in ascending id order.
// Running it again on its own output yields the same counts.
func CollapsePlayerCounts(rows []RegionWithPlayerCount) ([]RegionWithPlayerCount, error) {
	regions := make([]Region, len(rows))
	for i, r := range rows {
		regions[i] = r.Region
	}
	idx, err := Build(regions)
	if err != nil {
		return nil, err
	}

	out := make([]RegionWithPlayerCount, len(rows))
	for _, r := range rows {
		i := idx.slot[r.ID]
		out[i] = r
		out[i].PlayerCount = r.DirectCount
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(idx.depth[b], idx.depth[a]) })

	for _, i := range order {
		if p := idx.parent[i]; p != noParent {
			out[p].PlayerCount += out[i].PlayerCount
		}
	}
	return out, nil
}
