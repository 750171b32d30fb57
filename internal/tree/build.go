package tree

import (
	"fmt"
	"sort"

	"github.com/figlift/figlift/internal/docval"
)

// Options configures a build.
type Options struct {
	// StrictGUIDs turns a duplicated record GUID into a hard error. The
	// default keeps the producer's observed behavior: the later record wins.
	StrictGUIDs bool
}

// Build reconstructs the rooted document tree from the flat nodeChanges
// list. The returned value is the root record with nested children arrays;
// parentIndex fields are stripped from every record (structural metadata,
// not output data). A node with no children carries no children key at all.
//
// Build never mutates its input: output records are clones.
func Build(records docval.Array, opts Options) (docval.Value, error) {
	idx, err := indexRecords(records, opts)
	if err != nil {
		return nil, err
	}

	children, err := childOrder(records, idx)
	if err != nil {
		return nil, err
	}

	rootID := RootGUID.String()
	if _, ok := idx.byID[rootID]; !ok {
		return nil, &BuildError{
			Code:    ErrCodeMissingRoot,
			Message: fmt.Sprintf("no record carries the root identifier %q", rootID),
		}
	}

	visited := 0
	root := materialize(rootID, idx, children, &visited)

	if visited != len(idx.byID) {
		return nil, &BuildError{
			Code: ErrCodeUnreachableRecords,
			Message: fmt.Sprintf("%d of %d records are not reachable from the root (parent cycle?)",
				len(idx.byID)-visited, len(idx.byID)),
		}
	}

	return root, nil
}

// indexedRecord remembers which position in the flat list a record came
// from, so last-write-wins indexing stays deterministic.
type indexedRecord struct {
	rec *docval.Object
	ord int
}

type recordIndex struct {
	byID map[string]indexedRecord
}

// indexRecords builds the GUID-to-record index. Duplicate GUIDs: the later
// record wins unless StrictGUIDs is set.
func indexRecords(records docval.Array, opts Options) (*recordIndex, error) {
	idx := &recordIndex{byID: make(map[string]indexedRecord, len(records))}
	for i, v := range records {
		rec, ok := v.(*docval.Object)
		if !ok {
			return nil, &BuildError{
				Code:    ErrCodeInvalidRecord,
				Message: fmt.Sprintf("nodeChanges[%d] is not an object", i),
			}
		}
		gv, has := rec.Get("guid")
		if !has {
			return nil, &BuildError{
				Code:    ErrCodeMissingGUID,
				Message: fmt.Sprintf("nodeChanges[%d] has no guid field", i),
			}
		}
		guid, ok := guidFields(gv)
		if !ok {
			return nil, &BuildError{
				Code:    ErrCodeMissingGUID,
				Message: fmt.Sprintf("nodeChanges[%d] has a malformed guid field", i),
			}
		}
		id := guid.String()
		if _, dup := idx.byID[id]; dup && opts.StrictGUIDs {
			return nil, &BuildError{
				Code:    ErrCodeDuplicateGUID,
				Message: "two records share a GUID",
				GUID:    id,
			}
		}
		idx.byID[id] = indexedRecord{rec: rec, ord: i}
	}
	return idx, nil
}

// childRef is one pending child under a parent, carrying the opaque
// position key used for sibling ordering.
type childRef struct {
	position string
	id       string
}

// childOrder builds the GUID-to-sorted-children index. Iterates the flat
// list (not the map) so ordering is deterministic, and skips records that a
// later duplicate superseded. A parent reference that resolves to no record
// aborts the build.
func childOrder(records docval.Array, idx *recordIndex) (map[string][]childRef, error) {
	children := make(map[string][]childRef)
	for i, v := range records {
		rec := v.(*docval.Object) // indexRecords already rejected non-objects
		gv, _ := rec.Get("guid")
		guid, _ := guidFields(gv)
		id := guid.String()
		if idx.byID[id].ord != i {
			continue // superseded by a later record with the same GUID
		}

		if id == RootGUID.String() {
			// The root is root by convention; a parentIndex on it would make
			// it a child of its own tree, so it is never registered as one.
			continue
		}

		ref, present, ok := parentIndexOf(rec)
		if !ok {
			return nil, &BuildError{
				Code:    ErrCodeInvalidRecord,
				Message: "record has a malformed parentIndex field",
				GUID:    id,
			}
		}
		if !present {
			continue // the root has no parentIndex
		}

		parentID := ref.guid.String()
		if _, exists := idx.byID[parentID]; !exists {
			return nil, &BuildError{
				Code:    ErrCodeUnresolvedParent,
				Message: "parentIndex.guid matches no record",
				GUID:    id,
				Parent:  parentID,
			}
		}
		children[parentID] = append(children[parentID], childRef{position: ref.position, id: id})
	}

	for _, refs := range children {
		sort.Slice(refs, func(a, b int) bool {
			// Plain byte-wise comparison of the opaque position key is the
			// entire ordering contract. GUID breaks exact position ties so
			// the result never depends on input order.
			if refs[a].position != refs[b].position {
				return refs[a].position < refs[b].position
			}
			return refs[a].id < refs[b].id
		})
	}
	return children, nil
}

// materialize produces the output record for id: a clone with parentIndex
// stripped and sorted children attached. The caller guarantees id is
// indexed, and every child id comes from a record, so lookups cannot miss.
func materialize(id string, idx *recordIndex, children map[string][]childRef, visited *int) *docval.Object {
	*visited++
	out := idx.byID[id].rec.Clone()
	out.Delete("parentIndex")

	refs := children[id]
	if len(refs) == 0 {
		return out
	}
	kids := make(docval.Array, len(refs))
	for i, ref := range refs {
		kids[i] = materialize(ref.id, idx, children, visited)
	}
	out.Set("children", kids)
	return out
}
