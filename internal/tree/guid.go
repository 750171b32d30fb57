package tree

import (
	"fmt"

	"github.com/figlift/figlift/internal/docval"
)

// GUID is the {sessionID, localID} pair that uniquely identifies a node.
// The identifier space is partitioned by editing session so concurrent
// sessions cannot collide on a single counter.
type GUID struct {
	Session uint64
	Local   uint64
}

// RootGUID is the conventional identifier of the document root.
var RootGUID = GUID{Session: 0, Local: 0}

// String formats the GUID as "sessionID:localID", the canonical lookup key.
func (g GUID) String() string {
	return fmt.Sprintf("%d:%d", g.Session, g.Local)
}

// guidFields reads a projected {sessionID, localID} object.
func guidFields(v docval.Value) (GUID, bool) {
	obj, ok := v.(*docval.Object)
	if !ok {
		return GUID{}, false
	}
	session, ok := numberField(obj, "sessionID")
	if !ok {
		return GUID{}, false
	}
	local, ok := numberField(obj, "localID")
	if !ok {
		return GUID{}, false
	}
	return GUID{Session: uint64(session), Local: uint64(local)}, true
}

func numberField(obj *docval.Object, key string) (float64, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return 0, false
	}
	n, ok := v.(docval.Number)
	if !ok {
		return 0, false
	}
	return float64(n), true
}

// parentRef is a record's parsed parentIndex.
type parentRef struct {
	guid     GUID
	position string
}

// parentIndexOf reads a record's parentIndex field. Returns present=false
// for the root record (no parentIndex at all); a malformed parentIndex is
// reported as not-ok.
func parentIndexOf(rec *docval.Object) (ref parentRef, present, ok bool) {
	v, has := rec.Get("parentIndex")
	if !has {
		return parentRef{}, false, true
	}
	obj, isObj := v.(*docval.Object)
	if !isObj {
		return parentRef{}, true, false
	}
	gv, has := obj.Get("guid")
	if !has {
		return parentRef{}, true, false
	}
	guid, guidOK := guidFields(gv)
	if !guidOK {
		return parentRef{}, true, false
	}
	pos := ""
	if pv, has := obj.Get("position"); has {
		if s, isStr := pv.(docval.String); isStr {
			pos = string(s)
		}
	}
	return parentRef{guid: guid, position: pos}, true, true
}
