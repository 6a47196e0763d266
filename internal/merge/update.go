// Package merge turns sparse update requests into dotted-path update sets,
// so a write only touches the leaves a client actually sent.
package merge

import (
	"reflect"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Update is a partial update: paths to overwrite and paths to remove.
// Paths use dot notation into nested documents ("info_bar.contact.email").
type Update struct {
	Set   bson.M
	Unset bson.M
}

func NewUpdate() Update {
	return Update{Set: bson.M{}, Unset: bson.M{}}
}

// Supplied is the single "was this field sent" rule for sparse updates: a
// value counts only when it is truthy. Empty strings, zero numbers, false
// and nil are treated as not sent, so none of them can be used to clear a
// field. Slices and maps count whenever they are non-nil, even when empty.
func Supplied(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return !rv.IsNil()
	}
	return true
}

// SetIfSupplied adds path when v passes Supplied.
func (u Update) SetIfSupplied(path string, v any) {
	if Supplied(v) {
		u.Set[path] = v
	}
}

func (u Update) Empty() bool {
	return len(u.Set) == 0 && len(u.Unset) == 0
}

// Paths lists every touched path, sorted.
func (u Update) Paths() []string {
	paths := make([]string, 0, len(u.Set)+len(u.Unset))
	for p := range u.Set {
		paths = append(paths, p)
	}
	for p := range u.Unset {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Document renders the update as a MongoDB update document and stamps
// updatedAt.
func (u Update) Document(now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	for k, v := range u.Set {
		set[k] = v
	}
	doc := bson.M{"$set": set}
	if len(u.Unset) > 0 {
		unset := bson.M{}
		for k := range u.Unset {
			unset[k] = ""
		}
		doc["$unset"] = unset
	}
	return doc
}
