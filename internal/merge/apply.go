package merge

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Apply performs u on an already decoded document, the way MongoDB applies
// $set and $unset. Intermediate documents are created as needed; the rest
// of doc is left untouched.
func Apply(doc bson.M, u Update, now time.Time) error {
	for path, value := range u.Set {
		if err := setPath(doc, path, value); err != nil {
			return err
		}
	}
	for path := range u.Unset {
		unsetPath(doc, path)
	}
	doc["updatedAt"] = primitive.NewDateTimeFromTime(now)
	return nil
}

func setPath(doc bson.M, path string, value any) error {
	parts := strings.Split(path, ".")
	cur := doc
	for i, key := range parts[:len(parts)-1] {
		next, ok := cur[key]
		if !ok || next == nil {
			child := bson.M{}
			cur[key] = child
			cur = child
			continue
		}
		child, ok := asDocument(next)
		if !ok {
			return fmt.Errorf("merge: cannot set %q: %q is not a document", path, strings.Join(parts[:i+1], "."))
		}
		cur[key] = child
		cur = child
	}
	cur[parts[len(parts)-1]] = value
	return nil
}

func unsetPath(doc bson.M, path string) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, key := range parts[:len(parts)-1] {
		child, ok := asDocument(cur[key])
		if !ok {
			return
		}
		cur[key] = child
		cur = child
	}
	delete(cur, parts[len(parts)-1])
}

func asDocument(v any) (bson.M, bool) {
	switch t := v.(type) {
	case bson.M:
		return t, true
	case map[string]any:
		return bson.M(t), true
	case bson.D:
		m := make(bson.M, len(t))
		for _, e := range t {
			m[e.Key] = e.Value
		}
		return m, true
	}
	return nil, false
}

// lookup returns the value at path and whether it exists.
func lookup(doc bson.M, path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, key := range parts[:len(parts)-1] {
		child, ok := asDocument(cur[key])
		if !ok {
			return nil, false
		}
		cur = child
	}
	v, ok := cur[parts[len(parts)-1]]
	return v, ok
}
