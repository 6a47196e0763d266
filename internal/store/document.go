package store

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// toDocument converts a model into the generic form the driver would store.
func toDocument(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

func fromDocument(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// insertDefaults is the $setOnInsert payload for a provisioned singleton:
// the default document without the fields the upsert filter already sets.
func insertDefaults(v any, filterKeys ...string) (bson.M, error) {
	doc, err := toDocument(v)
	if err != nil {
		return nil, err
	}
	delete(doc, "_id")
	for _, k := range filterKeys {
		delete(doc, k)
	}
	return doc, nil
}
