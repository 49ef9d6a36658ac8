package guidebook

import (
	"encoding/json"
	"fmt"

	"github.com/tripcraft/guidebook/pkg/guidebook/docstore"
)

// toDocument converts a domain value into the flat document shape the store
// persists, via its JSON form. Custom marshaling (the content object union)
// applies transparently.
func toDocument(v any) (docstore.Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc docstore.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, nil
}

// fromDocument decodes a stored document into the domain value pointed to by
// out.
func fromDocument(doc docstore.Document, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
