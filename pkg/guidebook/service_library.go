package guidebook

import (
	"context"
	"errors"
	"fmt"

	"github.com/tripcraft/guidebook/pkg/guidebook/docstore"
)

// Content library operations

func (s *service) CreateContentObject(ctx context.Context, req CreateContentObjectRequest) (*ContentObject, error) {
	now := s.now().UTC()
	obj := &ContentObject{
		Type:      req.Type,
		TargetID:  req.TargetID,
		Target:    req.Target,
		Title:     req.Title,
		Tagline:   req.Tagline,
		Keywords:  req.Keywords,
		Body:      req.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	doc, err := toDocument(obj)
	if err != nil {
		return nil, err
	}
	id, err := s.store.Create(ctx, docstore.CollectionContentLibrary, doc)
	if err != nil {
		return nil, &ContentObjectError{Op: "create", Err: err}
	}
	obj.ID = id

	s.fireContentObjectCreated(ctx, obj)
	return obj, nil
}

func (s *service) GetContentObject(ctx context.Context, id string) (*ContentObject, error) {
	doc, err := s.store.GetByID(ctx, docstore.CollectionContentLibrary, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrContentObjectNotFound
		}
		return nil, &ContentObjectError{ObjectID: id, Op: "get", Err: err}
	}
	var obj ContentObject
	if err := fromDocument(doc, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func (s *service) UpdateContentObject(ctx context.Context, obj *ContentObject) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	obj.UpdatedAt = s.now().UTC()

	doc, err := toDocument(obj)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, docstore.CollectionContentLibrary, obj.ID, doc); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrContentObjectNotFound
		}
		return &ContentObjectError{ObjectID: obj.ID, Op: "update", Err: err}
	}

	s.fireContentObjectUpdated(ctx, obj)
	return nil
}

func (s *service) DeleteContentObject(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, docstore.CollectionContentLibrary, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrContentObjectNotFound
		}
		return &ContentObjectError{ObjectID: id, Op: "delete", Err: err}
	}

	s.fireContentObjectDeleted(ctx, id)
	return nil
}

// DuplicateContentObject copies an existing object into a new one with a
// fresh id and a zero reference count. The copy is independent: later edits
// to either object do not affect the other.
func (s *service) DuplicateContentObject(ctx context.Context, id string) (*ContentObject, error) {
	src, err := s.GetContentObject(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	dup := *src
	dup.ID = ""
	dup.Title = fmt.Sprintf("%s (복사본)", src.Title)
	dup.ReferenceCount = 0
	dup.CreatedAt = now
	dup.UpdatedAt = now

	doc, err := toDocument(&dup)
	if err != nil {
		return nil, err
	}
	newID, err := s.store.Create(ctx, docstore.CollectionContentLibrary, doc)
	if err != nil {
		return nil, &ContentObjectError{ObjectID: id, Op: "duplicate", Err: err}
	}
	dup.ID = newID

	s.fireContentObjectCreated(ctx, &dup)
	return &dup, nil
}

func (s *service) ListContentObjects(ctx context.Context, filter ContentObjectFilter) ([]*ContentObject, error) {
	var where []docstore.Where
	if filter.Type != nil {
		where = append(where, docstore.Eq("type", string(*filter.Type)))
	}
	if filter.TargetID != "" {
		where = append(where, docstore.Eq("target_id", filter.TargetID))
	}

	docs, err := s.store.Query(ctx, docstore.CollectionContentLibrary, where...)
	if err != nil {
		return nil, fmt.Errorf("list content objects: %w", err)
	}
	result := make([]*ContentObject, 0, len(docs))
	for _, doc := range docs {
		var obj ContentObject
		if err := fromDocument(doc, &obj); err != nil {
			return nil, err
		}
		result = append(result, &obj)
	}
	return result, nil
}

// adjustReferenceCount shifts a content object's reference count by delta.
// A missing object is absorbed: the count is bookkeeping, not integrity.
func (s *service) adjustReferenceCount(ctx context.Context, id string, delta int) error {
	obj, err := s.GetContentObject(ctx, id)
	if err != nil {
		if errors.Is(err, ErrContentObjectNotFound) {
			return nil
		}
		return err
	}
	count := obj.ReferenceCount + delta
	if count < 0 {
		count = 0
	}
	err = s.store.Update(ctx, docstore.CollectionContentLibrary, id, docstore.Document{
		"reference_count": count,
	})
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		return &ContentObjectError{ObjectID: id, Op: "adjust_reference_count", Err: err}
	}
	return nil
}
