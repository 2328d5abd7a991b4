package catalog

import (
	"context"
	"errors"

	"github.com/five82/showcase/internal/backend"
)

// Remote is the backing service as seen by the Store: flat, name-only
// category references in, UpstreamError out.
type Remote interface {
	FetchItems(ctx context.Context) ([]Item, error)
	FetchCategories(ctx context.Context) ([]Category, error)
	CreateItem(ctx context.Context, draft ItemDraft) (Item, error)
	UpdateItem(ctx context.Context, id string, draft ItemDraft) (Item, error)
	DeleteItem(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, name string) (Category, error)
	RenameCategory(ctx context.Context, id, name string) (Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Ensure Adapter implements Remote at compile time.
var _ Remote = (*Adapter)(nil)

// Adapter translates between backend wire records and catalog values. It
// never retries.
type Adapter struct {
	svc backend.Service
}

// NewAdapter wraps a backend service.
func NewAdapter(svc backend.Service) *Adapter {
	return &Adapter{svc: svc}
}

// FetchItems lists items with categories flattened to names.
func (a *Adapter) FetchItems(ctx context.Context) ([]Item, error) {
	recs, err := a.svc.ListItems(ctx)
	if err != nil {
		return nil, upstream("list items", err)
	}
	items := make([]Item, 0, len(recs))
	for _, rec := range recs {
		items = append(items, itemFromRecord(rec))
	}
	return items, nil
}

// FetchCategories lists categories.
func (a *Adapter) FetchCategories(ctx context.Context) ([]Category, error) {
	recs, err := a.svc.ListCategories(ctx)
	if err != nil {
		return nil, upstream("list categories", err)
	}
	categories := make([]Category, 0, len(recs))
	for _, rec := range recs {
		categories = append(categories, categoryFromRecord(rec))
	}
	return categories, nil
}

// CreateItem posts the draft with its category by name.
func (a *Adapter) CreateItem(ctx context.Context, draft ItemDraft) (Item, error) {
	rec, err := a.svc.CreateItem(ctx, payloadFromDraft(draft))
	if err != nil {
		return Item{}, upstream("create item", err)
	}
	return itemFromRecord(rec), nil
}

// UpdateItem replaces the item's mutable fields.
func (a *Adapter) UpdateItem(ctx context.Context, id string, draft ItemDraft) (Item, error) {
	rec, err := a.svc.UpdateItem(ctx, id, payloadFromDraft(draft))
	if err != nil {
		return Item{}, upstream("update item", err)
	}
	item := itemFromRecord(rec)
	if item.ID == "" {
		item.ID = id
	}
	return item, nil
}

// DeleteItem removes the item.
func (a *Adapter) DeleteItem(ctx context.Context, id string) error {
	if err := a.svc.DeleteItem(ctx, id); err != nil {
		return upstream("delete item", err)
	}
	return nil
}

// CreateCategory posts a new category.
func (a *Adapter) CreateCategory(ctx context.Context, name string) (Category, error) {
	rec, err := a.svc.CreateCategory(ctx, name)
	if err != nil {
		return Category{}, upstream("create category", err)
	}
	return categoryFromRecord(rec), nil
}

// RenameCategory renames by id.
func (a *Adapter) RenameCategory(ctx context.Context, id, name string) (Category, error) {
	rec, err := a.svc.RenameCategory(ctx, id, name)
	if err != nil {
		return Category{}, upstream("rename category", err)
	}
	cat := categoryFromRecord(rec)
	if cat.ID == "" {
		cat.ID = id
	}
	return cat, nil
}

// DeleteCategory removes by id.
func (a *Adapter) DeleteCategory(ctx context.Context, id string) error {
	if err := a.svc.DeleteCategory(ctx, id); err != nil {
		return upstream("delete category", err)
	}
	return nil
}

func itemFromRecord(rec backend.ItemRecord) Item {
	return Item{
		ID:          string(rec.ID),
		Name:        rec.Name,
		Description: rec.Description,
		Price:       string(rec.Price),
		Category:    rec.Category.Name,
	}
}

func categoryFromRecord(rec backend.CategoryRecord) Category {
	return Category{ID: string(rec.ID), Name: rec.Name}
}

func payloadFromDraft(d ItemDraft) backend.ItemPayload {
	return backend.ItemPayload{
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
	}
}

func upstream(op string, err error) error {
	ue := &UpstreamError{Op: op, Err: err}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		ue.Status = apiErr.StatusCode
	}
	return ue
}
