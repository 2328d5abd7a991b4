package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/showcase/internal/logging"
)

// Snapshot is a point-in-time copy of the catalog.
type Snapshot struct {
	Items          []Item
	Categories     []Category
	UsedCategories []string // distinct item category names, first appearance order
	Loaded         bool
	LastUpdated    time.Time
	LastError      error
	// ConsecutiveFailures counts LoadAll failures since the last success.
	ConsecutiveFailures int
}

// IsOffline returns true when the service has been unreachable for multiple loads.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Item returns the item with the given id.
func (s Snapshot) Item(id string) (Item, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Category returns the category with the given id.
func (s Snapshot) Category(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryNames lists category names in snapshot order.
func (s Snapshot) CategoryNames() []string {
	names := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		names = append(names, c.Name)
	}
	return names
}

// maxLoadAttempts bounds how often LoadAll refetches when mutations keep
// landing while it waits on the service.
const maxLoadAttempts = 3

// Store owns the item and category collections. Every mutation goes to the
// remote first and is applied to the snapshot only after it succeeds, so a
// failed call leaves the snapshot untouched.
type Store struct {
	remote Remote
	log    logrus.FieldLogger

	mu       sync.RWMutex
	snapshot Snapshot
	// gen counts applied mutations. LoadAll discards a fetch that started
	// under an older generation.
	gen uint64
}

// NewStore builds a Store backed by remote. A nil logger discards entries.
func NewStore(remote Remote, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{remote: remote, log: log.WithField("component", "catalog")}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	snap.Categories = cloneCategories(s.snapshot.Categories)
	snap.UsedCategories = append([]string(nil), s.snapshot.UsedCategories...)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// LoadAll replaces the snapshot with the service's items and categories.
// On failure the previous data is kept and the error is recorded. A fetch
// that raced a mutation is thrown away and repeated, so a reload never
// reverts a rename or delete applied while it was in flight.
func (s *Store) LoadAll(ctx context.Context) ([]Item, []Category, error) {
	var err error
	for attempt := 1; attempt <= maxLoadAttempts; attempt++ {
		s.mu.RLock()
		gen := s.gen
		s.mu.RUnlock()

		var items []Item
		var categories []Category
		items, categories, err = s.fetch(ctx)
		if err != nil {
			break
		}

		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			s.log.WithField("attempt", attempt).Debug("catalog changed during load, refetching")
			continue
		}
		s.snapshot.Items = cloneItems(items)
		s.snapshot.Categories = cloneCategories(categories)
		s.snapshot.UsedCategories = usedCategories(items)
		s.snapshot.Loaded = true
		s.snapshot.LastError = nil
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures = 0
		s.mu.Unlock()
		return cloneItems(items), cloneCategories(categories), nil
	}
	if err == nil {
		// Every attempt was superseded; the local snapshot is the newest view.
		s.log.Warn("catalog load superseded by concurrent changes")
		snap := s.Snapshot()
		return snap.Items, snap.Categories, nil
	}

	s.mu.Lock()
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
	failures := s.snapshot.ConsecutiveFailures
	s.mu.Unlock()
	s.log.WithError(err).WithField("failures", failures).Warn("catalog load failed")
	return nil, nil, err
}

func (s *Store) fetch(ctx context.Context) ([]Item, []Category, error) {
	items, err := s.remote.FetchItems(ctx)
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.remote.FetchCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return items, categories, nil
}

// CreateItem validates the draft locally, posts it and appends the result.
func (s *Store) CreateItem(ctx context.Context, draft ItemDraft) (Item, error) {
	d, err := validateDraft(draft)
	if err != nil {
		return Item{}, err
	}
	if !s.hasCategoryName(d.Category) {
		return Item{}, unknownCategory(d.Category)
	}

	item, err := s.remote.CreateItem(ctx, d)
	if err != nil {
		s.log.WithError(err).WithField("name", d.Name).Warn("create item failed")
		return Item{}, err
	}
	if item.ID == "" {
		return Item{}, &UpstreamError{Op: "create item", Err: errors.New("service returned no id")}
	}
	item = withDraft(item, d)

	s.mu.Lock()
	s.snapshot.Items = append(s.snapshot.Items, item)
	s.snapshot.UsedCategories = usedCategories(s.snapshot.Items)
	s.gen++
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"item": item.ID, "category": item.Category}).Info("item created")
	return item, nil
}

// UpdateItem replaces the four mutable fields of an existing item.
func (s *Store) UpdateItem(ctx context.Context, id string, patch ItemDraft) (Item, error) {
	current, ok := s.Snapshot().Item(id)
	if !ok {
		return Item{}, &NotFoundError{Kind: "item", ID: id}
	}
	d, err := validateDraft(patch)
	if err != nil {
		return Item{}, err
	}
	if d.Category != current.Category && !s.hasCategoryName(d.Category) {
		return Item{}, unknownCategory(d.Category)
	}

	item, err := s.remote.UpdateItem(ctx, id, d)
	if err != nil {
		s.log.WithError(err).WithField("item", id).Warn("update item failed")
		return Item{}, err
	}
	item.ID = id
	item = withDraft(item, d)

	s.mu.Lock()
	found := false
	for i := range s.snapshot.Items {
		if s.snapshot.Items[i].ID == id {
			s.snapshot.Items[i] = item
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		s.log.WithField("item", id).Warn("item vanished during update")
		return Item{}, &NotFoundError{Kind: "item", ID: id}
	}
	s.snapshot.UsedCategories = usedCategories(s.snapshot.Items)
	s.gen++
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"item": id, "category": item.Category}).Info("item updated")
	return item, nil
}

// DeleteItem removes an item. Deleting an id that is already gone, locally
// or on the service, is not an error.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if _, ok := s.Snapshot().Item(id); !ok {
		return nil
	}
	if err := s.remote.DeleteItem(ctx, id); err != nil {
		var ue *UpstreamError
		if !errors.As(err, &ue) || !ue.IsNotFound() {
			s.log.WithError(err).WithField("item", id).Warn("delete item failed")
			return err
		}
	}

	s.mu.Lock()
	s.snapshot.Items = removeItem(s.snapshot.Items, id)
	s.snapshot.UsedCategories = usedCategories(s.snapshot.Items)
	s.gen++
	s.mu.Unlock()

	s.log.WithField("item", id).Info("item deleted")
	return nil
}

// CreateCategory rejects names already in use without calling the service.
func (s *Store) CreateCategory(ctx context.Context, name string) (Category, error) {
	name, err := validateCategoryName(name)
	if err != nil {
		return Category{}, err
	}
	if s.hasCategoryName(name) {
		return Category{}, duplicateCategory(name)
	}

	cat, err := s.remote.CreateCategory(ctx, name)
	if err != nil {
		s.log.WithError(err).WithField("name", name).Warn("create category failed")
		return Category{}, err
	}
	if cat.ID == "" {
		return Category{}, &UpstreamError{Op: "create category", Err: errors.New("service returned no id")}
	}
	if cat.Name == "" {
		cat.Name = name
	}

	s.mu.Lock()
	s.snapshot.Categories = append(s.snapshot.Categories, cat)
	s.gen++
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"category": cat.ID, "name": cat.Name}).Info("category created")
	return cat, nil
}

// RenameCategory renames a category and, in the same update, rewrites every
// item that referenced the previous name.
func (s *Store) RenameCategory(ctx context.Context, id, newName string) (Category, error) {
	newName, err := validateCategoryName(newName)
	if err != nil {
		return Category{}, err
	}
	snap := s.Snapshot()
	old, ok := snap.Category(id)
	if !ok {
		return Category{}, &NotFoundError{Kind: "category", ID: id}
	}
	if old.Name == newName {
		return old, nil
	}
	for _, c := range snap.Categories {
		if c.ID != id && c.Name == newName {
			return Category{}, duplicateCategory(newName)
		}
	}

	cat, err := s.remote.RenameCategory(ctx, id, newName)
	if err != nil {
		s.log.WithError(err).WithField("category", id).Warn("rename category failed")
		return Category{}, err
	}
	cat.ID = id
	if cat.Name == "" {
		cat.Name = newName
	}

	s.mu.Lock()
	oldName := old.Name
	for i := range s.snapshot.Categories {
		if s.snapshot.Categories[i].ID == id {
			oldName = s.snapshot.Categories[i].Name
			s.snapshot.Categories[i] = cat
			break
		}
	}
	items, repaired := renameReferences(s.snapshot.Items, oldName, cat.Name)
	s.snapshot.Items = items
	s.snapshot.UsedCategories = usedCategories(items)
	s.gen++
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"category": id,
		"from":     oldName,
		"to":       cat.Name,
		"repaired": repaired,
	}).Info("category renamed")
	return cat, nil
}

// DeleteCategory removes a category and tombstones every item that
// referenced it.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := s.Snapshot().Category(id); !ok {
		return &NotFoundError{Kind: "category", ID: id}
	}
	if err := s.remote.DeleteCategory(ctx, id); err != nil {
		var ue *UpstreamError
		if !errors.As(err, &ue) || !ue.IsNotFound() {
			s.log.WithError(err).WithField("category", id).Warn("delete category failed")
			return err
		}
	}

	s.mu.Lock()
	var name string
	kept := make([]Category, 0, len(s.snapshot.Categories))
	for _, c := range s.snapshot.Categories {
		if c.ID == id {
			name = c.Name
			continue
		}
		kept = append(kept, c)
	}
	s.snapshot.Categories = kept
	items, tombstoned := renameReferences(s.snapshot.Items, name, NoCategory)
	s.snapshot.Items = items
	s.snapshot.UsedCategories = usedCategories(items)
	s.gen++
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"category":   id,
		"name":       name,
		"tombstoned": tombstoned,
	}).Info("category deleted")
	return nil
}

func (s *Store) hasCategoryName(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.snapshot.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// renameReferences returns a new slice where items referencing from now
// reference to, plus the number of items rewritten. An empty from matches
// nothing so tombstoned items stay tombstoned.
func renameReferences(items []Item, from, to string) ([]Item, int) {
	out := cloneItems(items)
	if from == NoCategory {
		return out, 0
	}
	n := 0
	for i := range out {
		if out[i].Category == from {
			out[i].Category = to
			n++
		}
	}
	return out, n
}

func removeItem(items []Item, id string) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

// withDraft fills the fields the service left blank and forces the locally
// chosen category name.
func withDraft(item Item, d ItemDraft) Item {
	if item.Name == "" {
		item.Name = d.Name
	}
	if item.Description == "" {
		item.Description = d.Description
	}
	if item.Price == "" {
		item.Price = d.Price
	}
	item.Category = d.Category
	return item
}

func duplicateCategory(name string) error {
	return &ValidationError{
		Field:  "name",
		Reason: fmt.Sprintf("category %q already exists", name),
		Err:    ErrDuplicateCategory,
	}
}

func unknownCategory(name string) error {
	return &ValidationError{
		Field:  "category",
		Reason: fmt.Sprintf("%q is not an existing category", name),
	}
}
