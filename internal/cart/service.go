package cart

import (
	"context"

	"github.com/google/uuid"
	pkgerrors "github.com/jhonvillanueva44/mammapizza-api/pkg/errors"
	"github.com/jhonvillanueva44/mammapizza-api/pkg/logger"
)

// Service owns cart mutations. Adding is append-only; quantity changes
// on the grouped view duplicate or remove underlying entries one by one.
type Service struct {
	store  Store
	logger *logger.Logger
}

func NewService(store Store, logg *logger.Logger) *Service {
	return &Service{store: store, logger: logg}
}

// Summary is the grouped cart view plus its running total.
type Summary struct {
	Groups []Group `json:"grupos"`
	Count  int     `json:"cantidad"`
	Total  string  `json:"total"`
}

// Summarize loads and groups the session's cart.
func (s *Service) Summarize(ctx context.Context, sessionID string) (*Summary, error) {
	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return summarize(items), nil
}

// Add appends a configured item under a fresh entry id. Identical
// configurations are never merged at write time; grouping happens on read.
func (s *Service) Add(ctx context.Context, sessionID string, item Item) (*Summary, error) {
	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	item.ItemID = uuid.NewString()
	items = append(items, item)
	if err := s.store.Save(ctx, sessionID, items); err != nil {
		return nil, err
	}
	ctx = s.logger.WithSessionID(ctx, sessionID)
	ctx = s.logger.WithFields(ctx, map[string]any{"producto_id": item.ProductID, "items": len(items)})
	s.logger.Info(ctx, "cart item added")
	return summarize(items), nil
}

// Duplicate raises a group's quantity by one, cloning the group's first
// underlying entry with a new entry id.
func (s *Service) Duplicate(ctx context.Context, sessionID, groupKey string) (*Summary, error) {
	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	source, found := firstInGroup(items, groupKey)
	if !found {
		return nil, errGroupNotFound(groupKey)
	}
	clone := source
	clone.ItemID = uuid.NewString()
	items = append(items, clone)
	if err := s.store.Save(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return summarize(items), nil
}

// RemoveOne lowers a group's quantity by one, dropping a single
// underlying entry.
func (s *Service) RemoveOne(ctx context.Context, sessionID, groupKey string) (*Summary, error) {
	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	removed := false
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if !removed && GroupKey(item) == groupKey {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return nil, errGroupNotFound(groupKey)
	}
	if err := s.store.Save(ctx, sessionID, kept); err != nil {
		return nil, err
	}
	return summarize(kept), nil
}

// RemoveGroup drops every entry of one configuration.
func (s *Service) RemoveGroup(ctx context.Context, sessionID, groupKey string) (*Summary, error) {
	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if GroupKey(item) != groupKey {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil, errGroupNotFound(groupKey)
	}
	if err := s.store.Save(ctx, sessionID, kept); err != nil {
		return nil, err
	}
	return summarize(kept), nil
}

// Items returns the raw cart entries of the session.
func (s *Service) Items(ctx context.Context, sessionID string) ([]Item, error) {
	return s.store.Load(ctx, sessionID)
}

// Clear drops the whole cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

func summarize(items []Item) *Summary {
	return &Summary{
		Groups: GroupItems(items),
		Count:  len(items),
		Total:  Total(items).StringFixed(2),
	}
}

func firstInGroup(items []Item, groupKey string) (Item, bool) {
	for _, item := range items {
		if GroupKey(item) == groupKey {
			return item, true
		}
	}
	return Item{}, false
}

func errGroupNotFound(groupKey string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "cart group not found").
		WithDetails(map[string]any{"key": groupKey})
}
