package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sbilibin2017/demoapp/internal/models"
)

// ItemReadRepository provides read access to in-memory items.
type ItemReadRepository struct {
	mu   sync.RWMutex
	data map[int]models.Item
}

// NewItemReadRepository creates a new ItemReadRepository.
func NewItemReadRepository(
	data map[int]models.Item,
) *ItemReadRepository {
	return &ItemReadRepository{data: data}
}

// SampleItems returns the items served by the sample data endpoint.
func SampleItems() map[int]models.Item {
	return map[int]models.Item{
		1: {ID: 1, Name: "Item 1"},
		2: {ID: 2, Name: "Item 2"},
		3: {ID: 3, Name: "Item 3"},
	}
}

// List returns all items sorted by ID.
func (r *ItemReadRepository) List(
	ctx context.Context,
) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Item, 0, len(r.data))
	for _, item := range r.data {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	return items, nil
}
