package services

import (
	"context"
	"time"

	"github.com/sbilibin2017/demoapp/internal/models"
)

//go:generate mockgen -source=item.go -destination=item_mock.go -package=services

// ItemReader defines the interface for retrieving items.
type ItemReader interface {
	// List retrieves all stored items.
	List(ctx context.Context) ([]models.Item, error)
}

// ItemService serves sample items after a simulated processing delay.
type ItemService struct {
	reader ItemReader
	delay  time.Duration
}

// NewItemService creates a new ItemService.
func NewItemService(
	reader ItemReader,
	delay time.Duration,
) *ItemService {
	return &ItemService{
		reader: reader,
		delay:  delay,
	}
}

// List waits for the processing delay and returns all items.
// It returns ctx.Err() if the context ends first.
func (svc *ItemService) List(
	ctx context.Context,
) ([]models.Item, error) {
	if svc.delay > 0 {
		timer := time.NewTimer(svc.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return svc.reader.List(ctx)
}
