package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/demoapp/internal/models"
	"go.uber.org/zap"
)

// StatusClientClosedRequest is recorded when the client goes away before
// the response is ready.
const StatusClientClosedRequest = 499

//go:generate mockgen -source=item.go -destination=item_mock.go -package=http

// ItemLister lists sample items.
type ItemLister interface {
	List(ctx context.Context) ([]models.Item, error)
}

// NewItemListHandler returns the sample data set.
//
// @Summary Sample data
// @Description Returns sample items after a simulated processing delay
// @Tags demo
// @Produce json
// @Success 200 {object} models.ItemList
// @Failure 500 {object} models.Error
// @Router /api/data [get]
func NewItemListHandler(lister ItemLister, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := lister.List(r.Context())
		if errors.Is(err, context.Canceled) {
			log.Debug("list items canceled by client", zap.Error(err))
			w.WriteHeader(StatusClientClosedRequest)
			return
		}
		if err != nil {
			log.Error("list items", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, models.ItemList{
			Data:  items,
			Count: len(items),
		})
	}
}
