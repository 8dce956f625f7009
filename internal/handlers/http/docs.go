package http

import (
	"net/http"

	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// NewSwaggerDocHandler serves the registered swagger document.
func NewSwaggerDocHandler(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			log.Error("read swagger doc", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(doc))
	}
}
