package http

import (
	"net/http"

	"github.com/sbilibin2017/demoapp/internal/models"
)

// GreetingMessage is the message returned by the root endpoint.
const GreetingMessage = "Hello from Flask DevOps App!"

// NewGreetingHandler returns the greeting with build version and environment.
//
// @Summary Greeting
// @Description Returns a greeting with the running version and environment name
// @Tags demo
// @Produce json
// @Success 200 {object} models.Greeting
// @Router / [get]
func NewGreetingHandler(version, environment string) http.HandlerFunc {
	greeting := models.Greeting{
		Message:     GreetingMessage,
		Version:     version,
		Environment: environment,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, greeting)
	}
}
