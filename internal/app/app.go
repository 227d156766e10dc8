package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

const MaxRequestSize = 1 << 20

type appHandler func(http.ResponseWriter, *http.Request) error

func (fn appHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := fn(w, r); err != nil {
		log.Printf("Error: %v", err)
		if e, ok := err.(*AppError); ok {
			replyJSON(w, e, e.Code)
		} else {
			http.Error(w, fmt.Sprintf("Internal server error: %v", err), http.StatusInternalServerError)
		}
	}
}

// Register API endpoints to the router.
func (c *Controller) SetupRoutes(r *mux.Router) {
	r.Methods("POST").Path("/swish/v1/channels").Handler(appHandler(c.createChannel))
	r.Methods("GET").Path("/swish/v1/channels").Handler(appHandler(c.listChannels))
	r.Methods("GET").Path("/swish/v1/channels/{id}").Handler(appHandler(c.getChannel))
	r.Methods("PATCH").Path("/swish/v1/channels/{id}").Handler(appHandler(c.updateChannel))
	r.Methods("POST").Path("/swish/v1/videos").Handler(appHandler(c.createVideo))
	r.Methods("GET").Path("/swish/v1/videos").Handler(appHandler(c.listVideos))
	r.Methods("GET").Path("/swish/v1/videos/{id}").Handler(appHandler(c.getVideo))
	r.Methods("DELETE").Path("/swish/v1/videos/{id}").Handler(appHandler(c.deleteVideo))
	r.Methods("PUT").Path("/upload/swish/v1/videos/{id}").Handler(appHandler(c.uploadVideo))
	r.Methods("POST").Path("/webhooks/swish/v1/transcode").Handler(appHandler(c.transcodeWebhook))
}

// Parse incoming request body as JSON object.
func parseJSON(w http.ResponseWriter, r *http.Request, data interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestSize)
	if err := json.NewDecoder(r.Body).Decode(data); err != nil {
		return err
	}
	return nil
}

// Respond the output with JSON format to the client.
func replyJSON(w http.ResponseWriter, data interface{}, code int) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return err
	}
	return nil
}
