package http

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/kylianebat7/gudlft/internal/booking"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeBookingError maps an error from the booking service to its status and body.
func writeBookingError(w http.ResponseWriter, err error) {
	reason := booking.ReasonOf(err)
	writeError(w, statusForReason(reason), string(reason), booking.MessageOf(err))
}

func statusForReason(reason booking.Reason) int {
	switch reason {
	case booking.ReasonUnknownEntity:
		return http.StatusNotFound
	case booking.ReasonCompetitionClosed, booking.ReasonInsufficientInventory, booking.ReasonInsufficientPoints:
		return http.StatusConflict
	case booking.ReasonMalformedInput, booking.ReasonInvalidQuantity:
		return http.StatusBadRequest
	case booking.ReasonQuantityLimitExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// readValues returns the request fields from a JSON object body or, for any other
// content type, from the parsed form. JSON numbers keep their literal text.
func readValues(r *http.Request) (map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var raw map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode JSON body: %w", err)
		}
		values := make(map[string]string, len(raw))
		for key, value := range raw {
			switch v := value.(type) {
			case nil:
			case string:
				values[key] = v
			case json.Number:
				values[key] = v.String()
			default:
				values[key] = fmt.Sprint(v)
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	values := make(map[string]string, len(r.Form))
	for key := range r.Form {
		values[key] = r.Form.Get(key)
	}
	return values, nil
}
