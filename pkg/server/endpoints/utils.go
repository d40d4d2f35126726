package endpoints

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/rocketresume/rocket/pkg/config"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// decodeJSON reads a JSON request body into dst. Bodies are capped at
// 1 MiB; anything larger is an error, not a truncation.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst)
}

// clientIP resolves the originating address, trusting X-Forwarded-For
// when a proxy set it.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// listParams parses limit and offset query parameters, clamping limit
// to the configured maximum.
func listParams(r *http.Request, cfg *config.RocketConfig) (limit, offset int) {
	limit = cfg.APIListLimitMax
	if v := r.URL.Query().Get("limit"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			limit = i
		}
	}
	if limit > cfg.APIListLimitMax {
		limit = cfg.APIListLimitMax
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			offset = i
		}
	}
	return limit, offset
}
