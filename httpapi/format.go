package httpapi

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
)

// FormatParam selects the response encoding. JSON is used unless it is set to "msgpack".
const FormatParam = "format"

type errorResponse struct {
	Error string `json:"error"`
}

func writeResponse(w http.ResponseWriter, req *http.Request, status int, data any) error {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "no-store")

	if req.URL.Query().Get(FormatParam) == "msgpack" {
		w.Header().Set("Content-Type", "application/x-msgpack")
		w.WriteHeader(status)
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(data)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}
