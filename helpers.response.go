package main

import (
	"encoding/json"
	"net/http"
)

// DetailResponse is the data model sent when a request terminates with an error.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is the data model sent to confirm a destructive operation.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the data model sent when status endpoint is called.
type StatusResponse struct {
	RequestID string `json:"requestid"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// WriteJSONResponse is used to send a payload to client with a given status code.
func WriteJSONResponse(w http.ResponseWriter, status int, payload interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// WriteErrorResponse is used to send an error response to client. The body
// carries a single human-readable detail message.
func WriteErrorResponse(w http.ResponseWriter, status int, detail string) error {
	return WriteJSONResponse(w, status, DetailResponse{Detail: detail})
}

// CustomResponseWriter is a wrapper for http.ResponseWriter. It is used
// to record response details like status code and body size so the core
// middleware can log them and feed the per-status statistics.
type CustomResponseWriter struct {
	http.ResponseWriter
	code  int
	bytes int
	wrote bool
}

// NewCustomResponseWriter provides CustomResponseWriter with 200 as status code.
func NewCustomResponseWriter(rw http.ResponseWriter) *CustomResponseWriter {
	return &CustomResponseWriter{
		ResponseWriter: rw,
		code:           200,
	}
}

// WriteHeader implements http.WriteHeader interface.
func (cw *CustomResponseWriter) WriteHeader(code int) {
	if !cw.wrote {
		cw.code = code
		cw.wrote = true
		cw.ResponseWriter.WriteHeader(code)
	}
}

// Write implements http.Write interface.
func (cw *CustomResponseWriter) Write(bytes []byte) (int, error) {
	if !cw.wrote {
		cw.WriteHeader(cw.code)
	}

	n, err := cw.ResponseWriter.Write(bytes)
	cw.bytes += n
	return n, err
}

// Status returns the written status code.
func (cw *CustomResponseWriter) Status() int {
	return cw.code
}

// Bytes returns bytes written as response body.
func (cw *CustomResponseWriter) Bytes() int {
	return cw.bytes
}

// Unwrap returns native response writer and used by
// the http.ResponseController during its operation.
func (cw *CustomResponseWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
