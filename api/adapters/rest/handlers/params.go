package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"taskboard-microservice/api/pkg/res"
)

// pathID parses a uuid path variable, writing 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil || id == uuid.Nil {
		res.Error(w, "invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func optionalID(w http.ResponseWriter, s *string, name string) (*uuid.UUID, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		res.Error(w, "invalid "+name, http.StatusBadRequest)
		return nil, false
	}
	return &id, true
}

// optionalEnum runs parse on s when it is set.
func optionalEnum[T any](w http.ResponseWriter, s *string, name string, parse func(string) (T, error)) (*T, bool) {
	if s == nil {
		return nil, true
	}
	v, err := parse(*s)
	if err != nil {
		res.Error(w, "invalid "+name, http.StatusBadRequest)
		return nil, false
	}
	return &v, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		res.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}
