package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Spok95/car-factory/internal/crud"
	"github.com/google/uuid"
)

type errorBody struct {
	Detail  string `json:"detail"`
	ErrorID string `json:"error_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusOf(k crud.Kind) int {
	switch k {
	case crud.KindConflict, crud.KindEmpty:
		return http.StatusBadRequest
	case crud.KindNotFound:
		return http.StatusNotFound
	case crud.KindInvalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail пишет ответ об ошибке. Причина внутренних ошибок клиенту не
// отдаётся: только error_id, по которому её можно найти в логе.
func (a *API) fail(w http.ResponseWriter, r *http.Request, entity string, err error) {
	kind := crud.KindOf(err)
	a.metrics.CRUDError(entity, string(kind))

	body := errorBody{Detail: crud.InternalMessage}
	var e *crud.Error
	if errors.As(err, &e) && e.Message != "" {
		body.Detail = e.Message
	}

	if kind == crud.KindInternal {
		body.Detail = crud.InternalMessage
		body.ErrorID = uuid.NewString()
		a.log.Error("request failed",
			"error_id", body.ErrorID,
			"entity", entity,
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
	} else {
		a.log.Debug("request rejected", "entity", entity, "kind", kind, "detail", body.Detail)
	}
	writeJSON(w, statusOf(kind), body)
}
