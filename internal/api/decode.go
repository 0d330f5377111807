package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/Spok95/car-factory/internal/crud"
	"github.com/gorilla/schema"
)

const maxBody = 1 << 20

// newFormDecoder создаёт декодер форм, использующий те же имена полей, что и JSON.
func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("json")
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(time.Time{}, func(s string) reflect.Value {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(t)
	})
	return d
}

// decodeBody читает тело запроса в dst: JSON, urlencoded-форма или multipart.
func (a *API) decodeBody(r *http.Request, dst any) error {
	ct := r.Header.Get("Content-Type")
	media := "application/json"
	if ct != "" {
		var err error
		if media, _, err = mime.ParseMediaType(ct); err != nil {
			return crud.Invalid("некорректный Content-Type: %s", ct)
		}
	}

	switch media {
	case "application/json":
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			if errors.Is(err, io.EOF) {
				return crud.Invalid("пустое тело запроса")
			}
			return crud.Invalid("некорректный JSON: %v", err)
		}
		return nil
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(nil, r.Body, maxBody)
		if err := r.ParseMultipartForm(maxBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return crud.Invalid("некорректная форма: %v", err)
		}
		if err := a.forms.Decode(dst, r.PostForm); err != nil {
			return crud.Invalid("некорректная форма: %v", err)
		}
		return nil
	default:
		return crud.Invalid("неподдерживаемый Content-Type: %s", media)
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, crud.Invalid("некорректный id: %s", raw)
	}
	return id, nil
}

func invalid(err error) error {
	return crud.Invalid("%s", err.Error())
}

// checkPatchID сверяет id из тела с id из пути; 0 значит «не передан».
func checkPatchID(path, body int64) error {
	if body != 0 && body != path {
		return crud.Invalid("id в теле (%d) не совпадает с id в пути (%d)", body, path)
	}
	return nil
}
