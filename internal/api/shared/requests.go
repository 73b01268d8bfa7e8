package shared

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps request bodies read by DecodeRequest.
const maxBodyBytes = 1 << 20

// ErrUnsupportedMediaType is returned for bodies that are neither JSON nor forms.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// Global validator instance for reuse. Field errors carry JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FormDecoder is implemented by request structs that can be filled from
// form fields.
type FormDecoder interface {
	DecodeForm(get func(key string) string)
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// DecodeRequest fills v from a JSON body when the Content-Type says so and
// from url-encoded or multipart form fields otherwise.
func DecodeRequest(w http.ResponseWriter, r *http.Request, v FormDecoder) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return DecodeJSON(r, v)
	case "", "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return err
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return err
		}
	default:
		return ErrUnsupportedMediaType
	}

	v.DecodeForm(r.PostFormValue)
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}
