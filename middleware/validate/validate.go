// Package validate roda validadores declarados por rota sobre a query string.
//
// Campos não declarados passam direto; falha encerra o request com 400 e a
// lista estruturada de erros em JSON.
package validate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field declara um campo da query e suas regras (tags do go-playground/validator).
// Ex: {Name: "keys", Rules: "omitempty,boolean"}.
type Field struct {
	Name  string
	Rules string
}

type FieldError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

func Middleware(fields ...Field) func(next http.Handler) http.Handler {
	v := validator.New()

	return func(next http.Handler) http.Handler {
		if len(fields) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()

			var errs []FieldError
			changed := false
			for _, f := range fields {
				raw := q.Get(f.Name)
				trimmed := strings.TrimSpace(raw)
				if trimmed != raw {
					// normaliza in place; o handler enxerga o valor limpo
					q.Set(f.Name, trimmed)
					changed = true
				}

				if err := v.Var(trimmed, f.Rules); err != nil {
					errs = append(errs, FieldError{
						Field:    f.Name,
						Message:  message(err),
						Location: "query",
					})
				}
			}

			if len(errs) > 0 {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(struct {
					Errors []FieldError `json:"errors"`
				}{errs})
				return
			}

			if changed {
				r.URL.RawQuery = q.Encode()
			}
			next.ServeHTTP(w, r)
		})
	}
}

func message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "does not satisfy rule " + strconv.Quote(verrs[0].Tag())
	}
	return "invalid value"
}
