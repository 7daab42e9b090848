package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json name.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// fieldMessages holds the user-facing text per field and failed rule; the
// "" rule is the field's catch-all.
var fieldMessages = map[string]map[string]string{
	"username": {
		"required": "Username must be at least 3 characters",
		"min":      "Username must be at least 3 characters",
		"max":      "Username must be at most 50 characters",
	},
	"email": {"": "Please provide a valid email"},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
		"max":      "Password must be at most 72 bytes",
	},
	"firstName": {"": "First name cannot be empty"},
	"lastName":  {"": "Last name cannot be empty"},
}

// bindJSON decodes the request body and writes the 400 envelope on failure.
func bindJSON(c *gin.Context, dst any) bool {
	useJSONFieldNames()
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respondValidation(c, translate(verrs))
			return false
		}
		respondFailure(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func translate(verrs validator.ValidationErrors) []fieldError {
	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		message := field + " is invalid"
		if rules, ok := fieldMessages[field]; ok {
			if m, ok := rules[fe.Tag()]; ok {
				message = m
			} else if m, ok := rules[""]; ok {
				message = m
			}
		}
		out = append(out, fieldError{Field: field, Message: message})
	}
	return out
}

// trimmedString trims surrounding whitespace while decoding so that the
// validator sees the trimmed value.
type trimmedString string

func (s *trimmedString) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = trimmedString(strings.TrimSpace(raw))
	return nil
}

func (s *trimmedString) ptr() *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

// number accepts a JSON number or a numeric string. Absent and null leave
// present false; anything that does not parse leaves valid false.
type number struct {
	present bool
	valid   bool
	value   float64
}

func (n *number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	n.present = true

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	n.valid = err == nil && !math.IsNaN(v) && !math.IsInf(v, 0)
	n.value = v
	return nil
}

// supplied reports a usable non-zero value. Zero counts as not supplied.
func (n number) supplied() bool {
	return n.present && n.valid && n.value != 0
}

// malformed reports a value that was sent but is not numeric.
func (n number) malformed() bool {
	return n.present && !n.valid
}

// fitsInt reports whether the value fits an INTEGER column once truncated.
// Absent and malformed values pass; callers check those separately.
func (n number) fitsInt() bool {
	if !n.present || !n.valid {
		return true
	}
	v := math.Trunc(n.value)
	return v >= math.MinInt32 && v <= math.MaxInt32
}

func (n number) decimal() *float64 {
	if !n.supplied() {
		return nil
	}
	v := n.value
	return &v
}

func (n number) integer() *int {
	if !n.supplied() || !n.fitsInt() {
		return nil
	}
	v := int(math.Trunc(n.value))
	return &v
}

// muscles accepts either free text or a list of muscle names.
type muscles struct {
	value *string
}

func (m *muscles) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		joined := strings.Join(list, ", ")
		m.value = &joined
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	m.value = &text
	return nil
}

func parseID(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondFailure(c, http.StatusBadRequest, "Invalid "+what+" id")
		return 0, false
	}
	return id, true
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
