package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context wraps gin.Context and keeps a request-scoped context.Context that
// middleware may extend (claims, deadlines) before repositories see it.
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrs map[string]string
	queryErrs map[string]string
}

func NewContext(c *gin.Context) *Context {
	return &Context{
		Context: c,
		Ctx:     c.Request.Context(),
	}
}

// BindFunc binds the request body into data and verifies that the named
// struct fields were provided.
func (c *Context) BindFunc(data interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(data); err != nil {
		return NewRequestError(errors.Wrap(err, "parsing request body"), http.StatusBadRequest)
	}

	fields := map[string]string{}
	v := reflect.Indirect(reflect.ValueOf(data))

	for _, name := range requiredFields {
		f := v.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		if f.IsZero() {
			fields[name] = "required field"
		}
	}

	if len(fields) > 0 {
		return &Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// GetParam reads a path parameter as the requested kind. Conversion problems
// are collected and reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.setParamErr(name, fmt.Sprintf("expected integer, got %q", value))
			return 0
		}
		return n
	default:
		if value == "" {
			c.setParamErr(name, "required param")
		}
		return value
	}
}

func (c *Context) setParamErr(name, msg string) {
	if c.paramErrs == nil {
		c.paramErrs = map[string]string{}
	}
	c.paramErrs[name] = msg
}

func (c *Context) ValidParam() error {
	if len(c.paramErrs) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New("invalid path params"),
		Status: http.StatusBadRequest,
		Fields: c.paramErrs,
	}
}

// GetQueryFunc reads an optional query parameter as a typed pointer. A nil
// pointer of the requested type is returned when the parameter is absent.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			c.setQueryErr(name, fmt.Sprintf("expected integer, got %q", value))
			return (*int)(nil)
		}
		return &n
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.setQueryErr(name, fmt.Sprintf("expected boolean, got %q", value))
			return (*bool)(nil)
		}
		return &b
	default:
		if !ok {
			return (*string)(nil)
		}
		return &value
	}
}

func (c *Context) setQueryErr(name, msg string) {
	if c.queryErrs == nil {
		c.queryErrs = map[string]string{}
	}
	c.queryErrs[name] = msg
}

func (c *Context) ValidQuery() error {
	if len(c.queryErrs) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New("invalid query params"),
		Status: http.StatusBadRequest,
		Fields: c.queryErrs,
	}
}

func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError writes the error envelope. Unknown errors are reported as an
// internal server error without leaking internals to the caller.
func (c *Context) RespondError(err error) error {
	if re, ok := IsRequestError(err); ok {
		body := map[string]interface{}{
			"error":  re.Err.Error(),
			"status": false,
		}
		if len(re.Fields) > 0 {
			body["fields"] = re.Fields
		}
		c.JSON(re.Status, body)
		return nil
	}

	log.Println("unexpected error:", err)
	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":  "internal server error",
		"status": false,
	})

	return nil
}
