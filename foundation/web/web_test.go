package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, method, target, body string) (*Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}

	return NewContext(c), w
}

func TestBindFunc(t *testing.T) {
	type request struct {
		SubjectID *int    `json:"subject_id"`
		Date      *string `json:"date"`
	}

	c, _ := testContext(t, "POST", "/", `{"subject_id": 4, "date": "2024-03-15"}`)

	var data request
	require.NoError(t, c.BindFunc(&data, "SubjectID", "Date"))
	require.NotNil(t, data.SubjectID)
	require.Equal(t, 4, *data.SubjectID)
}

func TestBindFuncMissingRequiredFields(t *testing.T) {
	type request struct {
		SubjectID *int    `json:"subject_id"`
		Date      *string `json:"date"`
	}

	c, _ := testContext(t, "POST", "/", `{"subject_id": 4}`)

	var data request
	err := c.BindFunc(&data, "SubjectID", "Date")
	require.Error(t, err)

	re, ok := IsRequestError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, re.Status)
	require.Equal(t, map[string]string{"Date": "required field"}, re.Fields)
}

func TestBindFuncBadBody(t *testing.T) {
	c, _ := testContext(t, "POST", "/", `{not json`)

	var data struct{}
	err := c.BindFunc(&data)
	require.Error(t, err)

	re, ok := IsRequestError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, re.Status)
}

func TestGetParam(t *testing.T) {
	c, _ := testContext(t, "GET", "/", "")
	c.Params = gin.Params{{Key: "id", Value: "17"}}

	id := c.GetParam(reflect.Int, "id").(int)
	require.NoError(t, c.ValidParam())
	require.Equal(t, 17, id)
}

func TestGetParamInvalid(t *testing.T) {
	c, _ := testContext(t, "GET", "/", "")
	c.Params = gin.Params{{Key: "id", Value: "seventeen"}}

	_ = c.GetParam(reflect.Int, "id")

	err := c.ValidParam()
	require.Error(t, err)

	re, ok := IsRequestError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, re.Status)
	require.Contains(t, re.Fields, "id")
}

func TestGetQueryFunc(t *testing.T) {
	c, _ := testContext(t, "GET", "/?page=2&search=asha&active=true", "")

	page := c.GetQueryFunc(reflect.Int, "page").(*int)
	search := c.GetQueryFunc(reflect.String, "search").(*string)
	active := c.GetQueryFunc(reflect.Bool, "active").(*bool)
	limit := c.GetQueryFunc(reflect.Int, "limit").(*int)

	require.NoError(t, c.ValidQuery())
	require.NotNil(t, page)
	require.Equal(t, 2, *page)
	require.NotNil(t, search)
	require.Equal(t, "asha", *search)
	require.NotNil(t, active)
	require.True(t, *active)
	require.Nil(t, limit)
}

func TestGetQueryFuncInvalid(t *testing.T) {
	c, _ := testContext(t, "GET", "/?page=two", "")

	page := c.GetQueryFunc(reflect.Int, "page").(*int)
	require.Nil(t, page)

	err := c.ValidQuery()
	require.Error(t, err)

	re, ok := IsRequestError(err)
	require.True(t, ok)
	require.Contains(t, re.Fields, "page")
}

func TestRespondErrorRequestError(t *testing.T) {
	c, w := testContext(t, "GET", "/", "")

	require.NoError(t, c.RespondError(NewRequestError(errors.New("attendance is locked"), http.StatusConflict)))
	require.Equal(t, http.StatusConflict, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "attendance is locked", body["error"])
	require.Equal(t, false, body["status"])
}

func TestRespondErrorWrappedRequestError(t *testing.T) {
	c, w := testContext(t, "GET", "/", "")

	err := errors.Wrap(NewRequestError(errors.New("not found"), http.StatusNotFound), "getting subject")
	require.NoError(t, c.RespondError(err))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRespondErrorUnknownError(t *testing.T) {
	c, w := testContext(t, "GET", "/", "")

	require.NoError(t, c.RespondError(errors.New("pq: connection refused")))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "internal server error", body["error"])
}

func TestIsRequestError(t *testing.T) {
	re, ok := IsRequestError(NewRequestError(errors.New("boom"), http.StatusTeapot))
	require.True(t, ok)
	require.Equal(t, http.StatusTeapot, re.Status)

	_, ok = IsRequestError(errors.New("plain"))
	require.False(t, ok)
}
