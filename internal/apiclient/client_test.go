package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", "token-1", WithHTTPClient(srv.Client()))
}

func TestSaveMappingSendsEntries(t *testing.T) {
	var got map[string]json.RawMessage

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/templates/tpl-1/mapping", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		b, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(b, &got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"tpl-1","variableMapping":{"1":"name"}}`))
	})

	saved, err := c.SaveMapping(context.Background(), "tpl-1", mapping.Present(map[string]string{"1": "name"}))

	require.NoError(t, err)
	assert.JSONEq(t, `{"1":"name"}`, string(got["variableMapping"]))
	assert.True(t, saved.IsPresent())
	assert.Equal(t, map[string]string{"1": "name"}, saved.Entries())
}

func TestSaveMappingSendsNullWhenAbsent(t *testing.T) {
	var got map[string]json.RawMessage

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(b, &got))
		w.Write([]byte(`{"id":"tpl-1","variableMapping":null}`))
	})

	saved, err := c.SaveMapping(context.Background(), "tpl-1", mapping.Absent())

	require.NoError(t, err)
	assert.Equal(t, "null", string(got["variableMapping"]))
	assert.False(t, saved.IsPresent())
}

func TestErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"template not found"}`))
		})

		_, err := c.GetTemplate(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "template not found")
	})

	t.Run("validation", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"errors":[{"field":"VariableMapping[1]","message":"bad field"}]}`))
		})

		_, err := c.SaveMapping(context.Background(), "tpl-1", mapping.Present(map[string]string{"1": "email"}))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.ErrorIs(t, err, ErrBadRequest)
		assert.Equal(t, []FieldError{{Field: "VariableMapping[1]", Message: "bad field"}}, apiErr.Fields)
	})

	t.Run("unauthorized", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := c.FieldCatalog(context.Background())

		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestReads(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/templates":
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			w.Write([]byte(`{"data":[{"id":"tpl-1","name":"welcome"}],"limit":5,"page":2,"total":11}`))
		case "/templates/tpl-1/variables":
			w.Write([]byte(`{"variables":["1","2"]}`))
		case "/contacts/fields":
			w.Write([]byte(`{"standard":["name","phone_number"],"custom":["city"]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	list, err := c.ListTemplates(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(11), list.Total)
	assert.Equal(t, "welcome", list.Data[0].Name)

	vars, err := c.Variables(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, vars)

	catalog, err := c.FieldCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"city"}, catalog.Custom)
}
