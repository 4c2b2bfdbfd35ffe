package openapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func setupTestRouter() (*mux.Router, *Spec) {
	r := mux.NewRouter()
	spec := NewSpec(Info{Title: "Test API", Version: "1.0.0"})

	spec.Route(r.HandleFunc("/items", dummyHandler).Methods(http.MethodGet),
		&View{Tags: []string{"items"}, Serializer: ItemSerializer{}, Many: true})

	spec.Route(r.HandleFunc("/items/{id:[0-9]+}", dummyHandler).Methods(http.MethodGet),
		&View{Tags: []string{"items"}, Serializer: ItemSerializer{}})

	return r, spec
}

func serveRequest(r *mux.Router, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHandle(t *testing.T) {
	t.Run("JSON spec at /swagger/schema.json", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "/swagger", nil)

		w := serveRequest(r, http.MethodGet, "/swagger/schema.json")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var doc map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.2", doc["openapi"])

		paths, ok := doc["paths"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, paths, "/items")
		assert.Contains(t, paths, "/items/{id}")
	})

	t.Run("YAML spec at /swagger/schema.yaml", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "/swagger", nil)

		w := serveRequest(r, http.MethodGet, "/swagger/schema.yaml")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/x-yaml", w.Header().Get("Content-Type"))

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.2", doc["openapi"])
	})

	t.Run("servers reflect the requesting origin", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "/swagger", nil)

		w := serveRequest(r, http.MethodGet, "http://localhost:9000/swagger/schema.json")

		var doc Document
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		require.Len(t, doc.Servers, 1)
		assert.Equal(t, "http://localhost:9000", doc.Servers[0].URL)
	})

	t.Run("docs UI at /swagger/", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "/swagger", nil)

		for _, path := range []string{"/swagger", "/swagger/"} {
			w := serveRequest(r, http.MethodGet, path)
			assert.Equal(t, http.StatusOK, w.Code, path)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
			assert.Contains(t, w.Body.String(), "swagger-ui", path)
			assert.Contains(t, w.Body.String(), "/swagger/schema.json", path)
		}
	})

	t.Run("rapidoc UI", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "/swagger", &HandleConfig{UI: DocsRapiDoc})

		w := serveRequest(r, http.MethodGet, "/swagger/")
		assert.Contains(t, w.Body.String(), "rapi-doc")
	})

	t.Run("redoc UI", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "/swagger", &HandleConfig{UI: DocsRedoc})

		w := serveRequest(r, http.MethodGet, "/swagger/")
		assert.Contains(t, w.Body.String(), "redoc")
	})

	t.Run("custom title", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "/swagger", &HandleConfig{Title: "Custom <Title>"})

		w := serveRequest(r, http.MethodGet, "/swagger/")
		assert.Contains(t, w.Body.String(), "Custom &lt;Title&gt;")
	})

	t.Run("swagger ui extra config", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "/swagger", &HandleConfig{
			SwaggerUIConfig: map[string]any{"docExpansion": "none"},
		})

		w := serveRequest(r, http.MethodGet, "/swagger/")
		assert.Contains(t, w.Body.String(), `docExpansion: "none"`)
	})

	t.Run("disable docs", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "/swagger", &HandleConfig{DisableDocs: true})

		w := serveRequest(r, http.MethodGet, "/swagger/")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = serveRequest(r, http.MethodGet, "/swagger/schema.json")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("disable json endpoint", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "/swagger", &HandleConfig{JSONFilename: "-"})

		w := serveRequest(r, http.MethodGet, "/swagger/schema.json")
		assert.Equal(t, http.StatusNotFound, w.Code)

		// Docs UI falls back to the YAML endpoint.
		w = serveRequest(r, http.MethodGet, "/swagger/")
		assert.Contains(t, w.Body.String(), "/swagger/schema.yaml")
	})

	t.Run("absolute filename", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "/swagger", &HandleConfig{
			JSONFilename: "/api/v1/swagger.json",
			YAMLFilename: "-",
		})

		w := serveRequest(r, http.MethodGet, "/api/v1/swagger.json")
		assert.Equal(t, http.StatusOK, w.Code)

		w = serveRequest(r, http.MethodGet, "/swagger/")
		assert.Contains(t, w.Body.String(), "/api/v1/swagger.json")
	})

	t.Run("root base path", func(t *testing.T) {
		r, spec := setupTestRouter()
		spec.Handle(r, "", nil)

		w := serveRequest(r, http.MethodGet, "/schema.json")
		assert.Equal(t, http.StatusOK, w.Code)

		w = serveRequest(r, http.MethodGet, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), "swagger-ui"))
	})
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/swagger/schema.json", resolvePath("/swagger", "schema.json"))
	assert.Equal(t, "/api/v1/spec.json", resolvePath("/swagger", "/api/v1/spec.json"))
	assert.Equal(t, "/schema.json", resolvePath("", "schema.json"))
}
