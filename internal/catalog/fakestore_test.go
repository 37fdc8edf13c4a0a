package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"title":"Backpack","price":109.95,"description":"Fits laptops","category":"men's clothing","image":"https://img/1.png"},
			{"id":2,"title":"T-Shirt","price":22.3,"description":"Slim fit","category":"men's clothing","image":"https://img/2.png"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	products, err := client.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Backpack", products[0].Title)
	assert.Equal(t, 109.95, products[0].Price)
	assert.Equal(t, "https://img/2.png", products[1].Image)
}

func TestClient_FetchProducts_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchProducts(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_FetchProducts_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchProducts(context.Background())

	assert.Error(t, err)
}

func TestClient_FetchProducts_ServerUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	_, err := client.FetchProducts(context.Background())

	assert.Error(t, err)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client := NewClient("")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
