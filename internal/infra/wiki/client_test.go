package wiki

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnailFound(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"titles":      r.URL.Query().Get("titles"),
			"pithumbsize": r.URL.Query().Get("pithumbsize"),
			"prop":        r.URL.Query().Get("prop"),
		}
		fmt.Fprint(w, `{"query":{"pages":{"12345":{"pageid":12345,"title":"Granite",
			"thumbnail":{"source":"https://upload.wikimedia.org/granite.jpg","width":300,"height":200}}}}}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	url, err := c.Thumbnail(context.Background(), "Granite", 300)
	require.NoError(t, err)
	assert.Equal(t, "https://upload.wikimedia.org/granite.jpg", url)
	assert.Equal(t, "Granite", gotQuery["titles"])
	assert.Equal(t, "300", gotQuery["pithumbsize"])
	assert.Equal(t, "pageimages", gotQuery["prop"])
}

func TestThumbnailMissingPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":{"-1":{"title":"Unknownite","missing":""}}}}`)
	}))
	defer srv.Close()

	url, err := New(srv.URL).Thumbnail(context.Background(), "Unknownite", 300)
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestThumbnailPageWithoutImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":{"777":{"pageid":777,"title":"Granite"}}}}`)
	}))
	defer srv.Close()

	url, err := New(srv.URL).Thumbnail(context.Background(), "Granite", 300)
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestThumbnailEmptyNameSkipsLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty name")
	}))
	defer srv.Close()

	url, err := New(srv.URL).Thumbnail(context.Background(), "", 300)
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestThumbnailServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Thumbnail(context.Background(), "Granite", 300)
	assert.Error(t, err)
}

func TestThumbnailDefaultSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "300", r.URL.Query().Get("pithumbsize"))
		fmt.Fprint(w, `{"query":{"pages":{}}}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Thumbnail(context.Background(), "Granite", 0)
	require.NoError(t, err)
}
