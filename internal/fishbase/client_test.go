package fishbase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "divelog/internal/errors"
)

func TestSearch_NormalizesRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/species", r.URL.Path)
		assert.Equal(t, "clown anemonefish", r.URL.Query().Get("name"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"Genus":"Amphiprion","Species":"percula","FBname":"Clown anemonefish","PicPreferredName":"Amper_u0.jpg"},
			{"Genus":"Amphiprion","Species":"ocellaris","ComName":"False clownfish"},
			{"Genus":"Premnas","Species":"biaculeatus"}
		]`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, nil)
	fishes, err := client.Search(context.Background(), "clown anemonefish")
	require.NoError(t, err)
	require.Len(t, fishes, 3)

	assert.Equal(t, "Amphiprion percula", fishes[0].ScientificName)
	require.NotNil(t, fishes[0].CommonName)
	assert.Equal(t, "Clown anemonefish", *fishes[0].CommonName)
	require.NotNil(t, fishes[0].Image)
	assert.Equal(t, "Amper_u0.jpg", *fishes[0].Image)

	// ComName is the fallback when FBname is empty
	require.NotNil(t, fishes[1].CommonName)
	assert.Equal(t, "False clownfish", *fishes[1].CommonName)
	assert.Nil(t, fishes[1].Image)

	assert.Nil(t, fishes[2].CommonName)
}

func TestSearch_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, nil)
	fishes, err := client.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, fishes)
}

func TestSearch_UpstreamErrorSurfacesAsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, nil)
	_, err := client.Search(context.Background(), "clownfish")
	assert.ErrorIs(t, err, apperrors.ErrLookupUnavailable)
}

func TestSearch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, nil)
	_, err := client.Search(context.Background(), "clownfish")
	assert.ErrorIs(t, err, apperrors.ErrLookupUnavailable)
}

func TestDetails_Passthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/species/details", r.URL.Path)
		assert.Equal(t, "238", r.URL.Query().Get("specCode"))
		_, _ = w.Write([]byte(`{"SpecCode":238,"Genus":"Amphiprion","Species":"percula","DemersPelag":"reef-associated"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, nil)
	raw, err := client.Details(context.Background(), 238)
	require.NoError(t, err)
	assert.JSONEq(t, `{"SpecCode":238,"Genus":"Amphiprion","Species":"percula","DemersPelag":"reef-associated"}`, string(raw))
}

func TestDetails_UnknownCodeIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, nil)
	_, err := client.Details(context.Background(), 999999)
	assert.ErrorIs(t, err, apperrors.ErrFishNotFound)
}

func TestDetails_UnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL, time.Second, nil)
	_, err := client.Details(context.Background(), 238)
	assert.ErrorIs(t, err, apperrors.ErrLookupUnavailable)
}

func TestSearch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(srv.URL, 20*time.Millisecond, nil)
	_, err := client.Search(context.Background(), "clownfish")
	assert.ErrorIs(t, err, apperrors.ErrLookupUnavailable)
}
