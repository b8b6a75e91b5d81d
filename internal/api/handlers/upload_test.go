package handlers_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dom/studio-api/internal/domain"
	"github.com/dom/studio-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadHandler_Image(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewAdminBuilder().BuildAndAuthenticate(t, ts)
	png := testutil.PNG(t, 120, 80)

	resp := testutil.DoMultipart(t, http.MethodPost, ts.APIURL("/upload/image"), nil, []testutil.MultipartFile{
		{Field: "image", Filename: "shot.png", Content: png},
	}, token)
	defer resp.Body.Close()

	var stored domain.StoredMedia
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	testutil.AssertJSONResponse(t, resp, &stored)
	assert.Equal(t, "image/png", stored.MimeType)
	assert.Equal(t, int64(len(png)), stored.Size)
	require.True(t, strings.HasPrefix(stored.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(stored.URL, ".png"))
	assert.NotEmpty(t, stored.ThumbnailURL)

	t.Run("served back", func(t *testing.T) {
		resp, err := http.Get(ts.BaseURL() + stored.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, png, body)
	})

	t.Run("thumbnail served", func(t *testing.T) {
		resp, err := http.Get(ts.BaseURL() + stored.ThumbnailURL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	})

	t.Run("no directory listing", func(t *testing.T) {
		resp, err := http.Get(ts.BaseURL() + "/uploads/")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUploadHandler_Rejections(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewAdminBuilder().BuildAndAuthenticate(t, ts)

	t.Run("not multipart", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/upload/image"), map[string]string{}, token)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Expected a multipart/form-data upload")
	})

	t.Run("no file", func(t *testing.T) {
		resp := testutil.DoMultipart(t, http.MethodPost, ts.APIURL("/upload/image"),
			map[string]string{"note": "empty"}, nil, token)
		defer resp.Body.Close()
		testutil.AssertFieldErrors(t, resp, "image")
	})

	t.Run("not an image", func(t *testing.T) {
		resp := testutil.DoMultipart(t, http.MethodPost, ts.APIURL("/upload/image"), nil, []testutil.MultipartFile{
			{Field: "image", Filename: "evil.png", Content: []byte("#!/bin/sh\necho hi\n")},
		}, token)
		defer resp.Body.Close()
		testutil.AssertFieldErrors(t, resp, "image")
	})

	t.Run("too large", func(t *testing.T) {
		big := make([]byte, (ts.Config.MaxUploadMB<<20)+1024)
		resp := testutil.DoMultipart(t, http.MethodPost, ts.APIURL("/upload/image"), nil, []testutil.MultipartFile{
			{Field: "image", Filename: "big.png", Content: big},
		}, token)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusRequestEntityTooLarge, "Request body too large")
	})
}

func TestUploadHandler_Images(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewAdminBuilder().BuildAndAuthenticate(t, ts)

	resp := testutil.DoMultipart(t, http.MethodPost, ts.APIURL("/upload/images"), nil, []testutil.MultipartFile{
		{Field: "images", Filename: "a.png", Content: testutil.PNG(t, 20, 20)},
		{Field: "images", Filename: "b.png", Content: testutil.PNG(t, 30, 30)},
	}, token)
	defer resp.Body.Close()

	var body struct {
		Files []domain.StoredMedia `json:"files"`
	}
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	testutil.AssertJSONResponse(t, resp, &body)
	require.Len(t, body.Files, 2)
	assert.NotEqual(t, body.Files[0].URL, body.Files[1].URL)
}

func TestPortfolioHandler_MultipartCreate(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewAdminBuilder().BuildAndAuthenticate(t, ts)

	resp := testutil.DoMultipart(t, http.MethodPost, ts.APIURL("/portfolio"), map[string]string{
		"title":    "Haldi ceremony",
		"category": "weddings",
		"featured": "true",
	}, []testutil.MultipartFile{
		{Field: "image", Filename: "haldi.png", Content: testutil.PNG(t, 100, 60)},
	}, token)
	defer resp.Body.Close()

	var item domain.PortfolioItem
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	testutil.AssertJSONResponse(t, resp, &item)
	assert.True(t, item.Featured)
	assert.True(t, strings.HasPrefix(item.ImageURL, "/uploads/"))
	assert.NotEqual(t, item.ImageURL, item.ThumbnailURL)
}
