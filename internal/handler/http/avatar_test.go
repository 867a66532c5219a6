// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/therealrogden/taskkeeper/internal/store"
	"github.com/therealrogden/taskkeeper/models"
)

// pngBlob is a minimal payload http.DetectContentType sniffs as image/png.
var pngBlob = []byte("\x89PNG\r\n\x1a\n0000000000")

// multipartAvatarRequest builds an authenticated avatar upload request.
func multipartAvatarRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/users/me/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testBearer)
	return req
}

func TestUploadAvatar(t *testing.T) {
	uploaded := false
	users := &mockUserService{
		uploadAvatarFn: func(_ context.Context, user models.User, data []byte, contentType string) error {
			assert.Equal(t, testUser.ID, user.ID)
			assert.Equal(t, pngBlob, data)
			assert.Equal(t, "image/png", contentType)
			uploaded = true
			return nil
		},
	}
	router := newTestRouter(t, nil, users, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartAvatarRequest(t, avatarFormField, pngBlob))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uploaded)
}

func TestUploadAvatar_Rejections(t *testing.T) {
	users := &mockUserService{}
	router := newTestRouter(t, nil, users, nil)

	t.Run("non-image content", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, multipartAvatarRequest(t, avatarFormField, []byte("just some text")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong form field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, multipartAvatarRequest(t, "upload", pngBlob))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServeAvatar(t *testing.T) {
	userID := primitive.NewObjectID()

	users := &mockUserService{
		avatarFn: func(_ context.Context, id primitive.ObjectID) ([]byte, string, error) {
			if id == userID {
				return pngBlob, "image/png", nil
			}
			return nil, "", store.ErrAvatarNotFound
		},
	}
	router := newTestRouter(t, nil, users, nil)

	t.Run("existing avatar is public", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/users/"+userID.Hex()+"/avatar", "", false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, pngBlob, rec.Body.Bytes())
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/users/"+primitive.NewObjectID().Hex()+"/avatar", "", false)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/users/nope/avatar", "", false)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteAvatar(t *testing.T) {
	removed := false
	users := &mockUserService{
		deleteAvatarFn: func(_ context.Context, user models.User) error {
			removed = true
			return nil
		},
	}
	router := newTestRouter(t, nil, users, nil)

	rec := doRequest(router, http.MethodDelete, "/users/me/avatar", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, removed)
}
