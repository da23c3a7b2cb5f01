package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"treinoapp/fitness-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedUser(t *testing.T, repo *fakeUserRepo) primitive.ObjectID {
	t.Helper()
	user := &domain.UserProfile{Name: "Maria", Email: "maria@example.com"}
	id, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	return id
}

func TestGetProfile(t *testing.T) {
	repo := newFakeUserRepo()
	id := seedUser(t, repo)
	svc := NewProfileService(repo, newFakeFileStorage())

	profile, err := svc.GetProfile(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", profile.Email)
	assert.Empty(t, profile.PasswordHash)

	_, err = svc.GetProfile(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUploadPhoto(t *testing.T) {
	repo := newFakeUserRepo()
	id := seedUser(t, repo)
	store := newFakeFileStorage()
	svc := NewProfileService(repo, store)

	url, err := svc.UploadPhoto(context.Background(), id.Hex(), []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://blobs.example.com/profiles/"+id.Hex()+"/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))
	assert.Equal(t, url, repo.lastPhotoURL)

	profile, err := svc.GetProfile(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, url, profile.PhotoURL)

	require.Len(t, store.uploads, 1)
	assert.Empty(t, store.deleted)
}

func TestUploadPhotoPNGExtension(t *testing.T) {
	repo := newFakeUserRepo()
	id := seedUser(t, repo)
	svc := NewProfileService(repo, newFakeFileStorage())

	url, err := svc.UploadPhoto(context.Background(), id.Hex(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"))
}

func TestUploadPhotoValidation(t *testing.T) {
	repo := newFakeUserRepo()
	id := seedUser(t, repo)
	store := newFakeFileStorage()
	svc := NewProfileService(repo, store)

	_, err := svc.UploadPhoto(context.Background(), id.Hex(), nil, "image/jpeg")
	assert.ErrorIs(t, err, ErrEmptyPhoto)

	_, err = svc.UploadPhoto(context.Background(), id.Hex(), make([]byte, MaxPhotoSize+1), "image/jpeg")
	assert.ErrorIs(t, err, ErrPhotoTooLarge)

	_, err = svc.UploadPhoto(context.Background(), id.Hex(), []byte("gif"), "image/gif")
	assert.ErrorIs(t, err, ErrUnsupportedPhoto)

	// Nothing reached the blob store.
	assert.Empty(t, store.uploads)
}

func TestUploadPhotoMergeFailureDeletesBlob(t *testing.T) {
	repo := newFakeUserRepo()
	id := seedUser(t, repo)
	repo.photoErr = errors.New("merge unavailable")
	store := newFakeFileStorage()
	svc := NewProfileService(repo, store)

	_, err := svc.UploadPhoto(context.Background(), id.Hex(), []byte("jpeg-bytes"), "image/jpeg")
	require.Error(t, err)

	// The orphaned blob must have been cleaned up.
	require.Len(t, store.deleted, 1)
	assert.True(t, strings.HasPrefix(store.deleted[0], "profiles/"+id.Hex()+"/"))
	assert.Empty(t, store.uploads)

	profile, err := svc.GetProfile(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Empty(t, profile.PhotoURL)
}

func TestUploadPhotoURLFailureDeletesBlob(t *testing.T) {
	repo := newFakeUserRepo()
	id := seedUser(t, repo)
	store := newFakeFileStorage()
	store.urlErr = errors.New("presign unavailable")
	svc := NewProfileService(repo, store)

	_, err := svc.UploadPhoto(context.Background(), id.Hex(), []byte("jpeg-bytes"), "image/jpeg")
	require.Error(t, err)
	assert.Len(t, store.deleted, 1)
}

func TestUploadPhotoStorageFailure(t *testing.T) {
	repo := newFakeUserRepo()
	id := seedUser(t, repo)
	store := newFakeFileStorage()
	store.uploadErr = errors.New("bucket unavailable")
	svc := NewProfileService(repo, store)

	_, err := svc.UploadPhoto(context.Background(), id.Hex(), []byte("jpeg-bytes"), "image/jpeg")
	require.Error(t, err)
	assert.Empty(t, store.deleted)
	assert.Empty(t, repo.lastPhotoURL)
}
