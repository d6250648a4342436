package remote_test

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lcftrans/core/storage/mocks"
	"lcftrans/feature/remote"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func md5Of(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

func remoteListing(objects ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		ch <- obj
	}
	close(ch)
	return ch
}

func TestPlanPush(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyRemote", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "RPG_RT.ldb.po", "terms")
		writeFile(t, dir, "Map0001.po", "map")
		writeFile(t, dir, "notes.txt", "ignored")

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "translations", mock.Anything).Return(remoteListing())

		svc := remote.NewService(client, "translations", "units", dir, zap.NewNop())
		plan, err := svc.PlanPush(ctx, remote.Options{})
		require.NoError(t, err)

		require.Len(t, plan.Actions, 2)
		assert.Equal(t, remote.ActionUpload, plan.Actions[0].Type)
		assert.Equal(t, "Map0001.po", plan.Actions[0].Unit)
		assert.Equal(t, "missing remotely", plan.Actions[0].Reason)
		assert.Equal(t, "RPG_RT.ldb.po", plan.Actions[1].Unit)
	})

	t.Run("UpToDate", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Map0001.po", "map")

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "translations", mock.Anything).Return(remoteListing(
			minio.ObjectInfo{Key: "units/Map0001.po", Size: 3, ETag: md5Of("map")},
		))

		svc := remote.NewService(client, "translations", "units", dir, zap.NewNop())
		plan, err := svc.PlanPush(ctx, remote.Options{})
		require.NoError(t, err)
		assert.True(t, plan.IsEmpty())
	})

	t.Run("ContentDiffers", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Map0001.po", "aaa")

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "translations", mock.Anything).Return(remoteListing(
			minio.ObjectInfo{Key: "units/Map0001.po", Size: 3, ETag: md5Of("bbb")},
		))

		svc := remote.NewService(client, "translations", "units", dir, zap.NewNop())
		plan, err := svc.PlanPush(ctx, remote.Options{})
		require.NoError(t, err)

		require.Len(t, plan.Actions, 1)
		assert.Equal(t, "content differs", plan.Actions[0].Reason)
	})

	t.Run("MultipartETagCountsAsUnchanged", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Map0001.po", "aaa")

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "translations", mock.Anything).Return(remoteListing(
			minio.ObjectInfo{Key: "units/Map0001.po", Size: 3, ETag: `"abc-2"`},
		))

		svc := remote.NewService(client, "translations", "units", dir, zap.NewNop())
		plan, err := svc.PlanPush(ctx, remote.Options{})
		require.NoError(t, err)
		assert.True(t, plan.IsEmpty())
	})

	t.Run("DeleteRequested", func(t *testing.T) {
		dir := t.TempDir()

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "translations", mock.Anything).Return(remoteListing(
			minio.ObjectInfo{Key: "units/Old.po", Size: 3},
		))

		svc := remote.NewService(client, "translations", "units", dir, zap.NewNop())
		plan, err := svc.PlanPush(ctx, remote.Options{Delete: true})
		require.NoError(t, err)

		require.Len(t, plan.Actions, 1)
		assert.Equal(t, remote.ActionDeleteRemote, plan.Actions[0].Type)
		assert.Equal(t, "Old.po", plan.Actions[0].Unit)
	})

	t.Run("NoDeleteByDefault", func(t *testing.T) {
		dir := t.TempDir()

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "translations", mock.Anything).Return(remoteListing(
			minio.ObjectInfo{Key: "units/Old.po", Size: 3},
		))

		svc := remote.NewService(client, "translations", "units", dir, zap.NewNop())
		plan, err := svc.PlanPush(ctx, remote.Options{})
		require.NoError(t, err)
		assert.True(t, plan.IsEmpty())
	})
}

func TestPlanPull(t *testing.T) {
	ctx := context.Background()

	t.Run("DownloadsMissing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "translations", mock.Anything).Return(remoteListing(
			minio.ObjectInfo{Key: "units/Map0001.po", Size: 3},
		))

		// The local directory does not exist yet, that counts as empty.
		dir := filepath.Join(t.TempDir(), "fresh")
		svc := remote.NewService(client, "translations", "units", dir, zap.NewNop())
		plan, err := svc.PlanPull(ctx, remote.Options{})
		require.NoError(t, err)

		require.Len(t, plan.Actions, 1)
		assert.Equal(t, remote.ActionDownload, plan.Actions[0].Type)
		assert.Equal(t, "Map0001.po", plan.Actions[0].Unit)
	})

	t.Run("DeleteLocal", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Gone.po", "x")

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "translations", mock.Anything).Return(remoteListing())

		svc := remote.NewService(client, "translations", "units", dir, zap.NewNop())
		plan, err := svc.PlanPull(ctx, remote.Options{Delete: true})
		require.NoError(t, err)

		require.Len(t, plan.Actions, 1)
		assert.Equal(t, remote.ActionDeleteLocal, plan.Actions[0].Type)
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("Upload", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Map0001.po", "hello")

		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, "translations", "units/Map0001.po", mock.Anything, int64(5), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		svc := remote.NewService(client, "translations", "units", dir, zap.NewNop())
		res, err := svc.Apply(ctx, &remote.Plan{Actions: []remote.Action{
			{Type: remote.ActionUpload, Unit: "Map0001.po"},
		}})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Uploaded)
		client.AssertExpectations(t)
	})

	t.Run("Download", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "fresh")

		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "translations", "units/Map0002.po", mock.Anything).
			Return(io.NopCloser(strings.NewReader("content")), nil)

		svc := remote.NewService(client, "translations", "units", dir, zap.NewNop())
		res, err := svc.Apply(ctx, &remote.Plan{Actions: []remote.Action{
			{Type: remote.ActionDownload, Unit: "Map0002.po"},
		}})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Downloaded)

		data, err := os.ReadFile(filepath.Join(dir, "Map0002.po"))
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
	})

	t.Run("DeleteRemoteBatch", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("RemoveObjects", mock.Anything, "translations", mock.Anything, mock.Anything).Return(nil)

		svc := remote.NewService(client, "translations", "units", t.TempDir(), zap.NewNop())
		res, err := svc.Apply(ctx, &remote.Plan{Actions: []remote.Action{
			{Type: remote.ActionDeleteRemote, Unit: "Old.po"},
			{Type: remote.ActionDeleteRemote, Unit: "Older.po"},
		}})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Deleted)
		client.AssertExpectations(t)
	})

	t.Run("DeleteRemotePartialFailure", func(t *testing.T) {
		errCh := make(chan minio.RemoveObjectError, 1)
		errCh <- minio.RemoveObjectError{ObjectName: "units/Old.po", Err: errors.New("denied")}
		close(errCh)

		client := new(mocks.Client)
		client.On("RemoveObjects", mock.Anything, "translations", mock.Anything, mock.Anything).
			Return((<-chan minio.RemoveObjectError)(errCh))

		svc := remote.NewService(client, "translations", "units", t.TempDir(), zap.NewNop())
		res, err := svc.Apply(ctx, &remote.Plan{Actions: []remote.Action{
			{Type: remote.ActionDeleteRemote, Unit: "Old.po"},
			{Type: remote.ActionDeleteRemote, Unit: "Older.po"},
		}})
		assert.Error(t, err)
		assert.Equal(t, 1, res.Deleted)
	})

	t.Run("DeleteLocal", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Gone.po", "x")

		client := new(mocks.Client)
		svc := remote.NewService(client, "translations", "units", dir, zap.NewNop())
		res, err := svc.Apply(ctx, &remote.Plan{Actions: []remote.Action{
			{Type: remote.ActionDeleteLocal, Unit: "Gone.po"},
		}})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Deleted)
		assert.NoFileExists(t, filepath.Join(dir, "Gone.po"))
	})
}

func TestBuckets(t *testing.T) {
	ctx := context.Background()

	t.Run("EnsureCreatesMissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "translations").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "translations", mock.Anything).Return(nil)

		svc := remote.NewService(client, "translations", "units", t.TempDir(), zap.NewNop())
		require.NoError(t, svc.EnsureBucket(ctx))
		client.AssertExpectations(t)
	})

	t.Run("EnsureKeepsExistingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "translations").Return(true, nil)

		svc := remote.NewService(client, "translations", "units", t.TempDir(), zap.NewNop())
		require.NoError(t, svc.EnsureBucket(ctx))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RequireFailsOnMissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "translations").Return(false, nil)

		svc := remote.NewService(client, "translations", "units", t.TempDir(), zap.NewNop())
		assert.Error(t, svc.RequireBucket(ctx))
	})
}
