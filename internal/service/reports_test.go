package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inspection-back/internal/errs"
	"inspection-back/internal/models"
	"inspection-back/internal/repository"
	"inspection-back/internal/schema"
	"inspection-back/internal/storage"
	"inspection-back/internal/testutil"
)

func reportPayload(t *testing.T, extra map[string]interface{}) []byte {
	t.Helper()
	body := map[string]interface{}{}
	for _, f := range schema.ReportSchema.Fields {
		body[f.Name] = "v-" + f.Name
	}
	for k, v := range extra {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return raw
}

type reportFixture struct {
	svc   *ReportService
	root  string
	alice *models.User
	bob   *models.User
}

func newReportFixture(t *testing.T, blobs storage.Store) *reportFixture {
	t.Helper()
	db := testutil.NewDB(t)
	root := t.TempDir()
	if blobs == nil {
		local, err := storage.NewLocal(root, "/media")
		require.NoError(t, err)
		blobs = local
	}
	return &reportFixture{
		svc:   NewReportService(repository.NewReportRepo(db), blobs, 1<<20, zap.NewNop()),
		root:  root,
		alice: testutil.CreateUser(t, db, "alice@example.com"),
		bob:   testutil.CreateUser(t, db, "bob@example.com"),
	}
}

func names(r *models.Report) []string {
	out := []string{}
	for _, j := range r.Jobs {
		out = append(out, j.Name)
	}
	return out
}

func TestReportService_CreateWithJobs(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.alice.ID, reportPayload(t, map[string]interface{}{
		"jobs": []map[string]string{{"name": "Thai"}, {"name": "Dinner"}},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Thai", "Dinner"}, names(r))
	assert.Equal(t, "v-hub", r.Hub)
	for _, j := range r.Jobs {
		assert.Equal(t, f.alice.ID, j.UserID)
	}
}

func TestReportService_CreateRequiresEveryField(t *testing.T) {
	f := newReportFixture(t, nil)
	_, err := f.svc.Create(context.Background(), f.alice.ID, []byte(`{"hub":"x"}`))
	require.ErrorIs(t, err, errs.ErrValidation)

	list, err := f.svc.List(context.Background(), f.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReportService_UpdateJobs(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.alice.ID, reportPayload(t, map[string]interface{}{
		"jobs": []map[string]string{{"name": "Breakfast"}},
	}))
	require.NoError(t, err)

	r, err = f.svc.Update(ctx, f.alice.ID, r.ID, []byte(`{"hub":"H2"}`), true)
	require.NoError(t, err)
	assert.Equal(t, "H2", r.Hub)
	assert.Equal(t, []string{"Breakfast"}, names(r), "absent jobs key leaves the set untouched")

	r, err = f.svc.Update(ctx, f.alice.ID, r.ID, []byte(`{"jobs":[{"name":"Lunch"}]}`), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lunch"}, names(r))

	r, err = f.svc.Update(ctx, f.alice.ID, r.ID, reportPayload(t, map[string]interface{}{"jobs": []interface{}{}}), false)
	require.NoError(t, err)
	assert.Empty(t, r.Jobs)
	assert.Equal(t, "v-hub", r.Hub)
}

func TestReportService_UpdateForeignReport(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.alice.ID, reportPayload(t, nil))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.bob.ID, r.ID, []byte(`{"hub":"stolen"}`), true)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.ErrorIs(t, f.svc.Delete(ctx, f.bob.ID, r.ID), errs.ErrNotFound)

	got, err := f.svc.Get(ctx, f.alice.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "v-hub", got.Hub)
}

func TestReportService_UploadImage(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.alice.ID, reportPayload(t, nil))
	require.NoError(t, err)

	t.Run("not an image", func(t *testing.T) {
		_, err := f.svc.UploadImage(ctx, f.alice.ID, r.ID, strings.NewReader("plain text"))
		require.ErrorIs(t, err, errs.ErrValidation)
		var verr *schema.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "image")
	})

	t.Run("foreign report", func(t *testing.T) {
		_, err := f.svc.UploadImage(ctx, f.bob.ID, r.ID, bytes.NewReader(pngBytes(t)))
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	var first string
	t.Run("png", func(t *testing.T) {
		got, err := f.svc.UploadImage(ctx, f.alice.ID, r.ID, bytes.NewReader(pngBytes(t)))
		require.NoError(t, err)
		require.NotEmpty(t, got.Image)
		assert.True(t, strings.HasPrefix(got.Image, "users/"+itoa(f.alice.ID)+"/reports/"))
		assert.FileExists(t, filepath.Join(f.root, got.Image))
		first = got.Image

		url, err := f.svc.ImageURL(ctx, got)
		require.NoError(t, err)
		require.NotNil(t, url)
		assert.Equal(t, "/media/"+got.Image, *url)

		rc, contentType, err := f.svc.OpenImage(ctx, f.alice.ID, r.ID)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, pngBytes(t), data)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("replace removes previous blob", func(t *testing.T) {
		got, err := f.svc.UploadImage(ctx, f.alice.ID, r.ID, bytes.NewReader(pngBytes(t)))
		require.NoError(t, err)
		assert.NotEqual(t, first, got.Image)
		assert.NoFileExists(t, filepath.Join(f.root, first))
		assert.FileExists(t, filepath.Join(f.root, got.Image))
	})

	t.Run("delete removes blob", func(t *testing.T) {
		got, err := f.svc.Get(ctx, f.alice.ID, r.ID)
		require.NoError(t, err)
		require.NoError(t, f.svc.Delete(ctx, f.alice.ID, r.ID))
		assert.NoFileExists(t, filepath.Join(f.root, got.Image))
	})
}

func TestReportService_ImageAbsent(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.alice.ID, reportPayload(t, nil))
	require.NoError(t, err)

	url, err := f.svc.ImageURL(ctx, r)
	require.NoError(t, err)
	assert.Nil(t, url)

	_, _, err = f.svc.OpenImage(ctx, f.alice.ID, r.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

type failingStore struct {
	storage.Store
	putErr error
}

func (s failingStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	return s.Store.Put(ctx, key, r, size, contentType)
}

func TestReportService_UploadStoreFailure(t *testing.T) {
	local, err := storage.NewLocal(t.TempDir(), "/media")
	require.NoError(t, err)
	boom := errors.New("bucket gone")
	f := newReportFixture(t, failingStore{Store: local, putErr: boom})
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.alice.ID, reportPayload(t, nil))
	require.NoError(t, err)

	_, err = f.svc.UploadImage(ctx, f.alice.ID, r.ID, bytes.NewReader(pngBytes(t)))
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, errs.ErrValidation)

	got, err := f.svc.Get(ctx, f.alice.ID, r.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Image)

	entries, err := os.ReadDir(local.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type hookStore struct {
	storage.Store
	beforePut func()
}

func (s *hookStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if s.beforePut != nil {
		s.beforePut()
	}
	return s.Store.Put(ctx, key, r, size, contentType)
}

func TestReportService_UploadRacingDelete(t *testing.T) {
	local, err := storage.NewLocal(t.TempDir(), "/media")
	require.NoError(t, err)
	hook := &hookStore{Store: local}
	f := newReportFixture(t, hook)
	ctx := context.Background()

	r, err := f.svc.Create(ctx, f.alice.ID, reportPayload(t, nil))
	require.NoError(t, err)
	hook.beforePut = func() {
		_, err := f.svc.reports.Delete(ctx, f.alice.ID, r.ID)
		require.NoError(t, err)
	}

	_, err = f.svc.UploadImage(ctx, f.alice.ID, r.ID, bytes.NewReader(pngBytes(t)))
	require.ErrorIs(t, err, errs.ErrNotFound)

	var files []string
	require.NoError(t, filepath.Walk(local.Root(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	}))
	assert.Empty(t, files)
}
