package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altarajoyas/catalog-service/internal/apperrors"
	"github.com/altarajoyas/catalog-service/internal/media"
	"github.com/altarajoyas/catalog-service/internal/media/dto"
	"github.com/altarajoyas/catalog-service/internal/model"
	"github.com/altarajoyas/catalog-service/pkg/logger"
	pkgmedia "github.com/altarajoyas/catalog-service/pkg/media"
)

type fakeMediaRepo struct {
	variantExists bool
	existsErr     error
	maxSortErr    error
	insertErr     error

	images []model.ProductImage
}

func (f *fakeMediaRepo) VariantExists(context.Context, int64) (bool, error) {
	return f.variantExists, f.existsErr
}

func (f *fakeMediaRepo) MaxSortOrder(_ context.Context, productID int64) (int, error) {
	if f.maxSortErr != nil {
		return 0, f.maxSortErr
	}
	max := 0
	for _, img := range f.images {
		if img.ProductID == productID && img.SortOrder > max {
			max = img.SortOrder
		}
	}
	return max, nil
}

func (f *fakeMediaRepo) InsertImage(_ context.Context, img *model.ProductImage) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	img.ID = int64(len(f.images) + 1)
	f.images = append(f.images, *img)
	return nil
}

type fakeUploader struct {
	uploadErr error

	uploads   int
	destroyed []string
}

func (f *fakeUploader) Upload(_ context.Context, _ io.Reader, _ string) (*pkgmedia.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads++
	return &pkgmedia.UploadResult{
		PublicID:  "altara_products/abc123",
		SecureURL: "https://res.cloudinary.com/demo/image/upload/abc123.jpg",
	}, nil
}

func (f *fakeUploader) Destroy(_ context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

type fakeLocker struct {
	busy bool

	acquired []string
	released []string
}

func (f *fakeLocker) AcquireLock(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	if f.busy {
		return false, nil
	}
	f.acquired = append(f.acquired, key)
	return true, nil
}

func (f *fakeLocker) ReleaseLock(_ context.Context, key, _ string) error {
	f.released = append(f.released, key)
	return nil
}

func newMediaUC(repo media.Repository, up media.Uploader, locker media.Locker) media.UseCase {
	return NewMediaUseCase(repo, up, locker, nil, Config{Folder: "altara_products", MaxFileBytes: 10 << 20}, logger.NewNop())
}

func uploadInput() *dto.UploadImageInput {
	return &dto.UploadImageInput{
		ProductID: 7,
		FileName:  "ring.jpg",
		Size:      1024,
		File:      strings.NewReader("jpeg bytes"),
	}
}

func TestUploadImageAssignsSequentialSortOrder(t *testing.T) {
	repo := &fakeMediaRepo{variantExists: true}
	up := &fakeUploader{}
	uc := newMediaUC(repo, up, &fakeLocker{})

	first, err := uc.UploadImage(context.Background(), uploadInput())
	require.NoError(t, err)
	assert.Equal(t, 1, first.SortOrder)

	second, err := uc.UploadImage(context.Background(), uploadInput())
	require.NoError(t, err)
	assert.Equal(t, 2, second.SortOrder)

	assert.Equal(t, "altara_products/abc123", second.Cloudinary.PublicID)
	assert.Equal(t, 2, up.uploads)
	assert.Empty(t, up.destroyed)
}

func TestUploadImageDefaultsAltText(t *testing.T) {
	repo := &fakeMediaRepo{variantExists: true}
	uc := newMediaUC(repo, &fakeUploader{}, &fakeLocker{})

	res, err := uc.UploadImage(context.Background(), uploadInput())
	require.NoError(t, err)
	require.NotNil(t, res.AltText)
	assert.Equal(t, "Product 7 image", *res.AltText)

	in := uploadInput()
	in.AltText = "Anillo Luna dorado"
	res, err = uc.UploadImage(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Anillo Luna dorado", *res.AltText)
}

func TestUploadImageStoresURLInBothColumns(t *testing.T) {
	repo := &fakeMediaRepo{variantExists: true}
	uc := newMediaUC(repo, &fakeUploader{}, &fakeLocker{})

	res, err := uc.UploadImage(context.Background(), uploadInput())
	require.NoError(t, err)
	assert.Equal(t, res.URL, res.URLCloudinary)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/abc123.jpg", res.URL)
}

func TestUploadImageRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.UploadImageInput)
		msgID  string
	}{
		{"missing file", func(in *dto.UploadImageInput) { in.File = nil }, "error.file_missing"},
		{"missing product id", func(in *dto.UploadImageInput) { in.ProductID = 0 }, "error.product_id_missing"},
		{"oversize file", func(in *dto.UploadImageInput) { in.Size = 11 << 20 }, "error.file_too_large"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeMediaRepo{variantExists: true}
			up := &fakeUploader{}
			uc := newMediaUC(repo, up, &fakeLocker{})

			in := uploadInput()
			tc.mutate(in)
			_, err := uc.UploadImage(context.Background(), in)

			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			assert.Equal(t, tc.msgID, apperrors.MessageID(err))
			assert.Zero(t, up.uploads, "rejected input must not reach the media host")
			assert.Empty(t, repo.images, "rejected input must not reach the store")
		})
	}
}

func TestUploadImageUnknownVariant(t *testing.T) {
	repo := &fakeMediaRepo{variantExists: false}
	up := &fakeUploader{}
	uc := newMediaUC(repo, up, &fakeLocker{})

	_, err := uc.UploadImage(context.Background(), uploadInput())
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Zero(t, up.uploads)
}

func TestUploadImageMediaHostFailure(t *testing.T) {
	repo := &fakeMediaRepo{variantExists: true}
	up := &fakeUploader{uploadErr: errors.New("cloudinary 502")}
	uc := newMediaUC(repo, up, &fakeLocker{})

	_, err := uc.UploadImage(context.Background(), uploadInput())
	assert.Equal(t, apperrors.KindMediaUnavailable, apperrors.KindOf(err))
	assert.Empty(t, repo.images, "failed upload must leave the store untouched")
}

func TestUploadImageCompensatesOnInsertFailure(t *testing.T) {
	repo := &fakeMediaRepo{variantExists: true, insertErr: errors.New("deadlock detected")}
	up := &fakeUploader{}
	uc := newMediaUC(repo, up, &fakeLocker{})

	_, err := uc.UploadImage(context.Background(), uploadInput())
	assert.Equal(t, apperrors.KindStoreUnavailable, apperrors.KindOf(err))
	require.Len(t, up.destroyed, 1)
	assert.Equal(t, "altara_products/abc123", up.destroyed[0])
}

func TestUploadImageCompensatesOnSortOrderFailure(t *testing.T) {
	repo := &fakeMediaRepo{variantExists: true, maxSortErr: errors.New("timeout")}
	up := &fakeUploader{}
	uc := newMediaUC(repo, up, &fakeLocker{})

	_, err := uc.UploadImage(context.Background(), uploadInput())
	assert.Equal(t, apperrors.KindStoreUnavailable, apperrors.KindOf(err))
	require.Len(t, up.destroyed, 1)
}

func TestUploadImageLockHeldAndReleased(t *testing.T) {
	repo := &fakeMediaRepo{variantExists: true}
	locker := &fakeLocker{}
	uc := newMediaUC(repo, &fakeUploader{}, locker)

	_, err := uc.UploadImage(context.Background(), uploadInput())
	require.NoError(t, err)
	require.Len(t, locker.acquired, 1)
	assert.Equal(t, "lock:product_images:7", locker.acquired[0])
	assert.Equal(t, locker.acquired, locker.released)
}

func TestUploadImageLockBusy(t *testing.T) {
	repo := &fakeMediaRepo{variantExists: true}
	up := &fakeUploader{}
	uc := newMediaUC(repo, up, &fakeLocker{busy: true})

	_, err := uc.UploadImage(context.Background(), uploadInput())
	assert.Equal(t, apperrors.KindStoreUnavailable, apperrors.KindOf(err))
	require.Len(t, up.destroyed, 1, "busy lock must clean up the uploaded file")
	assert.Empty(t, repo.images)
}

func TestUploadImageNoLockerConfigured(t *testing.T) {
	repo := &fakeMediaRepo{variantExists: true}
	uc := newMediaUC(repo, &fakeUploader{}, nil)

	res, err := uc.UploadImage(context.Background(), uploadInput())
	require.NoError(t, err)
	assert.Equal(t, 1, res.SortOrder)
}
