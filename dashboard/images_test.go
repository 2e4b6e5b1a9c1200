package dashboard

import (
	"context"
	"fmt"
	"io"
	"testing"

	"fitpickd/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageAPI struct {
	uploads  []string
	replaced []models.ProductImage
}

func (f *fakeImageAPI) UploadImage(ctx context.Context, filename string, r io.Reader) (models.ProductImage, error) {
	f.uploads = append(f.uploads, filename)
	return models.ProductImage{
		URL:     "https://img.example/" + filename,
		AssetID: "asset-" + filename,
	}, nil
}

func (f *fakeImageAPI) ReplaceImages(ctx context.Context, id string, images []models.ProductImage) (models.Product, error) {
	f.replaced = append([]models.ProductImage{}, images...)
	return models.Product{ID: id, Images: images}, nil
}

func TestImageEditorSaveUploadsSequentiallyWithProgress(t *testing.T) {
	api := &fakeImageAPI{}
	editor := NewImageEditor("p1", []models.ProductImage{{URL: "u0", AssetID: "a0"}})

	editor.StageFile("one.jpg", []byte("1"))
	editor.StageFile("two.jpg", []byte("2"))

	var progress []string
	p, err := editor.Save(context.Background(), api, func(done, total int) {
		progress = append(progress, fmt.Sprintf("%d/%d", done, total))
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"one.jpg", "two.jpg"}, api.uploads, "uploads run in staged order")
	assert.Equal(t, []string{"1/2", "2/2"}, progress)

	require.Len(t, api.replaced, 3)
	assert.Equal(t, "a0", api.replaced[0].AssetID, "existing images come first")
	assert.Equal(t, "asset-one.jpg", api.replaced[1].AssetID)

	assert.Equal(t, "p1", p.ID)
	assert.Empty(t, editor.Pending, "pending cleared after save")
}

func TestImageEditorSaveCapsAtLimit(t *testing.T) {
	api := &fakeImageAPI{}

	existing := []models.ProductImage{}
	for i := 0; i < 5; i++ {
		existing = append(existing, models.ProductImage{AssetID: fmt.Sprintf("a%d", i)})
	}
	editor := NewImageEditor("p1", existing)
	editor.StageFile("six.jpg", nil)
	editor.StageFile("seven.jpg", nil)

	_, err := editor.Save(context.Background(), api, nil)
	require.NoError(t, err)

	assert.Len(t, api.replaced, models.MaxProductImages, "merged list capped at six")
	assert.Equal(t, "asset-six.jpg", api.replaced[5].AssetID, "first six of merged order kept")
}

func TestImageEditorRemoveExisting(t *testing.T) {
	editor := NewImageEditor("p1", []models.ProductImage{
		{AssetID: "a"}, {AssetID: "b"}, {AssetID: "c"},
	})

	editor.RemoveExisting("b")
	assert.Equal(t, []models.ProductImage{{AssetID: "a"}, {AssetID: "c"}}, editor.Existing)

	editor.RemoveExisting("missing")
	assert.Len(t, editor.Existing, 2)
}

func TestImageEditorRemoveExistingLeavesCallerSliceAlone(t *testing.T) {
	live := []models.ProductImage{
		{AssetID: "a"}, {AssetID: "b"}, {AssetID: "c"},
	}
	editor := NewImageEditor("p1", live)

	editor.RemoveExisting("a")

	assert.Equal(t, []models.ProductImage{
		{AssetID: "a"}, {AssetID: "b"}, {AssetID: "c"},
	}, live, "the product's own image slice must not be rewritten")
	assert.Equal(t, []models.ProductImage{{AssetID: "b"}, {AssetID: "c"}}, editor.Existing)
}

func TestImageEditorRemovePending(t *testing.T) {
	editor := NewImageEditor("p1", nil)
	editor.StageFile("one.jpg", nil)
	editor.StageFile("two.jpg", nil)

	editor.RemovePending(0)
	require.Len(t, editor.Pending, 1)
	assert.Equal(t, "two.jpg", editor.Pending[0].Filename)

	editor.RemovePending(7)
	assert.Len(t, editor.Pending, 1)

	assert.Equal(t, 1, editor.Count())
}
