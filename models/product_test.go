package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateImages(t *testing.T) {
	var images []ProductImage
	for i := 0; i < 9; i++ {
		images = append(images, ProductImage{
			URL:     fmt.Sprintf("https://img.example/%d", i),
			AssetID: fmt.Sprintf("asset-%d", i),
		})
	}

	truncated := TruncateImages(images)
	require.Len(t, truncated, MaxProductImages)
	for i := 0; i < MaxProductImages; i++ {
		assert.Equal(t, images[i], truncated[i], "order of the first six must be preserved")
	}

	short := images[:3]
	assert.Equal(t, short, TruncateImages(short))
	assert.Nil(t, TruncateImages(nil))
}

func TestRemovedAssetIDs(t *testing.T) {
	old := []ProductImage{
		{URL: "u1", AssetID: "a"},
		{URL: "u2", AssetID: "b"},
		{URL: "u3", AssetID: "c"},
	}
	replacement := []ProductImage{
		{URL: "u2", AssetID: "b"},
		{URL: "u4", AssetID: "d"},
	}

	removed := RemovedAssetIDs(old, replacement)
	assert.Equal(t, []string{"a", "c"}, removed)
}

func TestRemovedAssetIDsKeptIDsNeverReturned(t *testing.T) {
	old := []ProductImage{{AssetID: "a"}, {AssetID: "b"}}
	same := []ProductImage{{AssetID: "b"}, {AssetID: "a"}}

	assert.Empty(t, RemovedAssetIDs(old, same))
}

func TestRemovedAssetIDsSkipsEmptyAndDuplicates(t *testing.T) {
	old := []ProductImage{
		{AssetID: ""},
		{AssetID: "a"},
		{AssetID: "a"},
	}

	removed := RemovedAssetIDs(old, nil)
	assert.Equal(t, []string{"a"}, removed, "each removed id must appear exactly once")
}

func TestAssetIDs(t *testing.T) {
	images := []ProductImage{
		{AssetID: "a"},
		{AssetID: ""},
		{AssetID: "b"},
	}
	assert.Equal(t, []string{"a", "b"}, AssetIDs(images))
	assert.Nil(t, AssetIDs(nil))
}
