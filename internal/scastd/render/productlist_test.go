package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
	"github.com/slidecast/slidecast/internal/scastd/pager"
	"github.com/slidecast/slidecast/internal/scastd/playlist"
)

func productSlide(n int, c v1alpha1.Customization) *playlist.ProductListSlide {
	slide := &playlist.ProductListSlide{Title: "Menu", Customization: c, PageSeconds: 10}
	for i := 0; i < n; i++ {
		slide.Products = append(slide.Products, v1alpha1.Product{
			ID:    int64(i + 1),
			Name:  "Item",
			Price: "5.00",
			Media: []v1alpha1.MediaItem{{OriginalURL: "https://cdn.example.com/p.png"}},
		})
	}
	return slide
}

func TestForPagination(t *testing.T) {
	tests := []struct {
		pagination   int
		wantCols     int
		wantRows     int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{3, 1, 3},
		{4, 2, 2},
		{5, 1, 5},
		{10, 2, 5},
		// Unrecognized counts fall back to the hero layout.
		{7, 1, 1},
		{0, 1, 1},
	}

	for _, tt := range tests {
		slide := productSlide(12, v1alpha1.Customization{})
		pg := pager.New(slide.Products, tt.pagination, 10)
		frame := ForPagination(tt.pagination).RenderPage(slide, pg, 0, 0, 1)

		require.NotNil(t, frame.Products, "pagination %d", tt.pagination)
		assert.Equal(t, v1alpha1.FrameKindProducts, frame.Kind)
		assert.Equal(t, tt.wantCols, frame.Products.Columns, "pagination %d", tt.pagination)
		assert.Equal(t, tt.wantRows, frame.Products.Rows, "pagination %d", tt.pagination)
	}
}

func TestRenderPagePadsFinalPage(t *testing.T) {
	slide := productSlide(7, v1alpha1.Customization{})
	pg := pager.New(slide.Products, 3, 10)

	frame := ForPagination(3).RenderPage(slide, pg, 2, 0, 4)
	require.NotNil(t, frame.Products)
	assert.Equal(t, uint64(4), frame.Generation)
	assert.Equal(t, 3, frame.Products.TotalPages)
	require.Len(t, frame.Products.Cells, 3)
	assert.False(t, frame.Products.Cells[0].Empty)
	assert.True(t, frame.Products.Cells[1].Empty)
	assert.True(t, frame.Products.Cells[2].Empty)
}

func TestDenseLayoutOmitsDescription(t *testing.T) {
	slide := productSlide(10, v1alpha1.Customization{})
	for i := range slide.Products {
		slide.Products[i].Description = "long blurb"
	}
	pg := pager.New(slide.Products, 10, 10)

	frame := ForPagination(10).RenderPage(slide, pg, 0, 0, 1)
	for _, cell := range frame.Products.Cells {
		assert.Empty(t, cell.Description)
	}

	hero := ForPagination(1).RenderPage(slide, pager.New(slide.Products, 1, 10), 0, 0, 1)
	assert.Equal(t, "long blurb", hero.Products.Cells[0].Description)
}

func TestResolveStyleDefaults(t *testing.T) {
	style := resolveStyle(v1alpha1.Customization{})
	assert.Equal(t, v1alpha1.BackgroundBox, style.BackgroundType)
	assert.Equal(t, defaultPrimaryColor, style.PrimaryColor)
	assert.Equal(t, defaultPriceColor, style.PriceTextColor)
	assert.Equal(t, defaultFontFamily, style.FontFamily)
}

func TestResolveStyleFade(t *testing.T) {
	style := resolveStyle(v1alpha1.Customization{
		BackgroundType: v1alpha1.BackgroundFade,
		PrimaryColor:   "#112233",
		SecondaryColor: "#445566",
	})
	assert.Equal(t, v1alpha1.BackgroundFade, style.BackgroundType)
	assert.Equal(t, "#112233", style.PrimaryColor)
	assert.Equal(t, "#445566", style.SecondaryColor)
}

func TestResolveStyleImageFallsBackWithoutMedia(t *testing.T) {
	style := resolveStyle(v1alpha1.Customization{BackgroundType: v1alpha1.BackgroundImage})
	assert.Equal(t, v1alpha1.BackgroundBox, style.BackgroundType)

	withMedia := resolveStyle(v1alpha1.Customization{
		BackgroundType: v1alpha1.BackgroundImage,
		Media:          []v1alpha1.MediaItem{{OriginalURL: "https://cdn.example.com/bg.png"}},
	})
	assert.Equal(t, v1alpha1.BackgroundImage, withMedia.BackgroundType)
	assert.Equal(t, "https://cdn.example.com/bg.png", withMedia.BackgroundImageURL)
}

func TestRotationCarriedIntoStyle(t *testing.T) {
	slide := productSlide(2, v1alpha1.Customization{})
	pg := pager.New(slide.Products, 2, 10)
	frame := ForPagination(2).RenderPage(slide, pg, 0, -90, 1)
	assert.Equal(t, -90, frame.Products.Style.RotationDegrees)
}
