package render

import (
	"github.com/slidecast/slidecast/api/types/v1alpha1"
	"github.com/slidecast/slidecast/internal/scastd/pager"
	"github.com/slidecast/slidecast/internal/scastd/playlist"
)

// ProductListRenderer lays out one page of a product list. Variants are
// pure and stateless: slots in, frame out.
type ProductListRenderer interface {
	// RenderPage builds the frame for the given page of the slide
	RenderPage(slide *playlist.ProductListSlide, pg *pager.Pager, page int, rotationDegrees int, generation uint64) *v1alpha1.Frame
}

// variants maps the configured pagination count to its layout variant.
// Unrecognized values fall back to the single-product hero layout.
var variants = map[int]ProductListRenderer{
	1:  oneUp{},
	2:  twoUp{},
	3:  threeUp{},
	4:  fourUp{},
	5:  fiveUp{},
	10: tenUp{},
}

// ForPagination returns the layout variant for a pagination count.
func ForPagination(pagination int) ProductListRenderer {
	if v, ok := variants[pagination]; ok {
		return v
	}
	return oneUp{}
}

// oneUp shows a single product filling the screen, with its description.
type oneUp struct{}

func (oneUp) RenderPage(slide *playlist.ProductListSlide, pg *pager.Pager, page, rotationDegrees int, generation uint64) *v1alpha1.Frame {
	return gridFrame(slide, pg, page, 1, 1, true, rotationDegrees, generation)
}

// twoUp shows two products side by side.
type twoUp struct{}

func (twoUp) RenderPage(slide *playlist.ProductListSlide, pg *pager.Pager, page, rotationDegrees int, generation uint64) *v1alpha1.Frame {
	return gridFrame(slide, pg, page, 2, 1, true, rotationDegrees, generation)
}

// threeUp shows three products in a vertical list with images on the left.
type threeUp struct{}

func (threeUp) RenderPage(slide *playlist.ProductListSlide, pg *pager.Pager, page, rotationDegrees int, generation uint64) *v1alpha1.Frame {
	return gridFrame(slide, pg, page, 1, 3, true, rotationDegrees, generation)
}

// fourUp shows a two-by-two product grid.
type fourUp struct{}

func (fourUp) RenderPage(slide *playlist.ProductListSlide, pg *pager.Pager, page, rotationDegrees int, generation uint64) *v1alpha1.Frame {
	return gridFrame(slide, pg, page, 2, 2, false, rotationDegrees, generation)
}

// fiveUp shows five products in a compact vertical list.
type fiveUp struct{}

func (fiveUp) RenderPage(slide *playlist.ProductListSlide, pg *pager.Pager, page, rotationDegrees int, generation uint64) *v1alpha1.Frame {
	return gridFrame(slide, pg, page, 1, 5, false, rotationDegrees, generation)
}

// tenUp shows a dense two-column menu board without descriptions.
type tenUp struct{}

func (tenUp) RenderPage(slide *playlist.ProductListSlide, pg *pager.Pager, page, rotationDegrees int, generation uint64) *v1alpha1.Frame {
	return gridFrame(slide, pg, page, 2, 5, false, rotationDegrees, generation)
}

// gridFrame builds a product page frame for a columns x rows grid.
// withDescription controls whether product descriptions are carried into
// the cells; dense layouts omit them.
func gridFrame(slide *playlist.ProductListSlide, pg *pager.Pager, page, columns, rows int, withDescription bool, rotationDegrees int, generation uint64) *v1alpha1.Frame {
	slots := pg.Page(page)
	cells := make([]v1alpha1.ProductCell, 0, len(slots))
	for _, slot := range slots {
		if slot.Empty {
			cells = append(cells, v1alpha1.ProductCell{Empty: true})
			continue
		}
		cell := v1alpha1.ProductCell{
			Name:       slot.Product.Name,
			Price:      slot.Product.Price,
			OfferPrice: slot.Product.OfferPrice,
		}
		if withDescription {
			cell.Description = slot.Product.Description
		}
		if len(slot.Product.Media) > 0 {
			cell.ImageURL = slot.Product.Media[0].OriginalURL
		}
		cells = append(cells, cell)
	}

	style := resolveStyle(slide.Customization)
	style.RotationDegrees = rotationDegrees

	return &v1alpha1.Frame{
		Kind:       v1alpha1.FrameKindProducts,
		Generation: generation,
		Products: &v1alpha1.ProductFrame{
			Title:      slide.Title,
			Page:       page,
			TotalPages: pg.TotalPages(),
			Columns:    columns,
			Rows:       rows,
			Cells:      cells,
			Style:      style,
		},
	}
}

// Presentation fallbacks matching the remote panel's defaults.
const (
	defaultPrimaryColor     = "#e3edf7"
	defaultPriceColor       = "#0162E8"
	defaultTitleBoxColor    = "#0162E8"
	defaultListTextColor    = "#000"
	defaultProductBoxColor  = "#fff"
	defaultProductTextColor = "#000"
	defaultAccentColor      = "#47c7be"
	defaultSecondaryColor   = "#000000"
	defaultFontFamily       = "System"
)

// resolveStyle applies the customization bag over the default palette.
func resolveStyle(c v1alpha1.Customization) v1alpha1.PageStyle {
	style := v1alpha1.PageStyle{
		BackgroundType:   v1alpha1.BackgroundBox,
		PrimaryColor:     defaultPrimaryColor,
		FontFamily:       defaultFontFamily,
		TitleBoxColor:    defaultTitleBoxColor,
		TitleTextColor:   defaultListTextColor,
		ProductTextColor: defaultProductTextColor,
		ProductBoxColor:  defaultProductBoxColor,
		PriceTextColor:   defaultPriceColor,
		AccentColor:      defaultAccentColor,
	}

	if c.BackgroundType != "" {
		style.BackgroundType = c.BackgroundType
	}
	if c.PrimaryColor != "" {
		style.PrimaryColor = c.PrimaryColor
	}
	if c.FontFamily != "" {
		style.FontFamily = c.FontFamily
	}
	if c.ListTextBoxColor != "" {
		style.TitleBoxColor = c.ListTextBoxColor
	}
	if c.ListTextColor != "" {
		style.TitleTextColor = c.ListTextColor
	}
	if c.ProductTextColor != "" {
		style.ProductTextColor = c.ProductTextColor
	}
	if c.ProductTextBoxColor != "" {
		style.ProductBoxColor = c.ProductTextBoxColor
	}
	if c.PriceTextColor != "" {
		style.PriceTextColor = c.PriceTextColor
	}
	if c.OtherTexts != "" {
		style.AccentColor = c.OtherTexts
	}

	switch style.BackgroundType {
	case v1alpha1.BackgroundFade:
		style.SecondaryColor = defaultSecondaryColor
		if c.SecondaryColor != "" {
			style.SecondaryColor = c.SecondaryColor
		}
	case v1alpha1.BackgroundImage:
		if len(c.Media) > 0 {
			style.BackgroundImageURL = c.Media[0].OriginalURL
		}
		if style.BackgroundImageURL == "" {
			// No usable background image; fall back to a solid box.
			style.BackgroundType = v1alpha1.BackgroundBox
		}
	}

	return style
}
