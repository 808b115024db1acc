// Package v1alpha1 contains API types for the Slidecast player.
package v1alpha1

import "encoding/json"

// Advertisement kinds understood by the player. Entries with any other
// type are ignored during normalization.
const (
	AdTypeMultimedia  = "Multimedia"
	AdTypeProductList = "ProductList"
)

// AdvertisementList is the top-level response of the remote advertisement
// endpoint. Orientation and rotation direction apply to every slide built
// from this response.
type AdvertisementList struct {
	// Business is the display name of the account that owns this device
	Business string `json:"business"`
	// DeviceName is the human-assigned name of this device
	DeviceName string `json:"device_name"`
	// Orientation is "horizontal" (default) or "vertical"
	Orientation string `json:"orientation"`
	// RotationDirection is "left" or "right" and only matters when
	// Orientation is "vertical"
	RotationDirection string `json:"rotation_direction"`
	// LastUpdate is an opaque server-side change token
	LastUpdate string `json:"last_update"`
	// Advertisements holds the heterogeneous ad entries
	Advertisements []Advertisement `json:"advertisements"`
}

// Advertisement is one entry of the feed. Data is decoded lazily because
// its shape depends on Type.
type Advertisement struct {
	// Type is one of AdTypeMultimedia or AdTypeProductList
	Type string `json:"type"`
	// Title is only meaningful for product list entries
	Title string `json:"title"`
	// Data carries the type-specific payload
	Data json.RawMessage `json:"data"`
}

// MultimediaData is the payload of an AdTypeMultimedia entry.
type MultimediaData struct {
	// Media lists the assets to display, in order
	Media []MediaItem `json:"media"`
	// ImageSeconds is the dwell time for static images (seconds)
	ImageSeconds int `json:"image_seconds"`
}

// MediaItem references a single remote asset.
type MediaItem struct {
	// Data is the remote URL of the asset
	Data string `json:"data"`
	// OriginalURL is used by product media and image backgrounds
	OriginalURL string `json:"original_url"`
}

// ProductListData is the payload of an AdTypeProductList entry.
type ProductListData struct {
	Products      []Product     `json:"products"`
	Customization Customization `json:"customization"`
}

// Product is a single sellable item within a product list.
type Product struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	// Price is a decimal string monetary amount
	Price string `json:"price"`
	// OfferPrice, when present, is the discounted amount; Price is then
	// rendered struck through as the original price
	OfferPrice string      `json:"offer_price,omitempty"`
	Media      []MediaItem `json:"media,omitempty"`
}

// Customization is the presentation configuration of a product list.
// It never affects scheduling beyond pagination and page_seconds.
type Customization struct {
	PrimaryColor        string      `json:"primary_color,omitempty"`
	SecondaryColor      string      `json:"secondary_color,omitempty"`
	BackgroundType      string      `json:"background_type,omitempty"`
	FontFamily          string      `json:"font_family,omitempty"`
	ProductTextColor    string      `json:"product_text_color,omitempty"`
	PriceTextColor      string      `json:"price_text_color,omitempty"`
	ListTextColor       string      `json:"list_text_color,omitempty"`
	ListTextBoxColor    string      `json:"list_text_box_color,omitempty"`
	ProductTextBoxColor string      `json:"product_text_box_color,omitempty"`
	OtherTexts          string      `json:"other_texts,omitempty"`
	// Pagination selects the layout variant: 1, 2, 3, 4, 5 or 10
	// products per page
	Pagination int `json:"pagination,omitempty"`
	// PageSeconds is the dwell time per page (seconds)
	PageSeconds int `json:"page_seconds,omitempty"`
	// Media backs the "image" background type
	Media []MediaItem `json:"media,omitempty"`
}

// Background types a product list can use.
const (
	BackgroundBox   = "box"
	BackgroundFade  = "fade"
	BackgroundImage = "image"
)
