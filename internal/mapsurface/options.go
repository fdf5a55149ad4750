package mapsurface

import "github.com/UnknownOlympus/pinpoint/internal/models"

// Point is a pixel offset or size.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Icon describes how a marker is drawn. It is presentational only.
type Icon struct {
	IconURL     string `json:"icon_url"`
	ShadowURL   string `json:"shadow_url"`
	IconSize    Point  `json:"icon_size"`
	IconAnchor  Point  `json:"icon_anchor"`
	PopupAnchor Point  `json:"popup_anchor"`
	ShadowSize  Point  `json:"shadow_size"`
	ClassName   string `json:"class_name"`
}

// TileLayer is an XYZ tile source.
type TileLayer struct {
	URLTemplate string `json:"url_template"`
	MaxZoom     int    `json:"max_zoom"`
}

// Options fixes the map geometry and marker appearance.
type Options struct {
	Center       models.Coordinate // Center is the initial view center.
	OverviewZoom int               // OverviewZoom is the zoom used when the map is mounted.
	CloseUpZoom  int               // CloseUpZoom is the zoom used after a successful lookup.
	TileLayer    TileLayer         // TileLayer is the single base layer.
	Icon         Icon              // Icon is used for the lookup marker.
}

const (
	overviewZoom = 13
	closeUpZoom  = 18
	tileMaxZoom  = 20
)

// DefaultOptions returns the map setup centered on Bertioga with OpenStreetMap tiles.
func DefaultOptions() Options {
	return Options{
		Center:       models.Coordinate{Latitude: -24.0058, Longitude: -46.4025},
		OverviewZoom: overviewZoom,
		CloseUpZoom:  closeUpZoom,
		TileLayer: TileLayer{
			URLTemplate: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			MaxZoom:     tileMaxZoom,
		},
		Icon: Icon{
			IconURL:     "https://cdnjs.cloudflare.com/ajax/libs/leaflet/1.7.1/images/marker-icon-2x.png",
			ShadowURL:   "https://cdnjs.cloudflare.com/ajax/libs/leaflet/1.7.1/images/marker-shadow.png",
			IconSize:    Point{X: 25, Y: 41},
			IconAnchor:  Point{X: 12, Y: 41},
			PopupAnchor: Point{X: 1, Y: -34},
			ShadowSize:  Point{X: 41, Y: 41},
			ClassName:   "custom-marker",
		},
	}
}
