package models

// Marker fasst alle Projekte an derselben Koordinate (country, city, lat, lon) zusammen.
type Marker struct {
	Country  string          `json:"country"`
	City     string          `json:"city"`
	Lat      float64         `json:"lat"`
	Lon      float64         `json:"lon"`
	Projects []ProjectRecord `json:"projects"`
}
