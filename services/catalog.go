package services

import (
	"sort"
	"strings"

	"research-atlas/models"
)

// AllCountries ist der Filterwert für "kein Filter".
const AllCountries = "all"

// FilterByCountry: leer oder "all" liefert alles, sonst exakter Vergleich.
func FilterByCountry(records []models.ProjectRecord, country string) []models.ProjectRecord {
	if country == "" || strings.EqualFold(country, AllCountries) {
		return records
	}
	out := make([]models.ProjectRecord, 0, len(records))
	for _, r := range records {
		if r.Country == country {
			out = append(out, r)
		}
	}
	return out
}

// Countries liefert die sortierten, eindeutigen Länder für die Filterauswahl.
func Countries(records []models.ProjectRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if r.Country == "" {
			continue
		}
		if _, ok := seen[r.Country]; ok {
			continue
		}
		seen[r.Country] = struct{}{}
		out = append(out, r.Country)
	}
	sort.Strings(out)
	return out
}

type markerKey struct {
	country, city string
	lat, lon      float64
}

// GroupMarkers fasst Projekte mit gleicher (country, city, lat, lon) zu einem
// Marker zusammen. Projekte ohne Koordinaten erscheinen nicht auf der Karte.
func GroupMarkers(records []models.ProjectRecord) []models.Marker {
	index := make(map[markerKey]int)
	var markers []models.Marker
	for _, r := range records {
		if !r.HasLocation() {
			continue
		}
		k := markerKey{r.Country, r.City, *r.Lat, *r.Lon}
		i, ok := index[k]
		if !ok {
			i = len(markers)
			index[k] = i
			markers = append(markers, models.Marker{Country: r.Country, City: r.City, Lat: *r.Lat, Lon: *r.Lon})
		}
		markers[i].Projects = append(markers[i].Projects, r)
	}
	return markers
}
