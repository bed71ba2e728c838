package models

import (
	"strconv"
	"strings"
)

// Spaltennamen der Projekttabelle (case-sensitive).
const (
	ColCountry     = "country"
	ColCity        = "city"
	ColLat         = "lat"
	ColLon         = "lon"
	ColProjectName = "project_name"
	ColYears       = "years"
	ColStatus      = "status"
	ColDataTypes   = "data_types"
	ColDescription = "description"
	ColContact     = "contact"
	ColAccess      = "access"
	ColURL         = "url"
	ColApproved    = "approved"
	ColCreatedAt   = "created_at"
)

// CanonicalColumns sind die zwölf Spalten, die jeder angezeigte Datensatz besitzt.
var CanonicalColumns = []string{
	ColCountry, ColCity, ColLat, ColLon, ColProjectName, ColYears,
	ColStatus, ColDataTypes, ColDescription, ColContact, ColAccess, ColURL,
}

// SubmissionColumns ist die natürliche Feldreihenfolge einer Einreichung.
var SubmissionColumns = append(append([]string{}, CanonicalColumns...), ColApproved, ColCreatedAt)

// Werte der approved-Spalte.
const (
	ApprovedTrue  = "TRUE"
	ApprovedFalse = "FALSE"
)

// ProjectRecord ist eine Zeile des Katalogs. Lat/Lon sind nil, wenn die Quelle
// keinen numerischen Wert liefert.
type ProjectRecord struct {
	Country     string   `json:"country"`
	City        string   `json:"city"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	ProjectName string   `json:"project_name"`
	Years       string   `json:"years"`
	Status      string   `json:"status"` // Active, Legacy, Completed, Planning (Freitext)
	DataTypes   string   `json:"data_types"`
	Description string   `json:"description"`
	Contact     string   `json:"contact"`
	Access      string   `json:"access"`
	URL         string   `json:"url"`
	Approved    string   `json:"approved,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// IsApproved prüft approved == "TRUE" ohne Beachtung der Groß-/Kleinschreibung.
func (r ProjectRecord) IsApproved() bool {
	return strings.ToUpper(r.Approved) == ApprovedTrue
}

// HasLocation meldet, ob beide Koordinaten vorhanden sind.
func (r ProjectRecord) HasLocation() bool {
	return r.Lat != nil && r.Lon != nil
}

// RecordFromRow baut einen Datensatz aus einer Tabellenzeile. Fehlende Spalten
// werden zu leeren Strings, nicht-numerische Koordinaten zu nil.
func RecordFromRow(row map[string]string) ProjectRecord {
	return ProjectRecord{
		Country:     row[ColCountry],
		City:        row[ColCity],
		Lat:         ParseCoordinate(row[ColLat]),
		Lon:         ParseCoordinate(row[ColLon]),
		ProjectName: row[ColProjectName],
		Years:       row[ColYears],
		Status:      row[ColStatus],
		DataTypes:   row[ColDataTypes],
		Description: row[ColDescription],
		Contact:     row[ColContact],
		Access:      row[ColAccess],
		URL:         row[ColURL],
		Approved:    row[ColApproved],
		CreatedAt:   row[ColCreatedAt],
	}
}

// ParseCoordinate wandelt einen Zellwert in eine Zahl um; alles Nicht-Numerische wird nil.
func ParseCoordinate(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// FormatCoordinate ist die Umkehrung von ParseCoordinate.
func FormatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Float ist ein Helfer für Literale.
func Float(v float64) *float64 { return &v }
