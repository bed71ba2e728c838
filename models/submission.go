package models

import (
	"encoding/json"
	"strings"
)

// Submission sind die zwölf Eingabefelder des Einreichungsformulars.
type Submission struct {
	Country     string     `json:"country"`
	City        string     `json:"city"`
	Lat         Coordinate `json:"lat"`
	Lon         Coordinate `json:"lon"`
	ProjectName string     `json:"project_name"`
	Years       string     `json:"years"`
	Status      string     `json:"status"`
	DataTypes   string     `json:"data_types"`
	Description string     `json:"description"`
	Contact     string     `json:"contact"`
	Access      string     `json:"access"`
	URL         string     `json:"url"`
}

// Fields liefert die Einreichung als Spalte -> Zellwert.
func (s Submission) Fields() map[string]string {
	return map[string]string{
		ColCountry:     s.Country,
		ColCity:        s.City,
		ColLat:         string(s.Lat),
		ColLon:         string(s.Lon),
		ColProjectName: s.ProjectName,
		ColYears:       s.Years,
		ColStatus:      s.Status,
		ColDataTypes:   s.DataTypes,
		ColDescription: s.Description,
		ColContact:     s.Contact,
		ColAccess:      s.Access,
		ColURL:         s.URL,
	}
}

// Coordinate nimmt im JSON sowohl Zahlen als auch Strings an und behält den Text bei.
type Coordinate string

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Coordinate(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Coordinate(n.String())
	return nil
}
