package services

import "research-atlas/models"

// FallbackRecords liefert die eingebauten Beispielprojekte. Jeder Aufruf gibt eine
// frische Kopie zurück.
func FallbackRecords() []models.ProjectRecord {
	return []models.ProjectRecord{
		{
			Country:     "Nigeria",
			City:        "Lagos",
			Lat:         models.Float(6.5244),
			Lon:         models.Float(3.3792),
			ProjectName: "Lagos Urban Heat Observatory",
			Years:       "2019-present",
			Status:      "Active",
			DataTypes:   "Sensor time series, land surface temperature",
			Description: "Street-level temperature and humidity network across Lagos mainland and island.",
			Contact:     "heat-observatory@example.org",
			Access:      "Open (CC-BY 4.0)",
			URL:         "https://example.org/lagos-heat",
			Approved:    models.ApprovedTrue,
		},
		{
			Country:     "Bangladesh",
			City:        "Dhaka",
			Lat:         models.Float(23.8103),
			Lon:         models.Float(90.4125),
			ProjectName: "Dhaka Flood Resilience Survey",
			Years:       "2012-2018",
			Status:      "Legacy",
			DataTypes:   "Household surveys, flood extent maps",
			Description: "Panel survey of flood exposure and coping strategies in informal settlements.",
			Contact:     "flood-survey@example.org",
			Access:      "On request",
			URL:         "https://example.org/dhaka-flood",
			Approved:    models.ApprovedTrue,
		},
		{
			Country:     "Kenya",
			City:        "Nairobi",
			Lat:         models.Float(-1.2921),
			Lon:         models.Float(36.8219),
			ProjectName: "Nairobi Air Quality Network",
			Years:       "2016-2021",
			Status:      "Completed",
			DataTypes:   "PM2.5 low-cost sensors, reference monitors",
			Description: "Low-cost particulate sensors co-located with reference stations across Nairobi.",
			Contact:     "air-quality@example.org",
			Access:      "Open",
			URL:         "https://example.org/nairobi-air",
			Approved:    models.ApprovedTrue,
		},
	}
}
