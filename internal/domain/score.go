package domain

import "time"

// ScoreKind selects which threshold table a score is classified against
type ScoreKind string

const (
	KindRisk   ScoreKind = "risk"
	KindSafety ScoreKind = "safety"
)

// Tone is the presentation tier of a classified score, best to worst
type Tone string

const (
	ToneExcellent Tone = "excellent"
	ToneGood      Tone = "good"
	ToneModerate  Tone = "moderate"
	ToneWarning   Tone = "warning"
	ToneCritical  Tone = "critical"
)

// ScoreClassification is the label/tone pair rendered by map markers and badges
type ScoreClassification struct {
	Label       string `json:"label"`
	Tone        Tone   `json:"tone"`
	Description string `json:"description"`
}

// ScoredPoint represents a single region point for the heatmap overlay
type ScoredPoint struct {
	RegionCode    string  `json:"region_code"`
	Latitude      float64 `json:"lat"`
	Longitude     float64 `json:"lon"`
	RiskScore     float64 `json:"risk_score"`
	SafetyScore   float64 `json:"safety_score"`
	CombinedScore float64 `json:"combined_score"`
	AccidentCount int     `json:"accident_count"`
	FacilityCount int     `json:"facility_count"`

	Risk   *ScoreClassification `json:"risk,omitempty"`
	Safety *ScoreClassification `json:"safety,omitempty"`
}

// ScoredCrosswalk is a crosswalk with its safety score and, when scored
// relative to a point, its distance from it
type ScoredCrosswalk struct {
	Facility       CrosswalkFacility   `json:"facility"`
	SafetyScore    float64             `json:"safety_score"`
	Classification ScoreClassification `json:"classification"`
	DistanceMeters *float64            `json:"distance_m,omitempty"`
}

// PointAnalysis aggregates everything the risk panel shows for one location
type PointAnalysis struct {
	Latitude         float64             `json:"lat"`
	Longitude        float64             `json:"lon"`
	RadiusMeters     float64             `json:"radius_m"`
	Year             int                 `json:"year,omitempty"`
	RiskScore        float64             `json:"risk_score"`
	Risk             ScoreClassification `json:"risk"`
	NearbyAccidents  int                 `json:"nearby_accidents"`
	AccidentsInRange int                 `json:"accidents_in_range"`
	AverageSafety    float64             `json:"average_safety"`
	Safety           ScoreClassification `json:"safety"`
	Crosswalks       []ScoredCrosswalk   `json:"crosswalks"`
	Timestamp        time.Time           `json:"timestamp"`
}

// Heatmap wraps the generated points with query metadata
type Heatmap struct {
	Bounds    Bounds        `json:"bounds"`
	Year      int           `json:"year,omitempty"`
	Points    []ScoredPoint `json:"points"`
	Timestamp time.Time     `json:"timestamp"`
	IsMock    bool          `json:"is_mock"`
}
