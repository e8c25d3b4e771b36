package domain

// CrosswalkFacility represents one physical crosswalk or signal installation.
// Feature flags are nil when the source did not report them.
type CrosswalkFacility struct {
	ID      string `json:"id"`
	Sido    string `json:"sido"`
	Sigungu string `json:"sigungu"`
	Address string `json:"address"`

	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lon,omitempty"`

	HasSignal            *bool `json:"has_signal,omitempty"`
	PedestrianButton     *bool `json:"pedestrian_button,omitempty"`
	SoundSignal          *bool `json:"sound_signal,omitempty"`
	RemainingTimeDisplay *bool `json:"remaining_time_display,omitempty"`
	HighlandCrossing     *bool `json:"highland_crossing,omitempty"`
	CurbRamp             *bool `json:"curb_ramp,omitempty"`
	BrailleBlock         *bool `json:"braille_block,omitempty"`
	Spotlight            *bool `json:"spotlight,omitempty"`
}

// FacilityFeatures is the normalized flag set of a crosswalk: unknown is false.
type FacilityFeatures struct {
	Signal               bool `json:"signal"`
	PedestrianButton     bool `json:"pedestrian_button"`
	SoundSignal          bool `json:"sound_signal"`
	RemainingTimeDisplay bool `json:"remaining_time_display"`
	HighlandCrossing     bool `json:"highland_crossing"`
	CurbRamp             bool `json:"curb_ramp"`
	BrailleBlock         bool `json:"braille_block"`
	Spotlight            bool `json:"spotlight"`
}

// Features normalizes the optional flags
func (f CrosswalkFacility) Features() FacilityFeatures {
	return FacilityFeatures{
		Signal:               isTrue(f.HasSignal),
		PedestrianButton:     isTrue(f.PedestrianButton),
		SoundSignal:          isTrue(f.SoundSignal),
		RemainingTimeDisplay: isTrue(f.RemainingTimeDisplay),
		HighlandCrossing:     isTrue(f.HighlandCrossing),
		CurbRamp:             isTrue(f.CurbRamp),
		BrailleBlock:         isTrue(f.BrailleBlock),
		Spotlight:            isTrue(f.Spotlight),
	}
}

// Location returns the facility coordinates and whether both are present
func (f CrosswalkFacility) Location() (lat, lon float64, ok bool) {
	if f.Latitude == nil || f.Longitude == nil {
		return 0, 0, false
	}
	return *f.Latitude, *f.Longitude, true
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
