package shipping

import "github.com/sayuryunur/storefront/internal/config"

const (
	LabelVeryNear = "Sangat Dekat"
	LabelCity     = "Dalam Kota"
	LabelOuter    = "Pinggiran Kota"
	LabelFar      = "Luar Kota"
)

// Tiers is a flat four-step fee table: below NearKm, up to and including
// CityKm, up to and including OuterKm, and beyond.
type Tiers struct {
	NearKm   float64
	CityKm   float64
	OuterKm  float64
	FeeNear  int64
	FeeCity  int64
	FeeOuter int64
	FeeFar   int64
}

func TiersFromConfig(cfg config.Shipping) Tiers {
	return Tiers{
		NearKm:   cfg.NearKm,
		CityKm:   cfg.CityKm,
		OuterKm:  cfg.OuterKm,
		FeeNear:  cfg.FeeNear,
		FeeCity:  cfg.FeeCity,
		FeeOuter: cfg.FeeOuter,
		FeeFar:   cfg.FeeFar,
	}
}

// Fee returns the fee and tier label for a distance in km.
func (t Tiers) Fee(distanceKm float64) (int64, string) {
	switch {
	case distanceKm < t.NearKm:
		return t.FeeNear, LabelVeryNear
	case distanceKm <= t.CityKm:
		return t.FeeCity, LabelCity
	case distanceKm <= t.OuterKm:
		return t.FeeOuter, LabelOuter
	default:
		return t.FeeFar, LabelFar
	}
}
