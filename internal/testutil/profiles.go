package testutil

import (
	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
)

// SampleProfile is a 1990 chart: 庚午 / 戊寅 / 甲子 / 丙寅.
func SampleProfile() chart.BirthProfile {
	return chart.BirthProfile{
		Name:      "sample",
		BirthYear: 1990,
		Gender:    chart.Male,
		Year:      ganji.MustParsePillar("庚午"),
		Month:     ganji.MustParsePillar("戊寅"),
		Day:       ganji.MustParsePillar("甲子"),
		Hour:      ganji.MustParsePillar("丙寅"),
	}
}

// PartnerProfile is a 1991 chart: 辛未 / 庚寅 / 己丑 / 甲子.
func PartnerProfile() chart.BirthProfile {
	return chart.BirthProfile{
		Name:      "partner",
		BirthYear: 1991,
		Gender:    chart.Female,
		Year:      ganji.MustParsePillar("辛未"),
		Month:     ganji.MustParsePillar("庚寅"),
		Day:       ganji.MustParsePillar("己丑"),
		Hour:      ganji.MustParsePillar("甲子"),
	}
}
