package ganji

// Calendar cycle arithmetic. Everything here is modular integer arithmetic
// against fixed epochs:
//   - year 4 CE was 甲子, so a year's index is (year-4) mod 60
//   - Julian day number 11 was 甲子, so a day's index is (JDN+49) mod 60
//
// Months are Gregorian months used as an approximation of solar months:
// February opens the 寅 month and January closes the previous year as 丑.

// YearlyGanji returns the pillar for a year. The result repeats exactly
// every 60 years.
func YearlyGanji(year int) Pillar {
	return PillarAt(year - 4)
}

// MonthBranch returns the branch governing a Gregorian month.
// Months outside 1..12 are clamped.
func MonthBranch(month int) Branch {
	return Branch(mod(clampMonth(month), BranchCount))
}

// MonthlyGanji returns the pillar for a Gregorian year and month.
//
// The month stem follows the five-tiger rule: the 寅 month of a 甲 or 己 year
// is 丙寅, of a 乙 or 庚 year 戊寅, and so on. January belongs to the
// previous sexagenary year.
func MonthlyGanji(year, month int) Pillar {
	m := clampMonth(month)
	ganjiYear := year
	if m == 1 {
		ganjiYear--
	}
	yearStem := YearlyGanji(ganjiYear).Stem
	tigerStem := Stem(mod(int(yearStem%5)*2+2, StemCount))
	offset := mod(int(MonthBranch(m))-int(In), BranchCount)
	return Pillar{Stem: tigerStem.Next(offset), Branch: MonthBranch(m)}
}

// DailyGanji returns the pillar for a proleptic Gregorian date.
// Days outside the month are not rejected; they roll over arithmetically.
func DailyGanji(year, month, day int) Pillar {
	return PillarAt(JulianDayNumber(year, month, day) + 49)
}

// DaysInMonth returns the length of a proleptic Gregorian month, or 0 for
// a month outside 1..12.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 12 {
		return JulianDayNumber(year+1, 1, 1) - JulianDayNumber(year, 12, 1)
	}
	return JulianDayNumber(year, month+1, 1) - JulianDayNumber(year, month, 1)
}

// ValidDate reports whether year-month-day names a real Gregorian date.
func ValidDate(year, month, day int) bool {
	return day >= 1 && day <= DaysInMonth(year, month)
}

// HourBranch returns the branch of a two-hour watch for an hour 0-23.
// 23:00-00:59 is 子.
func HourBranch(hour int) Branch {
	return Branch(mod((mod(hour, 24)+1)/2, BranchCount))
}

// HourlyGanji returns the hour pillar for a day stem and hour 0-23.
// The 子 hour stem follows the five-rat rule: 甲/己 days start at 甲子.
func HourlyGanji(dayStem Stem, hour int) Pillar {
	ratStem := Stem(mod(int(dayStem%5)*2, StemCount))
	b := HourBranch(hour)
	return Pillar{Stem: ratStem.Next(int(b)), Branch: b}
}

// JulianDayNumber converts a proleptic Gregorian date to its Julian day
// number using integer arithmetic only.
func JulianDayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func clampMonth(month int) int {
	if month < 1 {
		return 1
	}
	if month > 12 {
		return 12
	}
	return month
}
