package format

import (
	"fmt"
	"strings"

	"github.com/roach88/saju/internal/compat"
	"github.com/roach88/saju/internal/ganji"
	"github.com/roach88/saju/internal/pattern"
	"github.com/roach88/saju/internal/report"
	"github.com/roach88/saju/internal/store"
	"github.com/roach88/saju/internal/timing"
	"github.com/roach88/saju/internal/trend"
)

// right right-aligns the given 1-based columns.
func right(cols ...int) []ColumnConfig {
	out := make([]ColumnConfig, len(cols))
	for i, c := range cols {
		out[i] = ColumnConfig{Number: c, Align: AlignRight}
	}
	return out
}

// Report renders the natal sections of a report, then its timing and trend
// tables when present.
func Report(r *report.Report, m Mode) string {
	var b strings.Builder

	natal := NewTable(m)
	natal.Title(fmt.Sprintf("%s  day master %s", r.Profile.Name, r.DayMaster))
	natal.Header("Pillar", "Ganji", "Stem role", "Branch role", "Stage", "Energy", "Score")
	for _, n := range r.Natal {
		natal.Row(n.Position, n.Pillar, n.StemRole, n.BranchRole, n.Stage, n.Energy, n.StageScore)
	}
	natal.Columns(right(7)...)
	b.WriteString(natal.String())
	b.WriteString("\n\n")

	elems := NewTable(m)
	elems.Header("Element", "Count")
	for _, e := range ganji.Elements {
		elems.Row(e, r.Tally.Count(e))
	}
	elems.Footer("yongsin", fmt.Sprintf("%s (%s, %s %d%%)", strings.Join(elementNames(r.Yongsin.Favorable()), ","),
		r.Yongsin.Type, r.Yongsin.Strength, r.Yongsin.SupportPercent))
	elems.Columns(right(2)...)
	b.WriteString(elems.String())
	b.WriteString("\n\n")

	b.WriteString(Patterns(r.Patterns, m))
	if r.Timing != nil {
		b.WriteString("\n\n")
		b.WriteString(Timing(*r.Timing, m))
	}
	if r.Trend != nil {
		b.WriteString("\n\n")
		b.WriteString(Trend(*r.Trend, m))
	}
	return b.String()
}

// Timing renders the per-layer breakdown of one score.
func Timing(s timing.LayeredScore, m Mode) string {
	t := NewTable(m)
	t.Title(fmt.Sprintf("%s  age %d", periodLabel(s), s.Age))
	t.Header("Layer", "Ganji", "Weight", "Stem role", "Stage", "Energy", "Score", "Element", "Relation")
	for _, la := range s.Layers {
		t.Row(la.Layer, la.Pillar, la.Weight, la.StemRole, la.Stage, la.Energy, la.StageScore,
			signed(la.ElementAdjust), fmt.Sprintf("%s %s", la.Relation, signed(la.RelationAdjust)))
	}
	t.Footer("score", s.WeightedScore, s.Grade, fmt.Sprintf("raw %d", s.RawScore),
		"", "", fmt.Sprintf("conf %d", s.Confidence), signed(s.ElementAdjust), signed(s.RelationAdjust))
	t.Columns(right(3, 7)...)

	var b strings.Builder
	b.WriteString(t.String())
	writeTags(&b, "themes", s.Themes)
	writeTags(&b, "opportunities", s.Opportunities)
	writeTags(&b, "cautions", s.Cautions)
	writeTags(&b, "best", s.BestActions)
	writeTags(&b, "avoid", s.AvoidActions)
	return b.String()
}

// Trend renders one row per year plus the derived statistics.
func Trend(tr trend.MultiYearTrend, m Mode) string {
	if tr.Empty() {
		return fmt.Sprintf("no years in range %d-%d", tr.StartYear, tr.EndYear)
	}
	t := NewTable(m)
	t.Title(fmt.Sprintf("%d-%d  %s", tr.StartYear, tr.EndYear, tr.Trend))
	t.Header("Year", "Age", "Ganji", "Score", "Grade", "Confidence")
	for _, s := range tr.Scores {
		year := ""
		if la, ok := s.Layer(timing.Year); ok {
			year = la.Pillar.String()
		}
		t.Row(s.Year, s.Age, year, s.WeightedScore, s.Grade, s.Confidence)
	}
	t.Footer("avg", "", "", tr.Average, fmt.Sprintf("sd %d", tr.StdDev), "")
	t.Columns(right(2, 4, 6)...)

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "\npeaks: %s", extremes(tr.PeakYears))
	fmt.Fprintf(&b, "\nlows:  %s", extremes(tr.LowYears))
	for _, tn := range tr.Transitions {
		fmt.Fprintf(&b, "\ntransition %d (age %d): %s -> %s %s", tn.Year, tn.Age, tn.From, tn.To, tn.Impact)
	}
	for _, p := range tr.Phases {
		fmt.Fprintf(&b, "\nphase %d-%d: %s %s avg %d [%s]", p.StartYear, p.EndYear, p.Energy, p.Element,
			p.AverageScore, strings.Join(p.Recommendations, ", "))
	}
	fmt.Fprintf(&b, "\nsummary: %s", tr.Summary)
	return b.String()
}

// Patterns renders one row per detector.
func Patterns(results []pattern.Result, m Mode) string {
	t := NewTable(m)
	t.Header("Pattern", "Detected", "Type", "Description")
	for _, r := range results {
		t.Row(r.Kind, mark(r.Detected), r.Type, r.Description)
	}
	t.Columns(ColumnConfig{Number: 4, MaxWidth: 60})
	return t.String()
}

// Compat renders the chart comparison and the fused guidance.
func Compat(s compat.SajuScore, f compat.FusionResult, m Mode) string {
	t := NewTable(m)
	t.Title(fmt.Sprintf("%s %s  %s", f.Grade.Grade, f.Grade.Emoji, f.Grade.Title))
	t.Header("Measure", "Value")
	t.Row("element harmony", s.ElementHarmony)
	t.Row("role harmony", fmt.Sprintf("%d (%s / %s)", s.RoleHarmony, s.RoleAToB, s.RoleBToA))
	t.Row("stem harmony", fmt.Sprintf("%d (%s)", s.StemHarmony, s.StemRelation))
	t.Row("branch harmony", fmt.Sprintf("%d (day %s, year %s)", s.BranchHarmony, s.DayRelation, s.YearRelation))
	t.Row("influence", signed(s.Influence))
	t.Row("power balance", signed(f.Dynamics.PowerBalance))
	t.Row("intensity", f.Dynamics.Intensity)
	t.Row("alignment", f.Dynamics.Alignment)
	t.Row("connection", f.Dynamics.Connection)
	t.Footer("overall", f.Overall)

	var b strings.Builder
	b.WriteString(t.String())
	for _, a := range f.Actions {
		fmt.Fprintf(&b, "\n[%s] %s: %s", a.Priority, a.Category, a.Tag)
	}
	for _, in := range f.Insights {
		fmt.Fprintf(&b, "\n%s-term %s: %s", in.Timeframe, in.Opportunity, in.Tag)
	}
	return b.String()
}

// History renders archived records, oldest first.
func History(records []store.Record, m Mode) string {
	if len(records) == 0 {
		return "no archived reports"
	}
	t := NewTable(m)
	t.Header("Seq", "Run ID", "Kind", "Profile", "Fingerprint")
	for _, r := range records {
		t.Row(r.Seq, r.ID, r.Kind, short(r.ProfileID), short(r.Fingerprint))
	}
	t.Columns(right(1)...)
	return t.String()
}

func periodLabel(s timing.LayeredScore) string {
	switch {
	case s.Day != 0:
		return fmt.Sprintf("%04d-%02d-%02d", s.Year, s.Month, s.Day)
	case s.Month != 0:
		return fmt.Sprintf("%04d-%02d", s.Year, s.Month)
	default:
		return fmt.Sprintf("%04d", s.Year)
	}
}

func writeTags(b *strings.Builder, label string, tags []string) {
	if len(tags) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s: %s", label, strings.Join(tags, ", "))
}

func extremes(list []trend.Extreme) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = fmt.Sprintf("%d (%d %s)", e.Year, e.Score, e.Grade)
	}
	return strings.Join(parts, ", ")
}

func elementNames(list []ganji.Element) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.String()
	}
	return out
}

// signed formats n with an explicit sign.
func signed(n int) string {
	return fmt.Sprintf("%+d", n)
}

// short truncates a hash for display.
func short(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:12]
}

// mark returns "✓" for true and "✗" for false.
func mark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
