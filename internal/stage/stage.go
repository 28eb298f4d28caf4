// Package stage computes the twelve life-cycle stages (십이운성) of a branch
// relative to a reference stem.
package stage

import (
	"fmt"

	"github.com/roach88/saju/internal/ganji"
)

// Stage is one of the twelve ordered life-cycle phases.
type Stage int

const (
	Jangsaeng Stage = iota // 장생 birth
	Mokyok                 // 목욕 bathing
	Gwandae                // 관대 coming of age
	Geonrok                // 건록 establishment
	Jewang                 // 제왕 imperial peak
	Soe                    // 쇠 decline
	Byeong                 // 병 sickness
	Sa                     // 사 death
	Myo                    // 묘 tomb
	Jeol                   // 절 severance
	Tae                    // 태 conception
	Yang                   // 양 nurture
)

// Count is the number of stages.
const Count = 12

// All lists the stages in cycle order.
var All = [Count]Stage{Jangsaeng, Mokyok, Gwandae, Geonrok, Jewang, Soe, Byeong, Sa, Myo, Jeol, Tae, Yang}

// Energy groups the stages into four tiers.
type Energy string

const (
	Rising    Energy = "rising"
	Peak      Energy = "peak"
	Declining Energy = "declining"
	Dormant   Energy = "dormant"
)

// Energies lists the tiers from strongest to weakest.
var Energies = []Energy{Peak, Rising, Declining, Dormant}

type stageInfo struct {
	name      string
	hangul    string
	energy    Energy
	score     int
	lifePhase string
	advice    []string
}

var table = [Count]stageInfo{
	{"jangsaeng", "장생", Rising, 85, "birth", []string{"start-new-projects", "seek-mentors"}},
	{"mokyok", "목욕", Rising, 60, "infancy", []string{"guard-reputation", "avoid-impulsive-spending"}},
	{"gwandae", "관대", Rising, 80, "youth", []string{"build-credentials", "take-visible-roles"}},
	{"geonrok", "건록", Peak, 95, "maturity", []string{"expand-responsibility", "commit-to-long-plans"}},
	{"jewang", "제왕", Peak, 100, "zenith", []string{"lead-decisively", "avoid-overreach"}},
	{"soe", "쇠", Declining, 60, "late-maturity", []string{"consolidate-gains", "delegate"}},
	{"byeong", "병", Declining, 40, "illness", []string{"protect-health", "reduce-commitments"}},
	{"sa", "사", Declining, 25, "ending", []string{"close-old-matters", "avoid-new-ventures"}},
	{"myo", "묘", Dormant, 30, "storage", []string{"save-resources", "study-quietly"}},
	{"jeol", "절", Dormant, 15, "severance", []string{"cut-losses", "rest"}},
	{"tae", "태", Dormant, 45, "conception", []string{"plan-ahead", "incubate-ideas"}},
	{"yang", "양", Dormant, 55, "gestation", []string{"prepare-foundations", "accept-support"}},
}

// birthBranch is the 장생 branch of each stem. Yang stems advance forward
// from it; yin stems advance backward.
var birthBranch = [ganji.StemCount]ganji.Branch{
	ganji.Hae,  // 甲
	ganji.O,    // 乙
	ganji.In,   // 丙
	ganji.Yu,   // 丁
	ganji.In,   // 戊
	ganji.Yu,   // 己
	ganji.Sa,   // 庚
	ganji.Ja,   // 辛
	ganji.Shin, // 壬
	ganji.Myo,  // 癸
}

// Valid reports whether s is one of the twelve stages.
func (s Stage) Valid() bool {
	return s >= Jangsaeng && s <= Yang
}

func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return table[s].name
}

// Hangul returns the Korean stage name.
func (s Stage) Hangul() string {
	if !s.Valid() {
		return "?"
	}
	return table[s].hangul
}

// Energy returns the tier of the stage. An invalid stage is dormant.
func (s Stage) Energy() Energy {
	if !s.Valid() {
		return Dormant
	}
	return table[s].energy
}

// Score returns the fixed 0-100 score of the stage, or 0 for an invalid
// stage.
func (s Stage) Score() int {
	if !s.Valid() {
		return 0
	}
	return table[s].score
}

// MarshalText encodes the stage by its romanized name.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid stage %d", int(s))
	}
	return []byte(table[s].name), nil
}

// UnmarshalText decodes a romanized or hangul stage name.
func (s *Stage) UnmarshalText(text []byte) error {
	for i, info := range table {
		if info.name == string(text) || info.hangul == string(text) {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", string(text))
}

// Result is the full twelve-stage reading for one (stem, branch) pair.
type Result struct {
	Stage     Stage    `json:"stage"`
	Energy    Energy   `json:"energy"`
	Score     int      `json:"score"`
	LifePhase string   `json:"life_phase"`
	Advice    []string `json:"advice"`
}

// Of returns the stage of branch b relative to reference stem ref.
// Total over the 10×12 valid inputs. Invalid input yields the dormant
// 절 stage, the neutral floor of the table.
func Of(ref ganji.Stem, b ganji.Branch) Result {
	s := StageOf(ref, b)
	info := table[s]
	return Result{
		Stage:     s,
		Energy:    info.energy,
		Score:     info.score,
		LifePhase: info.lifePhase,
		Advice:    append([]string(nil), info.advice...),
	}
}

// StageOf returns only the stage for (ref, b).
func StageOf(ref ganji.Stem, b ganji.Branch) Stage {
	if !ref.Valid() || !b.Valid() {
		return Jeol
	}
	start := int(birthBranch[ref])
	var steps int
	if ref.Polarity() == ganji.Yang {
		steps = int(b) - start
	} else {
		steps = start - int(b)
	}
	return Stage(((steps % Count) + Count) % Count)
}

// ScoreOf is a shortcut for Of(ref, b).Score.
func ScoreOf(ref ganji.Stem, b ganji.Branch) int {
	return table[StageOf(ref, b)].score
}
