// Package view turns domain projections into immutable page models and
// renders them with html/template. Everything except Renderer is a pure
// function of its inputs.
package view

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/sakif/skillup/internal/model"
)

// Percent is round(100*done/total), or 0 for an empty set.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) * 100 / float64(total)))
}

type Progress struct {
	Done    int
	Total   int
	Percent int
}

func progressOf(items []model.ChecklistItem) Progress {
	done := 0
	for _, it := range items {
		if it.Status == model.StatusDone {
			done++
		}
	}
	return Progress{Done: done, Total: len(items), Percent: Percent(done, len(items))}
}

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeSectionKey maps "tech skill", "TECH SKILL" and "TECH_SKILL" to
// the same key.
func NormalizeSectionKey(key string) string {
	return strings.ToUpper(whitespace.ReplaceAllString(key, "_"))
}

// SectionLabel is the display form of a section key.
func SectionLabel(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

var canonicalRank = map[string]int{
	string(model.ItemTypeTechSkill):     0,
	string(model.ItemTypeSoftSkill):     1,
	string(model.ItemTypeCertification): 2,
}

// OrderSections sorts section keys: the canonical types first in their
// fixed order, then anything else alphabetically by normalised key.
func OrderSections(keys []string) []string {
	out := append([]string(nil), keys...)
	rank := func(k string) int {
		if r, ok := canonicalRank[NormalizeSectionKey(k)]; ok {
			return r
		}
		return len(canonicalRank)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return NormalizeSectionKey(out[i]) < NormalizeSectionKey(out[j])
	})
	return out
}
