package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeywordEntry is one row of the feature/risk keyword table. Match lists
// the phrases that trigger the flag, matched case-insensitively on word
// boundaries; when empty, the label itself is the match term.
type KeywordEntry struct {
	Label    string       `yaml:"label"`
	Category FlagCategory `yaml:"category"`
	Match    []string     `yaml:"match,omitempty"`
}

// Taxonomy is the static lookup data driving discipline classification and
// feature flagging. It is loaded once at process start and treated as
// read-only by the pipeline; new disciplines or keywords are added here,
// not in extraction code.
type Taxonomy struct {
	Disciplines map[string]string `yaml:"disciplines"` // sheet prefix -> discipline name
	Keywords    []KeywordEntry    `yaml:"keywords"`
}

// DefaultTaxonomy returns the built-in discipline and keyword tables.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Disciplines: map[string]string{
			"A":  "Architectural",
			"C":  "Civil",
			"S":  "Structural",
			"M":  "Mechanical",
			"E":  "Electrical",
			"P":  "Plumbing",
			"L":  "Landscape",
			"FP": "Fire Protection",
			"T":  "Telecommunications",
			"G":  "General",
		},
		Keywords: []KeywordEntry{
			{Label: "retaining wall", Category: CategoryRisk},
			{Label: "shoring", Category: CategoryRisk},
			{Label: "dewatering", Category: CategoryRisk},
			{Label: "asbestos", Category: CategoryRisk},
			{Label: "contaminated soil", Category: CategoryRisk},
			{Label: "ADA", Category: CategoryRisk},
			{Label: "stormwater detention", Category: CategoryPermit, Match: []string{"stormwater"}},
			{Label: "variance required", Category: CategoryPermit},
			{Label: "wetland", Category: CategoryPermit},
			{Label: "floodplain", Category: CategoryPermit},
			{Label: "fire lane width", Category: CategoryPermit, Match: []string{"fire lane"}},
			{Label: "easement", Category: CategoryCoordination},
			{Label: "utility conflict", Category: CategoryCoordination},
			{Label: "right-of-way", Category: CategoryCoordination, Match: []string{"right-of-way", "right of way"}},
			{Label: "by others", Category: CategoryCoordination},
			{Label: "phased construction", Category: CategoryScheduling, Match: []string{"phased construction", "construction phasing"}},
			{Label: "long lead time", Category: CategoryScheduling, Match: []string{"long lead"}},
			{Label: "traffic control", Category: CategoryScheduling},
			{Label: "night work", Category: CategoryScheduling},
		},
	}
}

// LoadTaxonomy reads a yaml override file on top of the defaults. A file
// that only lists extra disciplines keeps the default keyword table, and
// vice versa.
func LoadTaxonomy(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	taxonomy := DefaultTaxonomy()
	if err := yaml.Unmarshal(data, &taxonomy); err != nil {
		return Taxonomy{}, fmt.Errorf("failed to parse taxonomy file: %w", err)
	}
	return taxonomy, nil
}
