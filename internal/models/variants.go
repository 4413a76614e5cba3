package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Variant is one trackable car configuration with its default search
// bounds. Price bounds and the subsidy tag are kept as the strings the
// showroom API expects; empty means "no bound". Variants are immutable
// after process start.
type Variant struct {
	ID            string `yaml:"id" json:"id"`
	DisplayName   string `yaml:"name" json:"displayName"`
	SubsidyRegion string `yaml:"subsidyRegion" json:"subsidyRegion,omitempty"`
	MinSalePrice  string `yaml:"minSalePrice" json:"minSalePrice,omitempty"`
	MaxSalePrice  string `yaml:"maxSalePrice" json:"maxSalePrice,omitempty"`
}

// BuiltinVariants returns the fixed Casper lineup tracked by default.
func BuiltinVariants() []Variant {
	return []Variant{
		{
			ID:            "AX05",
			DisplayName:   "2026 캐스퍼 일렉트릭",
			SubsidyRegion: "2800",
			MinSalePrice:  "35877000",
			MaxSalePrice:  "37306000",
		},
		{
			ID:          "AX06",
			DisplayName: "2026 캐스퍼",
		},
		{
			ID:            "AX03",
			DisplayName:   "캐스퍼 일렉트릭",
			SubsidyRegion: "2800",
			MinSalePrice:  "32060670",
			MaxSalePrice:  "32060670",
		},
		{
			ID:          "AX04",
			DisplayName: "더 뉴 캐스퍼",
		},
	}
}

// LoadVariants returns the variant table, replacing the built-in lineup
// with the YAML file at path when one is configured. An empty path keeps
// the built-ins.
func LoadVariants(path string) ([]Variant, error) {
	if path == "" {
		return BuiltinVariants(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read variants file: %w", err)
	}

	var file struct {
		Variants []Variant `yaml:"variants"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse variants file: %w", err)
	}
	if len(file.Variants) == 0 {
		return nil, fmt.Errorf("variants file %s defines no variants", path)
	}

	for _, v := range file.Variants {
		if v.ID == "" {
			return nil, fmt.Errorf("variants file %s contains a variant without an id", path)
		}
	}

	return file.Variants, nil
}

// FindVariant looks a variant up by its car code.
func FindVariant(variants []Variant, id string) (Variant, bool) {
	for _, v := range variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
