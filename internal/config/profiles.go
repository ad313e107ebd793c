package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thywilljoshua/pdf-outline/internal/detect"
)

// ProfileOverride holds the thresholds a YAML file may change. Nil fields
// keep the built-in value.
type ProfileOverride struct {
	H1Ratio          *float64        `yaml:"h1_ratio,omitempty"`
	H2Ratio          *float64        `yaml:"h2_ratio,omitempty"`
	H3Ratio          *float64        `yaml:"h3_ratio,omitempty"`
	Epsilon          *float64        `yaml:"epsilon,omitempty"`
	MaxWords         *int            `yaml:"max_words,omitempty"`
	MinConfidence    *float64        `yaml:"min_confidence,omitempty"`
	MaxHeadings      *int            `yaml:"max_headings,omitempty"`
	CaseSensitive    *bool           `yaml:"case_sensitive,omitempty"`
	SelectConfidence *float64        `yaml:"select_confidence,omitempty"`
	Weights          *detect.Weights `yaml:"weights,omitempty"`
}

type profilesFile struct {
	Profiles map[detect.Name]ProfileOverride `yaml:"profiles"`
}

// LoadProfiles returns the built-in profiles with the overrides from the
// YAML file at path applied. An empty path yields the defaults.
func LoadProfiles(path string) (detect.Profiles, error) {
	ps := detect.DefaultProfiles()
	if path == "" {
		return ps, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles %s: %w", path, err)
	}
	var f profilesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	for name, o := range f.Profiles {
		p, ok := ps[name]
		if !ok {
			return nil, fmt.Errorf("parse profiles %s: unknown profile %q", path, name)
		}
		ps[name] = o.apply(p)
	}
	return ps, ValidateProfiles(ps)
}

func (o ProfileOverride) apply(p detect.Profile) detect.Profile {
	setF := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setF(&p.H1Ratio, o.H1Ratio)
	setF(&p.H2Ratio, o.H2Ratio)
	setF(&p.H3Ratio, o.H3Ratio)
	setF(&p.Epsilon, o.Epsilon)
	setF(&p.MinConfidence, o.MinConfidence)
	setF(&p.SelectConfidence, o.SelectConfidence)
	if o.MaxWords != nil {
		p.MaxWords = *o.MaxWords
	}
	if o.MaxHeadings != nil {
		p.MaxHeadings = *o.MaxHeadings
	}
	if o.CaseSensitive != nil {
		p.CaseSensitive = *o.CaseSensitive
	}
	if o.Weights != nil {
		p.Weights = *o.Weights
	}
	return p
}

// ValidateProfiles checks threshold ordering and ranges.
func ValidateProfiles(ps detect.Profiles) error {
	if _, ok := ps[detect.Formal]; !ok {
		return fmt.Errorf("profile %q is required", detect.Formal)
	}
	for _, name := range detect.Names {
		p, ok := ps[name]
		if !ok {
			continue
		}
		switch {
		case !(p.H1Ratio > p.H2Ratio && p.H2Ratio > p.H3Ratio && p.H3Ratio >= 1):
			return fmt.Errorf("profile %s: ratios must satisfy h1 > h2 > h3 >= 1", name)
		case p.Epsilon < 0 || p.Epsilon >= 0.5:
			return fmt.Errorf("profile %s: epsilon %g out of range", name, p.Epsilon)
		case p.MaxWords <= 0:
			return fmt.Errorf("profile %s: max_words must be > 0", name)
		case p.MaxHeadings < 0:
			return fmt.Errorf("profile %s: max_headings must be >= 0", name)
		case p.MinConfidence < 0 || p.MinConfidence > 1:
			return fmt.Errorf("profile %s: min_confidence must be in [0,1]", name)
		case p.SelectConfidence < 0 || p.SelectConfidence > 1:
			return fmt.Errorf("profile %s: select_confidence must be in [0,1]", name)
		}
	}
	return nil
}

// MarshalProfiles renders every threshold of ps as YAML in the format
// LoadProfiles reads.
func MarshalProfiles(ps detect.Profiles) ([]byte, error) {
	f := profilesFile{Profiles: map[detect.Name]ProfileOverride{}}
	for name, p := range ps {
		f.Profiles[name] = ProfileOverride{
			H1Ratio: &p.H1Ratio, H2Ratio: &p.H2Ratio, H3Ratio: &p.H3Ratio,
			Epsilon: &p.Epsilon, MaxWords: &p.MaxWords, MinConfidence: &p.MinConfidence,
			MaxHeadings: &p.MaxHeadings, CaseSensitive: &p.CaseSensitive,
			SelectConfidence: &p.SelectConfidence, Weights: &p.Weights,
		}
	}
	return yaml.Marshal(f)
}
