package strategy

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type document struct {
	Name    string                 `yaml:"name"`
	Hard    map[int]map[int]Action `yaml:"hard"`
	Soft    map[int]map[int]Action `yaml:"soft"`
	Split   map[int]map[int]Action `yaml:"split"`
	Betting bettingDocument        `yaml:"betting"`
}

type bettingDocument struct {
	Multipliers []float64 `yaml:"multipliers"`
	Thresholds  []float64 `yaml:"thresholds"`
}

// Load reads a strategy from a YAML file.
func Load(path string) (*Strategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy: %w", err)
	}
	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode parses a YAML strategy document. Unknown fields are rejected.
func Decode(r io.Reader) (*Strategy, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse strategy: %w", err)
	}

	betting, err := NewBettingPolicy(doc.Betting.Multipliers, doc.Betting.Thresholds)
	if err != nil {
		return nil, err
	}
	return New(doc.Name, Tables{Hard: doc.Hard, Soft: doc.Soft, Split: doc.Split}, betting)
}

// Encode writes the strategy as a YAML document that Decode accepts.
func Encode(w io.Writer, s *Strategy) error {
	t := s.Tables()
	doc := document{
		Name:  s.Name(),
		Hard:  t.Hard,
		Soft:  t.Soft,
		Split: t.Split,
		Betting: bettingDocument{
			Multipliers: s.betting.Multipliers(),
			Thresholds:  s.betting.Thresholds(),
		},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode strategy: %w", err)
	}
	return enc.Close()
}
