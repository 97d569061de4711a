// Package geo resolves location identifiers to coordinates from a YAML gazetteer.
package geo

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"logistics/internal/core/domain/model/kernel"

	"gopkg.in/yaml.v3"
)

//go:embed gazetteer.yaml
var defaultGazetteer []byte

type point struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

type document struct {
	Cities          map[string]point `yaml:"cities"`
	Pincodes        map[string]point `yaml:"pincodes"`
	PincodePrefixes map[string]point `yaml:"pincode_prefixes"`
}

// Gazetteer is an in-memory coordinate table. It implements services.Locator and is
// safe for concurrent use once loaded.
type Gazetteer struct {
	cities   map[string]kernel.Coordinates
	pincodes map[string]kernel.Coordinates
	prefixes map[string]kernel.Coordinates
}

// Default returns the gazetteer shipped with the binary.
func Default() (*Gazetteer, error) {
	return Load(bytes.NewReader(defaultGazetteer))
}

// LoadFile reads a gazetteer from path. An empty path means Default.
func LoadFile(path string) (*Gazetteer, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gazetteer: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML document with cities, pincodes and pincode_prefixes sections.
// Every coordinate is validated.
func Load(r io.Reader) (*Gazetteer, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode gazetteer: %w", err)
	}

	g := &Gazetteer{}
	var err error
	if g.cities, err = convert("cities", doc.Cities); err != nil {
		return nil, err
	}
	if g.pincodes, err = convert("pincodes", doc.Pincodes); err != nil {
		return nil, err
	}
	if g.prefixes, err = convert("pincode_prefixes", doc.PincodePrefixes); err != nil {
		return nil, err
	}
	return g, nil
}

func convert(section string, in map[string]point) (map[string]kernel.Coordinates, error) {
	out := make(map[string]kernel.Coordinates, len(in))
	for key, p := range in {
		c, err := kernel.NewCoordinates(p.Lat, p.Lon)
		if err != nil {
			return nil, fmt.Errorf("gazetteer %s[%q]: %w", section, key, err)
		}
		out[normalize(key)] = c
	}
	return out, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (g *Gazetteer) LocateCity(city, state string) (kernel.Coordinates, bool) {
	c, ok := g.cities[normalize(city)+", "+normalize(state)]
	return c, ok
}

func (g *Gazetteer) LocatePincode(pincode string) (kernel.Coordinates, bool) {
	c, ok := g.pincodes[normalize(pincode)]
	return c, ok
}

func (g *Gazetteer) LocatePincodePrefix(prefix string) (kernel.Coordinates, bool) {
	c, ok := g.prefixes[normalize(prefix)]
	return c, ok
}

// Size reports how many entries each section holds.
func (g *Gazetteer) Size() (cities, pincodes, prefixes int) {
	return len(g.cities), len(g.pincodes), len(g.prefixes)
}
