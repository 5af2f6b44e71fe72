package geography

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed zones.yaml
var zonesYAML []byte

// Anchor is a weighted site that concentrates activity for a zone class.
type Anchor struct {
	Name   string    `yaml:"name"`
	Class  ZoneClass `yaml:"class"`
	Lat    float64   `yaml:"lat"`
	Lon    float64   `yaml:"lon"`
	Weight float64   `yaml:"weight"`
}

// zoneTables is the on-disk shape of zones.yaml.
type zoneTables struct {
	FalloffKM float64                       `yaml:"falloff_km"`
	Floor     float64                       `yaml:"floor"`
	Anchors   []Anchor                      `yaml:"anchors"`
	SectorMix map[string]map[string]float64 `yaml:"sector_mix"`
}

func loadZoneTables() (*zoneTables, error) {
	var t zoneTables
	if err := yaml.Unmarshal(zonesYAML, &t); err != nil {
		return nil, eris.Wrap(err, "geography: parse zones.yaml")
	}
	if len(t.Anchors) == 0 {
		return nil, eris.New("geography: zones.yaml has no anchors")
	}
	if t.FalloffKM <= 0 {
		t.FalloffKM = 3.0
	}
	if t.Floor <= 0 {
		t.Floor = 0.1
	}
	return &t, nil
}

func (t *zoneTables) anchorsByClass() map[ZoneClass][]Anchor {
	out := make(map[ZoneClass][]Anchor)
	for _, a := range t.Anchors {
		out[a.Class] = append(out[a.Class], a)
	}
	return out
}

func (t *zoneTables) sectorMix() map[Sector]map[ZoneClass]float64 {
	out := make(map[Sector]map[ZoneClass]float64, len(t.SectorMix))
	for sector, mix := range t.SectorMix {
		m := make(map[ZoneClass]float64, len(mix))
		for class, scale := range mix {
			m[ZoneClass(class)] = scale
		}
		out[ParseSector(sector)] = m
	}
	return out
}
