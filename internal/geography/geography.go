// Package geography holds the static NYC reference tables used by the
// simulation engine: borough boundaries, sector zone anchors, and water
// masks. Everything here is read-only after Load.
package geography

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// NYC bounding box, WGS84.
const (
	BoundsSouth = 40.49
	BoundsNorth = 40.92
	BoundsWest  = -74.26
	BoundsEast  = -73.70
)

// Borough identifies one of the five NYC boroughs, or the whole city.
type Borough string

const (
	BoroughAll          Borough = "all"
	BoroughManhattan    Borough = "manhattan"
	BoroughBrooklyn     Borough = "brooklyn"
	BoroughQueens       Borough = "queens"
	BoroughBronx        Borough = "bronx"
	BoroughStatenIsland Borough = "staten_island"
)

// Boroughs lists the five boroughs in canonical order.
var Boroughs = []Borough{
	BoroughManhattan,
	BoroughBrooklyn,
	BoroughQueens,
	BoroughBronx,
	BoroughStatenIsland,
}

// ParseBorough maps free-form borough text to a Borough. Unrecognized input
// resolves to BoroughAll rather than failing: an unknown target widens the
// intervention to the whole city.
func ParseBorough(s string) Borough {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manhattan":
		return BoroughManhattan
	case "brooklyn":
		return BoroughBrooklyn
	case "queens":
		return BoroughQueens
	case "bronx", "the bronx":
		return BoroughBronx
	case "staten island", "staten_island", "statenisland":
		return BoroughStatenIsland
	default:
		return BoroughAll
	}
}

// DisplayName returns the human-readable borough name.
func (b Borough) DisplayName() string {
	switch b {
	case BoroughManhattan:
		return "Manhattan"
	case BoroughBrooklyn:
		return "Brooklyn"
	case BoroughQueens:
		return "Queens"
	case BoroughBronx:
		return "Bronx"
	case BoroughStatenIsland:
		return "Staten Island"
	default:
		return "citywide"
	}
}

// Sector identifies the intervention sector.
type Sector string

const (
	SectorTransport Sector = "transport"
	SectorBuildings Sector = "buildings"
	SectorIndustry  Sector = "industry"
	SectorEnergy    Sector = "energy"
	SectorNature    Sector = "nature"
	SectorOther     Sector = "other"
)

// ParseSector maps free-form sector text to a Sector. Unrecognized input
// resolves to SectorOther (flat spatial weighting).
func ParseSector(s string) Sector {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transport", "transportation":
		return SectorTransport
	case "buildings", "building":
		return SectorBuildings
	case "industry", "industrial":
		return SectorIndustry
	case "energy", "aviation":
		return SectorEnergy
	case "nature":
		return SectorNature
	default:
		return SectorOther
	}
}

// ZoneClass categorizes a zone anchor by land use.
type ZoneClass string

const (
	ZoneCommercial  ZoneClass = "commercial"
	ZoneResidential ZoneClass = "residential"
	ZoneIndustrial  ZoneClass = "industrial"
	ZoneTransit     ZoneClass = "transit"
	ZoneEnergy      ZoneClass = "energy"
	ZonePark        ZoneClass = "park"
)

// zoneClasses lists all classes in canonical order.
var zoneClasses = []ZoneClass{
	ZoneCommercial, ZoneResidential, ZoneIndustrial,
	ZoneTransit, ZoneEnergy, ZonePark,
}

// Reference is the loaded, immutable geography reference.
type Reference struct {
	boroughs  map[Borough]*geom.Polygon
	anchors   map[ZoneClass][]Anchor
	sectorMix map[Sector]map[ZoneClass]float64
	falloffKM float64
	floor     float64
}

// Load parses the embedded zone tables and builds the borough polygons.
func Load() (*Reference, error) {
	tables, err := loadZoneTables()
	if err != nil {
		return nil, eris.Wrap(err, "geography: load zone tables")
	}

	boroughs := make(map[Borough]*geom.Polygon, len(boroughRings))
	for b, ring := range boroughRings {
		poly := geom.NewPolygon(geom.XY).SetSRID(4326)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, ring)); err != nil {
			return nil, eris.Wrapf(err, "geography: build %s polygon", b)
		}
		boroughs[b] = poly
	}

	return &Reference{
		boroughs:  boroughs,
		anchors:   tables.anchorsByClass(),
		sectorMix: tables.sectorMix(),
		falloffKM: tables.FalloffKM,
		floor:     tables.Floor,
	}, nil
}

// BoroughAt returns the borough containing the point, or false when the
// point falls outside every borough boundary.
func (r *Reference) BoroughAt(lat, lon float64) (Borough, bool) {
	pt := geom.Coord{lon, lat}
	for _, b := range Boroughs {
		poly := r.boroughs[b]
		if xy.IsPointInRing(geom.XY, pt, poly.LinearRing(0).FlatCoords()) {
			return b, true
		}
	}
	return BoroughAll, false
}

// InCity reports whether the point lies inside any borough.
func (r *Reference) InCity(lat, lon float64) bool {
	_, ok := r.BoroughAt(lat, lon)
	return ok
}

// OverWater reports whether the point sits over the Hudson, the East River,
// or New York Harbor. Coarse boxes, sufficient for baseline attenuation.
func (r *Reference) OverWater(lat, lon float64) bool {
	// Hudson River, west of Manhattan.
	if lon < -74.02 && lat > 40.70 && lat < 40.88 {
		return true
	}
	// East River.
	if lon > -73.98 && lon < -73.93 && lat > 40.70 && lat < 40.80 {
		return true
	}
	// New York Harbor.
	if lat < 40.62 && lon > -74.05 && lon < -74.00 {
		return true
	}
	return false
}

// ZoneProximity returns a 0..1 proximity score of the point to the nearest
// anchors of the given class: 1 at an anchor, decaying with a Gaussian
// falloff, never below the configured floor.
func (r *Reference) ZoneProximity(class ZoneClass, lat, lon float64) float64 {
	best := 0.0
	for _, a := range r.anchors[class] {
		p := a.Weight * gaussianFalloff(distanceKM(lat, lon, a.Lat, a.Lon), r.falloffKM)
		if p > best {
			best = p
		}
	}
	if best < r.floor {
		return r.floor
	}
	return best
}

// SectorWeight combines class proximities into a single per-sector zone
// weight for the point. SectorOther gets a flat unit weight: no zone bias.
func (r *Reference) SectorWeight(sector Sector, lat, lon float64) float64 {
	mix, ok := r.sectorMix[sector]
	if !ok {
		return 1.0
	}
	// Sum in canonical class order; map iteration would let the last ulp
	// drift between calls.
	w := 0.0
	for _, class := range zoneClasses {
		scale, ok := mix[class]
		if !ok {
			continue
		}
		w += scale * r.ZoneProximity(class, lat, lon)
	}
	if w < r.floor {
		return r.floor
	}
	return w
}

// ZoneVector returns the proximity score for every zone class at the point,
// in canonical class order. Precomputed per grid cell at startup.
func (r *Reference) ZoneVector(lat, lon float64) map[ZoneClass]float64 {
	out := make(map[ZoneClass]float64, len(zoneClasses))
	for _, class := range zoneClasses {
		out[class] = r.ZoneProximity(class, lat, lon)
	}
	return out
}

// distanceKM approximates planar distance in kilometers at NYC's latitude.
// go-geom's xy.Distance works in coordinate space; degrees are rescaled so
// one unit is one kilometer before measuring.
func distanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	const kmPerLatDeg = 111.0
	const kmPerLonDeg = 84.3 // 111 * cos(40.7°)
	a := geom.Coord{lon1 * kmPerLonDeg, lat1 * kmPerLatDeg}
	b := geom.Coord{lon2 * kmPerLonDeg, lat2 * kmPerLatDeg}
	return xy.Distance(a, b)
}

func gaussianFalloff(distKM, falloffKM float64) float64 {
	if falloffKM <= 0 {
		falloffKM = 3.0
	}
	x := distKM / falloffKM
	return math.Exp(-x * x / 2)
}
