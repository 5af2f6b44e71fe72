package grid

import (
	"math"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/carboniq/carboniq/internal/geography"
)

// Calibration targets: citywide total near NYC's GHG inventory scale
// (~55M tonnes/year, ~150k tonnes/day). Values are tonnes CO₂/km²/day.
const (
	urbanBaseIntensity = 29.0
	minIntensity       = 5.0
	waterAttenuation   = 0.05
)

// airport emission hotspots with Gaussian footprints.
var airports = []struct {
	name     string
	lat, lon float64
	peak     float64
	sigmaKM  float64
	cutoffKM float64
}{
	{"JFK", 40.6413, -73.7781, 1800, 2.0, 6.0},
	{"LaGuardia", 40.7769, -73.8740, 1200, 2.0, 6.0},
}

// Manhattan commercial hotspots with linear falloff.
var urbanHotspots = []struct {
	name      string
	lat, lon  float64
	intensity float64
	radiusKM  float64
}{
	{"Midtown/Times Square", 40.7580, -73.9855, 164, 3.0},
	{"Financial District", 40.7074, -74.0113, 146, 2.0},
	{"Upper West Side", 40.7870, -73.9754, 129, 2.0},
}

// borough centers drive the inverse-distance urban base. A slice, not a
// map: summation order must stay fixed so baseline values are
// bit-reproducible across restarts.
var boroughCenters = []struct {
	borough   geography.Borough
	lat, lon  float64
	intensity float64
}{
	{geography.BoroughManhattan, 40.7831, -73.9712, 1.5},
	{geography.BoroughBrooklyn, 40.6782, -73.9442, 1.2},
	{geography.BoroughQueens, 40.7282, -73.7949, 1.0},
	{geography.BoroughBronx, 40.8448, -73.8648, 1.1},
	{geography.BoroughStatenIsland, 40.5795, -74.1502, 0.7},
}

// sectors whose zone weights are precomputed per cell. SectorOther has a
// flat weight and needs no table entry.
var weightedSectors = []geography.Sector{
	geography.SectorTransport,
	geography.SectorBuildings,
	geography.SectorIndustry,
	geography.SectorEnergy,
	geography.SectorNature,
}

// DefaultResolution derives the lattice resolution for ~1 km² cells over
// the NYC bounding box.
func DefaultResolution() int {
	latKM := (geography.BoundsNorth - geography.BoundsSouth) * 111.0
	lonKM := (geography.BoundsEast - geography.BoundsWest) * 85.0
	return int(math.Max(latKM, lonKM)) + 1
}

// NewBaseline builds the synthetic baseline grid. It is called once at
// startup; a failure here is fatal since every downstream computation
// depends on a populated grid.
func NewBaseline(ref *geography.Reference, resolution int) (*Grid, error) {
	if ref == nil {
		return nil, eris.New("grid: geography reference is required")
	}
	if resolution <= 0 {
		resolution = DefaultResolution()
	}
	if resolution < 2 {
		return nil, eris.New("grid: resolution must be at least 2")
	}

	latStep := (geography.BoundsNorth - geography.BoundsSouth) / float64(resolution)
	lonStep := (geography.BoundsEast - geography.BoundsWest) / float64(resolution)
	cellArea := (latStep * 111.0) * (lonStep * 111.0 * math.Cos(40.7*math.Pi/180))

	lats := make([]float64, resolution)
	lons := make([]float64, resolution)
	for i := range lats {
		lats[i] = geography.BoundsSouth + float64(i)*(geography.BoundsNorth-geography.BoundsSouth)/float64(resolution-1)
	}
	for j := range lons {
		lons[j] = geography.BoundsWest + float64(j)*(geography.BoundsEast-geography.BoundsWest)/float64(resolution-1)
	}

	// Each row is a pure function of its latitude, so rows can be computed
	// concurrently without affecting the final ordering.
	values := make([][]float64, resolution)
	var eg errgroup.Group
	for i := range lats {
		i := i
		eg.Go(func() error {
			row := make([]float64, resolution)
			for j := range lons {
				row[j] = intensityAt(ref, lats[i], lons[j])
			}
			values[i] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, eris.Wrap(err, "grid: build baseline rows")
	}

	// Keep only cells inside a borough; ordering stays row-major.
	var cells []Cell
	for i := range lats {
		for j := range lons {
			borough, ok := ref.BoroughAt(lats[i], lons[j])
			if !ok {
				continue
			}
			cell := Cell{
				Index:         len(cells),
				Lat:           lats[i],
				Lon:           lons[j],
				Borough:       borough,
				Baseline:      values[i][j],
				Zones:         ref.ZoneVector(lats[i], lons[j]),
				SectorWeights: make(map[geography.Sector]float64, len(weightedSectors)),
			}
			for _, s := range weightedSectors {
				cell.SectorWeights[s] = ref.SectorWeight(s, lats[i], lons[j])
			}
			cells = append(cells, cell)
		}
	}

	if len(cells) == 0 {
		return nil, eris.New("grid: baseline produced no cells inside NYC boundaries")
	}

	g := &Grid{
		cells:       cells,
		resolution:  resolution,
		cellAreaKM2: cellArea,
		loadedAt:    time.Now().UTC(),
	}

	stats := g.StatsFor(g.Values())
	zap.L().Info("baseline grid loaded",
		zap.Int("resolution", resolution),
		zap.Int("cells", len(cells)),
		zap.Float64("cell_area_km2", cellArea),
		zap.Float64("total_tonnes_per_day", stats.TotalPerDay),
		zap.Float64("min_intensity", stats.MinIntensity),
		zap.Float64("max_intensity", stats.MaxIntensity),
	)

	return g, nil
}

// intensityAt computes the synthetic baseline emission intensity at a point,
// in tonnes CO₂/km²/day.
func intensityAt(ref *geography.Reference, lat, lon float64) float64 {
	v := 0.0

	for _, a := range airports {
		d := approxDistanceKM(lat, lon, a.lat, a.lon)
		if d <= a.cutoffKM {
			v += a.peak * math.Exp(-d*d/(2*a.sigmaKM*a.sigmaKM))
		}
	}

	for _, h := range urbanHotspots {
		d := approxDistanceKM(lat, lon, h.lat, h.lon)
		if d <= h.radiusKM {
			v += h.intensity * (1.0 - d/(h.radiusKM+1))
		}
	}

	// Fill non-hotspot cells from the borough-proximity urban base.
	if v < 1000 {
		v = math.Max(v, urbanBaseAt(lat, lon))
	}

	if ref.OverWater(lat, lon) {
		v = math.Max(minIntensity, v*waterAttenuation)
	}

	return math.Max(v, minIntensity)
}

// urbanBaseAt computes the borough-proximity base emission via inverse
// distance weighting in degree space. Brackets and factors are calibration
// values matching the citywide inventory target, not physical constants.
func urbanBaseAt(lat, lon float64) float64 {
	total := urbanBaseIntensity
	for _, c := range boroughCenters {
		d := math.Hypot(lat-c.lat, lon-c.lon)
		switch {
		case d < 0.05:
			total += c.intensity * 47
		case d < 0.15:
			total += c.intensity * 29 / (d*10 + 1)
		default:
			total += c.intensity * 18 / (d*20 + 1)
		}
	}
	return total
}

func approxDistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	const kmPerLatDeg = 111.0
	const kmPerLonDeg = 84.3
	return math.Hypot((lat1-lat2)*kmPerLatDeg, (lon1-lon2)*kmPerLonDeg)
}
