package geography

// boroughRings holds simplified borough outlines as closed linear rings in
// (lon, lat) order, WGS84. These are coarse footprints tightened to exclude
// most open water, not survey-grade boundaries; the simulation works at
// ~1 km² cell resolution so a few hundred meters of slop is immaterial.
//
// Where footprints overlap (Manhattan/Bronx along the Harlem River,
// Manhattan/Queens along the East River), membership is resolved by the
// canonical borough order, Manhattan first.
var boroughRings = map[Borough][]float64{
	BoroughManhattan: {
		-74.019, 40.700,
		-73.907, 40.700,
		-73.907, 40.880,
		-74.019, 40.880,
		-74.019, 40.700,
	},
	BoroughBrooklyn: {
		-74.042, 40.570,
		-73.833, 40.570,
		-73.833, 40.740,
		-74.042, 40.740,
		-74.042, 40.570,
	},
	BoroughQueens: {
		-73.962, 40.540,
		-73.700, 40.540,
		-73.700, 40.800,
		-73.962, 40.800,
		-73.962, 40.540,
	},
	BoroughBronx: {
		-73.933, 40.785,
		-73.765, 40.785,
		-73.765, 40.920,
		-73.933, 40.920,
		-73.933, 40.785,
	},
	BoroughStatenIsland: {
		-74.255, 40.495,
		-74.053, 40.495,
		-74.053, 40.651,
		-74.255, 40.651,
		-74.255, 40.495,
	},
}
