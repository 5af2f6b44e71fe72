package pattern

import "github.com/carboniq/carboniq/internal/geography"

// adjustment tilts cell weights toward or away from a zone class. A positive
// scale amplifies the change near anchors of that class; a negative scale
// shields them.
type adjustment struct {
	class geography.ZoneClass
	scale float64
}

// keywordAdjustments localizes the change pattern by prompt keyword. A taxi
// scenario concentrates around commercial districts and spares residential
// blocks; a subway scenario tracks transit hubs.
var keywordAdjustments = map[string][]adjustment{
	"taxi":    {{geography.ZoneCommercial, 0.5}, {geography.ZoneResidential, -0.3}},
	"taxis":   {{geography.ZoneCommercial, 0.5}, {geography.ZoneResidential, -0.3}},
	"cab":     {{geography.ZoneCommercial, 0.5}, {geography.ZoneResidential, -0.3}},
	"cabs":    {{geography.ZoneCommercial, 0.5}, {geography.ZoneResidential, -0.3}},
	"traffic": {{geography.ZoneCommercial, 0.4}, {geography.ZoneTransit, 0.3}},
	"congestion": {
		{geography.ZoneCommercial, 0.4}, {geography.ZoneTransit, 0.3},
	},
	"bus":      {{geography.ZoneTransit, 0.5}},
	"buses":    {{geography.ZoneTransit, 0.5}},
	"subway":   {{geography.ZoneTransit, 0.6}},
	"rail":     {{geography.ZoneTransit, 0.6}},
	"transit":  {{geography.ZoneTransit, 0.5}},
	"aviation": {{geography.ZoneTransit, 0.6}},
	"airport":  {{geography.ZoneTransit, 0.6}},
	"flight":   {{geography.ZoneTransit, 0.6}},
	"flights":  {{geography.ZoneTransit, 0.6}},
	"jfk":      {{geography.ZoneTransit, 0.6}},
	"lga":      {{geography.ZoneTransit, 0.6}},
	"ev":       {{geography.ZoneCommercial, 0.3}, {geography.ZoneResidential, 0.2}},
	"evs":      {{geography.ZoneCommercial, 0.3}, {geography.ZoneResidential, 0.2}},
	"electric": {{geography.ZoneCommercial, 0.3}, {geography.ZoneResidential, 0.2}},
	"solar":    {{geography.ZoneResidential, 0.4}, {geography.ZoneCommercial, 0.3}},
	"wind":     {{geography.ZoneEnergy, 0.4}},
	"renewable": {
		{geography.ZoneEnergy, 0.4}, {geography.ZoneCommercial, 0.2},
	},
	"renewables": {
		{geography.ZoneEnergy, 0.4}, {geography.ZoneCommercial, 0.2},
	},
	"green roof":  {{geography.ZoneCommercial, 0.5}},
	"green roofs": {{geography.ZoneCommercial, 0.5}},
	"tree":        {{geography.ZonePark, 0.5}, {geography.ZoneResidential, 0.3}},
	"trees":       {{geography.ZonePark, 0.5}, {geography.ZoneResidential, 0.3}},
	"park":        {{geography.ZonePark, 0.6}},
	"parks":       {{geography.ZonePark, 0.6}},
	"garden":      {{geography.ZonePark, 0.4}, {geography.ZoneResidential, 0.3}},
	"gardens":     {{geography.ZonePark, 0.4}, {geography.ZoneResidential, 0.3}},
	"factory":     {{geography.ZoneIndustrial, 0.6}},
	"factories":   {{geography.ZoneIndustrial, 0.6}},
	"industrial":  {{geography.ZoneIndustrial, 0.6}},
	"port":        {{geography.ZoneIndustrial, 0.5}},
	"ports":       {{geography.ZoneIndustrial, 0.5}},
	"warehouse":   {{geography.ZoneIndustrial, 0.5}},
	"warehouses":  {{geography.ZoneIndustrial, 0.5}},
	"heating":     {{geography.ZoneResidential, 0.4}, {geography.ZoneCommercial, 0.3}},
	"boiler":      {{geography.ZoneResidential, 0.4}},
	"boilers":     {{geography.ZoneResidential, 0.4}},
	"insulation":  {{geography.ZoneResidential, 0.4}},
	"retrofit":    {{geography.ZoneCommercial, 0.4}, {geography.ZoneResidential, 0.3}},
	"retrofits":   {{geography.ZoneCommercial, 0.4}, {geography.ZoneResidential, 0.3}},
	"office":      {{geography.ZoneCommercial, 0.5}},
	"offices":     {{geography.ZoneCommercial, 0.5}},
	"power plant": {{geography.ZoneEnergy, 0.7}},
	"power plants": {
		{geography.ZoneEnergy, 0.7},
	},
}
