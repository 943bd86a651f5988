package api

import (
	"maps"
	"slices"
)

const (
	RoutingEurope   = "europe"
	RoutingAmericas = "americas"
	RoutingAsia     = "asia"
	RoutingSEA      = "sea"
)

var regionRouting = map[string]string{
	"euw1": RoutingEurope,
	"eun1": RoutingEurope,
	"tr1":  RoutingEurope,
	"ru":   RoutingEurope,
	"na1":  RoutingAmericas,
	"br1":  RoutingAmericas,
	"la1":  RoutingAmericas,
	"la2":  RoutingAmericas,
	"kr":   RoutingAsia,
	"jp1":  RoutingAsia,
	"oc1":  RoutingSEA,
}

var defaultTagLines = map[string]string{
	"euw1": "EUW",
	"eun1": "EUNE",
	"na1":  "NA1",
	"kr":   "KR1",
	"br1":  "BR1",
	"jp1":  "JP1",
	"la1":  "LAN",
	"la2":  "LAS",
	"oc1":  "OCE",
	"tr1":  "TR1",
	"ru":   "RU",
}

// RoutingForRegion maps a platform region to its regional routing host.
// Unknown regions route to europe, matching the EUW default tag line.
func RoutingForRegion(region string) string {
	if routing, ok := regionRouting[region]; ok {
		return routing
	}
	return RoutingEurope
}

func DefaultTagLine(region string) string {
	if tag, ok := defaultTagLines[region]; ok {
		return tag
	}
	return "EUW"
}

func IsKnownRegion(region string) bool {
	_, ok := regionRouting[region]
	return ok
}

func IsKnownRouting(routing string) bool {
	switch routing {
	case RoutingEurope, RoutingAmericas, RoutingAsia, RoutingSEA:
		return true
	}
	return false
}

// Regions lists the known platform regions in sorted order.
func Regions() []string {
	return slices.Sorted(maps.Keys(regionRouting))
}
