package models

// RouteGroup is one route of one transport type, with the ordered stop ids
// of each of its directions.
type RouteGroup struct {
	Number     string              `json:"number"`
	Type       string              `json:"type"`
	Directions map[string][]string `json:"directions"`
}

func NewRouteGroup(routeType, number string) *RouteGroup {
	return &RouteGroup{
		Number:     number,
		Type:       routeType,
		Directions: make(map[string][]string, 2),
	}
}

// RouteIndex maps transport type to route number to route.
type RouteIndex map[string]map[string]*RouteGroup
