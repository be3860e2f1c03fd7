package apisports

type fixturesEnvelope struct {
	Response []fixtureItem `json:"response"`
}

type fixtureItem struct {
	Fixture fixtureData `json:"fixture"`
	League  namedEntity `json:"league"`
	Teams   teamPair    `json:"teams"`
}

type fixtureData struct {
	ID       int64      `json:"id"`
	Date     string     `json:"date"`
	Referee  string     `json:"referee"`
	Timezone string     `json:"timezone"`
	Venue    venueData  `json:"venue"`
	Status   statusData `json:"status"`
}

type venueData struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type statusData struct {
	Long  string `json:"long"`
	Short string `json:"short"`
}

type teamPair struct {
	Home namedEntity `json:"home"`
	Away namedEntity `json:"away"`
}

type namedEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
