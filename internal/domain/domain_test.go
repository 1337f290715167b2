package domain

import (
	"time"
)

// testCatalog returns a small fixed catalog for tests, mirroring the real
// embedded tables closely enough to exercise every resolution path.
func testCatalog() *Catalog {
	games := map[string]Game{
		"sfv": {
			Name:            "sfv",
			Title:           "Street Fighter V",
			Aliases:         []string{"sf5"},
			Platforms:       []string{"ps4", "pc"},
			DefaultPlatform: "pc",
			Message:         "Another fight is coming your way!",
		},
		"st": {
			Name:            "st",
			Title:           "Super Turbo",
			Aliases:         []string{"sf2", "ssf2t"},
			Platforms:       []string{"ps4", "pc", "fc"},
			DefaultPlatform: "pc",
			Message:         "Here comes a new challenger!",
		},
		"sfa": {
			Name:            "sfa",
			Title:           "Street Fighter Alpha 2/3",
			Aliases:         []string{"sfa2", "sfa3"},
			Platforms:       []string{"pc", "fc"},
			DefaultPlatform: "fc",
			Message:         "Now, fight a new rival!",
		},
		"3s": {
			Name:            "3s",
			Title:           "3rd Strike",
			Aliases:         []string{"sf3", "sfiii", "3rdstrike"},
			Platforms:       []string{"ps4", "pc", "fc"},
			DefaultPlatform: "pc",
			Message:         "Now, fight a new rival!",
		},
	}
	aliases := map[string]string{
		"sfv": "sfv", "sf5": "sfv",
		"st": "st", "sf2": "st", "ssf2t": "st",
		"sfa": "sfa", "sfa2": "sfa", "sfa3": "sfa",
		"3s": "3s", "sf3": "3s", "sfiii": "3s", "3rdstrike": "3s",
	}
	return NewCatalog(games, aliases)
}

// testBeacon builds a beacon against the test catalog with overridable knobs
func testBeacon(gameName string, waitingHours float64, platformName string, start time.Time) Beacon {
	catalog := testCatalog()
	game, err := catalog.ResolveGame(gameName)
	if err != nil {
		panic(err)
	}
	platform, err := catalog.ResolvePlatform(platformName)
	if err != nil {
		panic(err)
	}
	return NewBeacon(
		"1234567890",
		"Test Dummy Name",
		game,
		WaitTimeFromHours(waitingHours),
		&platform,
		start,
	)
}
