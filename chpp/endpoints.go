package chpp

import (
	"fmt"
	"strings"
)

// Endpoint describes one gateway file together with the protocol version the
// module speaks. Versions are pinned: the gateway changes payload shapes
// between versions without notice.
type Endpoint struct {
	Name        string
	Version     string
	Description string
	DocsURL     string
}

var (
	EndpointTeamDetails = Endpoint{
		Name:        "teamdetails",
		Version:     "3.8",
		Description: "Team information",
		DocsURL:     "https://www84.hattrick.org/Community/CHPP/NewDocs/File.aspx?name=teamdetails",
	}
	EndpointWorldDetails = Endpoint{
		Name:        "worlddetails",
		Version:     "1.9",
		Description: "General information about all countries in the game world",
		DocsURL:     "https://www84.hattrick.org/Community/CHPP/NewDocs/File.aspx?name=worlddetails",
	}
	EndpointPlayers = Endpoint{
		Name:        "players",
		Version:     "2.8",
		Description: "Players of a team",
		DocsURL:     "https://www84.hattrick.org/Community/CHPP/NewDocs/File.aspx?name=players",
	}
	EndpointPlayerDetails = Endpoint{
		Name:        "playerdetails",
		Version:     "3.2",
		Description: "Detailed information for a player",
		DocsURL:     "https://www84.hattrick.org/Community/CHPP/NewDocs/File.aspx?name=playerdetails",
	}
	EndpointMatchDetails = Endpoint{
		Name:        "matchdetails",
		Version:     "3.1",
		Description: "Match details",
		DocsURL:     "https://www84.hattrick.org/Community/CHPP/NewDocs/File.aspx?name=matchdetails",
	}
	EndpointMatches = Endpoint{
		Name:        "matches",
		Version:     "2.9",
		Description: "List of matches",
		DocsURL:     "https://www84.hattrick.org/Community/CHPP/NewDocs/File.aspx?name=matches",
	}
	EndpointEconomy = Endpoint{
		Name:        "economy",
		Version:     "1.4",
		Description: "Team economy",
		DocsURL:     "https://www84.hattrick.org/Community/CHPP/NewDocs/File.aspx?name=economy",
	}
	EndpointArenaDetails = Endpoint{
		Name:        "arenadetails",
		Version:     "1.7",
		Description: "Arena information",
		DocsURL:     "https://www84.hattrick.org/Community/CHPP/NewDocs/File.aspx?name=arenadetails",
	}
	EndpointTraining = Endpoint{
		Name:        "training",
		Version:     "2.2",
		Description: "Training information",
		DocsURL:     "https://www84.hattrick.org/Community/CHPP/NewDocs/File.aspx?name=training",
	}
	EndpointAvatars = Endpoint{
		Name:        "avatars",
		Version:     "1.1",
		Description: "Avatars for all players of the caller's team",
		DocsURL:     "https://www84.hattrick.org/Community/CHPP/NewDocs/File.aspx?name=avatars",
	}
)

var endpointRegistry = func() map[string]Endpoint {
	all := []Endpoint{
		EndpointTeamDetails,
		EndpointWorldDetails,
		EndpointPlayers,
		EndpointPlayerDetails,
		EndpointMatchDetails,
		EndpointMatches,
		EndpointEconomy,
		EndpointArenaDetails,
		EndpointTraining,
		EndpointAvatars,
	}
	registry := make(map[string]Endpoint, len(all))
	for _, endpoint := range all {
		registry[endpoint.Name] = endpoint
	}
	return registry
}()

// LookupEndpoint resolves an endpoint by file name.
func LookupEndpoint(name string) (Endpoint, error) {
	endpoint, ok := endpointRegistry[strings.TrimSpace(strings.ToLower(name))]
	if !ok {
		return Endpoint{}, fmt.Errorf("chpp: unknown endpoint %q", name)
	}
	return endpoint, nil
}

// Endpoints returns every registered endpoint.
func Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(endpointRegistry))
	for _, endpoint := range endpointRegistry {
		out = append(out, endpoint)
	}
	return out
}
