package chpp

import "github.com/goliatone/go-chpp/core"

type Config = core.Config

type ConsumerCredentials = core.ConsumerCredentials
type RequestToken = core.RequestToken
type AccessToken = core.AccessToken

type Generation = core.Generation
type GenerationStatus = core.GenerationStatus
type TeamDetails = core.TeamDetails
type WorldDetails = core.WorldDetails
type Team = core.Team
type User = core.User
type Player = core.Player
type Roster = core.Roster
type TeamSummary = core.TeamSummary

type Client = core.Client
type Handshake = core.Handshake
type TransportAdapter = core.TransportAdapter
type ProgressFunc = core.ProgressFunc

type SecretStore = core.SecretStore
type GenerationStore = core.GenerationStore
type TeamStore = core.TeamStore
type WorldStore = core.WorldStore
type PlayerStore = core.PlayerStore
type TeamReader = core.TeamReader
type PlayerReader = core.PlayerReader

const (
	GenerationStatusInProgress = core.GenerationStatusInProgress
	GenerationStatusCompleted  = core.GenerationStatusCompleted
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}
