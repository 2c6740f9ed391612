package chpp

import (
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// Subscribe registers every wired command and query handler with the
// go-command dispatcher so hosts can route by message type. Read queries
// that were skipped for write-only stores are not subscribed.
func (s *Service) Subscribe(runnerOpts ...runner.Option) []commanddispatcher.Subscription {
	if s == nil {
		return nil
	}

	var subscriptions []commanddispatcher.Subscription
	if s.commands.StartSync != nil {
		subscriptions = append(subscriptions, commanddispatcher.SubscribeCommand(s.commands.StartSync, runnerOpts...))
	}
	if s.commands.BeginHandshake != nil {
		subscriptions = append(subscriptions, commanddispatcher.SubscribeCommand(s.commands.BeginHandshake, runnerOpts...))
	}
	if s.commands.CompleteHandshake != nil {
		subscriptions = append(subscriptions, commanddispatcher.SubscribeCommand(s.commands.CompleteHandshake, runnerOpts...))
	}
	if s.queries.LatestGeneration != nil {
		subscriptions = append(subscriptions, commanddispatcher.SubscribeQuery(s.queries.LatestGeneration, runnerOpts...))
	}
	if s.queries.ListTeams != nil {
		subscriptions = append(subscriptions, commanddispatcher.SubscribeQuery(s.queries.ListTeams, runnerOpts...))
	}
	if s.queries.GetTeam != nil {
		subscriptions = append(subscriptions, commanddispatcher.SubscribeQuery(s.queries.GetTeam, runnerOpts...))
	}
	if s.queries.ListPlayers != nil {
		subscriptions = append(subscriptions, commanddispatcher.SubscribeQuery(s.queries.ListPlayers, runnerOpts...))
	}
	return subscriptions
}

// Unsubscribe releases subscriptions returned by Subscribe.
func Unsubscribe(subscriptions []commanddispatcher.Subscription) {
	for _, subscription := range subscriptions {
		if subscription != nil {
			subscription.Unsubscribe()
		}
	}
}
