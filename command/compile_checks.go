package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[StartSyncMessage]         = (*StartSyncCommand)(nil)
	_ gocmd.Commander[BeginHandshakeMessage]    = (*BeginHandshakeCommand)(nil)
	_ gocmd.Commander[CompleteHandshakeMessage] = (*CompleteHandshakeCommand)(nil)
)
