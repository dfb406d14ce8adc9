package adapter

import "context"

// Session is the surface an agent talks to. Implementations may run the
// dispatcher in-process or forward commands over a transport.
type Session interface {
	Execute(ctx context.Context, cmd Command) Response
}

// LocalSession forwards every command to one in-process Server.
type LocalSession struct {
	server *Server
}

var _ Session = (*LocalSession)(nil)

// NewLocalSession wraps the given server.
func NewLocalSession(server *Server) *LocalSession {
	return &LocalSession{server: server}
}

// Execute forwards to the underlying server.
func (s *LocalSession) Execute(ctx context.Context, cmd Command) Response {
	return s.server.Execute(ctx, cmd)
}
