package ssh

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bts "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/pfassina/mdoutline/internal/config"
	"github.com/pfassina/mdoutline/internal/index"
	"github.com/pfassina/mdoutline/internal/vault"
)

// Server serves the outline browser over SSH.
type Server struct {
	server *ssh.Server
	cfg    config.Config
	logger *log.Logger
}

// New creates a new SSH server backed by db. The caller keeps db current.
func New(cfg config.Config, db *index.DB, logger *log.Logger) (*Server, error) {
	stateDir, err := vault.New(cfg.VaultPath).StateDir()
	if err != nil {
		return nil, err
	}
	hostKeyPath := filepath.Join(stateDir, "ssh_host_key")

	s, err := wish.NewServer(
		wish.WithAddress(cfg.Listen),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bts.Middleware(NewHandler(cfg, db, logger)),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	return &Server{server: s, cfg: cfg, logger: logger}, nil
}

// ListenAndServe starts the SSH server. It returns nil after Close.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.cfg.Listen)
	err := s.server.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Close stops the SSH server.
func (s *Server) Close() error {
	return s.server.Close()
}
