package ssh

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	bts "github.com/charmbracelet/wish/bubbletea"

	"github.com/pfassina/mdoutline/internal/app"
	"github.com/pfassina/mdoutline/internal/config"
	"github.com/pfassina/mdoutline/internal/index"
)

// PollInterval is how often a session re-reads the shared index.
const PollInterval = 2 * time.Second

// NewHandler returns a Bubble Tea handler for SSH sessions. Every session
// gets its own App reading the shared index.
func NewHandler(cfg config.Config, db *index.DB, logger *log.Logger) bts.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())

		a := app.New(cfg, app.Deps{
			DB:     db,
			Logger: logger.With("user", sess.User()),
			Poll:   PollInterval,
		})

		opts := []tea.ProgramOption{
			tea.WithAltScreen(),
		}
		opts = append(opts, bts.MakeOptions(sess)...)

		return a, opts
	}
}
