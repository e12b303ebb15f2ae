package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"
)

// Login starts a session for the given email. The password is only checked for length.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	a, err := r.application()
	if err != nil {
		return err
	}

	s, err := a.Login(cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Logged in as %s\n", s.Email)
	r.writePlain("User ID: %s\n", s.UserID)
	if s.LastPlaylistID != nil {
		if p, err := a.GetPlaylist(*s.LastPlaylistID); err == nil {
			r.writePlain("Last viewed playlist: %s\n", p.Name)
		}
	}
	return nil
}

// Logout ends the current session.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	a, err := r.application()
	if err != nil {
		return err
	}

	if _, ok := a.CurrentSession(); !ok {
		return r.writePlain("Not logged in\n")
	}
	a.Logout()
	return r.writePlain("✓ Logged out\n")
}

// Whoami prints the current session.
func (r *Runner) Whoami(ctx context.Context, cmd *cli.Command) error {
	a, err := r.application()
	if err != nil {
		return err
	}

	s, ok := a.CurrentSession()
	if cmd.Bool("json") {
		if !ok {
			return r.writeJSON(nil, false)
		}
		return r.writeJSON(s, cmd.Bool("pretty"))
	}
	if !ok {
		return r.writePlain("Not logged in\n")
	}

	r.writePlain("Email: %s\n", s.Email)
	r.writePlain("User ID: %s\n", s.UserID)
	r.writePlain("Last login: %s\n", s.LastLogin.Local().Format(time.RFC1123))
	if last, ok := a.LastViewedPlaylist(); ok {
		r.writePlain("Last viewed playlist: %s (%s)\n", last.Name, last.ID)
	}
	return nil
}
