package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/fakefy/internal/app"
	"github.com/desertthunder/fakefy/internal/formatter"
	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/shared"
	"github.com/desertthunder/fakefy/internal/tasks"
	"github.com/urfave/cli/v3"
)

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: <%s>", shared.ErrMissingArgument, name)
	}
	return v, nil
}

// resolve opens the application and resolves the playlist named by the ref argument.
func (r *Runner) resolve(cmd *cli.Command) (*app.App, models.Playlist, error) {
	ref, err := requireArg(cmd, "ref")
	if err != nil {
		return nil, models.Playlist{}, err
	}
	a, err := r.application()
	if err != nil {
		return nil, models.Playlist{}, err
	}
	p, err := a.FindPlaylist(ref)
	if err != nil {
		return nil, models.Playlist{}, err
	}
	return a, p, nil
}

// PlaylistsList prints the current user's playlists.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	a, err := r.application()
	if err != nil {
		return err
	}

	var playlists []models.Playlist
	switch {
	case cmd.Int("recent") > 0:
		playlists, err = a.RecentPlaylists(int(cmd.Int("recent")))
	case cmd.String("query") != "":
		playlists, err = a.SearchPlaylists(cmd.String("query"))
	default:
		playlists, err = a.ListPlaylists()
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}
	if len(playlists) == 0 {
		return r.writePlain("No playlists\n")
	}

	r.writePlainHeader(fmt.Sprintf("%d playlists", len(playlists)))
	for _, p := range playlists {
		r.writePlain("%-36s  %-30s  %3d tracks  updated %s\n",
			p.ID, p.Name, a.Playlists.TrackCount(p.ID), formatter.FormatTimestamp(p.UpdatedAt))
	}
	return nil
}

// PlaylistsCreate creates a playlist.
func (r *Runner) PlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	a, err := r.application()
	if err != nil {
		return err
	}

	p, err := a.CreatePlaylist(cmd.StringArg("name"))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Created playlist '%s' (%s)\n", p.Name, p.ID)
}

// PlaylistsRename renames a playlist.
func (r *Runner) PlaylistsRename(ctx context.Context, cmd *cli.Command) error {
	a, p, err := r.resolve(cmd)
	if err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if err := a.RenamePlaylist(p.ID, name); err != nil {
		return err
	}
	return r.writePlain("✓ Renamed '%s' to '%s'\n", p.Name, strings.TrimSpace(name))
}

// PlaylistsDelete deletes a playlist.
func (r *Runner) PlaylistsDelete(ctx context.Context, cmd *cli.Command) error {
	a, p, err := r.resolve(cmd)
	if err != nil {
		return err
	}

	if _, err := a.DeletePlaylist(p.ID); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted playlist '%s'\n", p.Name)
}

// PlaylistsClear deletes every playlist of the current user.
func (r *Runner) PlaylistsClear(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: pass --yes to delete all of your playlists", shared.ErrMissingArgument)
	}
	a, err := r.application()
	if err != nil {
		return err
	}

	n, err := a.ClearPlaylists()
	if err != nil {
		return err
	}
	return r.writePlain("✓ Removed %d playlists\n", n)
}

// PlaylistsShow prints a playlist and records it as the last viewed playlist.
func (r *Runner) PlaylistsShow(ctx context.Context, cmd *cli.Command) error {
	a, p, err := r.resolve(cmd)
	if err != nil {
		return err
	}

	p, err = a.OpenPlaylist(p.ID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(p, cmd.Bool("pretty"))
	}

	r.writePlainHeader(p.Name)
	r.writePlain("ID: %s\n", p.ID)
	r.writePlain("Created: %s\n", formatter.FormatTimestamp(&p.CreatedAt))
	r.writePlain("Updated: %s\n", formatter.FormatTimestamp(p.UpdatedAt))
	r.writePlain("Tracks: %d\n\n", a.Playlists.TrackCount(p.ID))
	for i, t := range p.Tracks {
		r.writePlain("%3d. %s - %s  [%s]\n", i+1, t.Artist, t.Name, t.ID)
	}
	return nil
}

// PlaylistsAdd looks the track up in the catalog and appends it to a playlist.
func (r *Runner) PlaylistsAdd(ctx context.Context, cmd *cli.Command) error {
	a, p, err := r.resolve(cmd)
	if err != nil {
		return err
	}

	trackID := strings.TrimSpace(cmd.String("track-id"))
	track, err := a.Catalog.LookupTrack(ctx, trackID)
	if err != nil {
		return err
	}

	added, err := a.AddTrack(p.ID, *track)
	if err != nil {
		return err
	}
	if !added {
		return r.writePlain("'%s' is already in '%s'\n", track.Name, p.Name)
	}
	return r.writePlain("✓ Added '%s - %s' to '%s'\n", track.Artist, track.Name, p.Name)
}

// PlaylistsRemove removes a track from a playlist.
func (r *Runner) PlaylistsRemove(ctx context.Context, cmd *cli.Command) error {
	a, p, err := r.resolve(cmd)
	if err != nil {
		return err
	}
	trackID, err := requireArg(cmd, "track-id")
	if err != nil {
		return err
	}

	removed, err := a.RemoveTrack(p.ID, trackID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s is not in '%s'", shared.ErrTrackNotFound, trackID, p.Name)
	}
	return r.writePlain("✓ Removed %s from '%s'\n", trackID, p.Name)
}

func parsePosition(cmd *cli.Command, name string) (int, error) {
	raw, err := requireArg(cmd, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: <%s> must be a positive number, got %q", shared.ErrInvalidArgument, name, raw)
	}
	return n - 1, nil
}

// PlaylistsMove moves a track within a playlist. Positions are 1-based.
func (r *Runner) PlaylistsMove(ctx context.Context, cmd *cli.Command) error {
	a, p, err := r.resolve(cmd)
	if err != nil {
		return err
	}
	from, err := parsePosition(cmd, "from")
	if err != nil {
		return err
	}
	to, err := parsePosition(cmd, "to")
	if err != nil {
		return err
	}

	moved, err := a.ReorderTrack(p.ID, from, to)
	if err != nil {
		return err
	}
	if !moved {
		return fmt.Errorf("%w: positions must be between 1 and %d", shared.ErrInvalidArgument, a.Playlists.TrackCount(p.ID))
	}
	return r.writePlain("✓ Moved '%s' to position %d\n", p.Tracks[from].Name, to+1)
}

// PlaylistsExport exports one playlist, or every playlist of the user when no ref is given.
func (r *Runner) PlaylistsExport(ctx context.Context, cmd *cli.Command) error {
	a, err := r.application()
	if err != nil {
		return err
	}

	var playlists []models.Playlist
	if ref := strings.TrimSpace(cmd.StringArg("ref")); ref != "" {
		p, err := a.FindPlaylist(ref)
		if err != nil {
			return err
		}
		playlists = []models.Playlist{p}
	} else if playlists, err = a.ListPlaylists(); err != nil {
		return err
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists to export\n")
	}

	opts := tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  r.config.Metadata.RateLimit,
		Covers:     cmd.Bool("covers"),
	}

	r.logger.Info("starting export", "playlists", len(playlists), "format", opts.Format)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if update.Step == 0 {
				r.writePlain("📦 %s\n", update.Message)
			} else {
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := a.Catalog.ExportPlaylists(ctx, progressCh, playlists, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Exported: %d/%d\n", result.SuccessfulExports, result.TotalPlaylists)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	if result.FailedExports > 0 {
		r.writePlainln("Failed to export %d playlists:", result.FailedExports)
		for _, res := range result.Results {
			if res.Error != nil {
				r.writePlain("  - %s: %v\n", res.PlaylistName, res.Error)
			}
		}
	}
	return nil
}

// PlaylistsOpen opens the video of a track in the playlist with the system browser.
func (r *Runner) PlaylistsOpen(ctx context.Context, cmd *cli.Command) error {
	_, p, err := r.resolve(cmd)
	if err != nil {
		return err
	}
	trackID, err := requireArg(cmd, "track-id")
	if err != nil {
		return err
	}

	for _, t := range p.Tracks {
		if t.ID != trackID {
			continue
		}
		if t.VideoURL == "" {
			return fmt.Errorf("%w: '%s' has no video", shared.ErrInvalidArgument, t.Name)
		}
		r.writePlain("Opening %s\n", t.VideoURL)
		return shared.OpenBrowser(t.VideoURL)
	}
	return fmt.Errorf("%w: %s is not in '%s'", shared.ErrTrackNotFound, trackID, p.Name)
}
