package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/fakefy/internal/formatter"
	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/shared"
	"github.com/desertthunder/fakefy/internal/tasks"
	"github.com/urfave/cli/v3"
)

func (r *Runner) printTracks(cmd *cli.Command, title string, tracks []models.Track) error {
	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}
	if len(tracks) == 0 {
		return r.writePlain("No tracks found\n")
	}

	r.writePlainHeader(title)
	for i, t := range tracks {
		line := fmt.Sprintf("%3d. %-12s %s - %s", i+1, t.ID, t.Artist, t.Name)
		if views := t.Views(); views != "" {
			line += fmt.Sprintf("  (%s views)", views)
		}
		r.writePlain("%s\n", line)
	}
	return nil
}

func (r *Runner) printAlbums(cmd *cli.Command, albums []models.Album) error {
	if cmd.Bool("json") {
		return r.writeJSON(albums, cmd.Bool("pretty"))
	}
	if len(albums) == 0 {
		return r.writePlain("No albums found\n")
	}

	r.writePlainHeader(fmt.Sprintf("%d albums", len(albums)))
	for _, a := range albums {
		r.writePlain("%-12s %s - %s (%s)\n", a.ID, a.Artist, a.Name, orDash(a.Year))
	}
	return nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// SongsPopular fetches and ranks the popular aggregate, printing progress while artists are queried.
func (r *Runner) SongsPopular(ctx context.Context, cmd *cli.Command) error {
	a, err := r.application()
	if err != nil {
		return err
	}

	asJSON := cmd.Bool("json")
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if asJSON {
				continue
			}
			switch {
			case update.Phase == tasks.RankTracks:
				r.writePlain("📊 %s\n", update.Message)
			case update.Step == 0:
				r.writePlain("🎵 %s\n", update.Message)
			default:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	tracks, err := a.Catalog.Popular(ctx, progressCh)
	close(progressCh)
	<-done
	if err != nil {
		return err
	}

	tracks = tasks.Filter(tracks, cmd.String("genre"), cmd.String("year"))
	if limit := int(cmd.Int("limit")); limit > 0 && len(tracks) > limit {
		tracks = tracks[:limit]
	}

	if !asJSON {
		r.writePlain("\n")
	}
	return r.printTracks(cmd, fmt.Sprintf("Popular (%d tracks)", len(tracks)), tracks)
}

// SongsTop10 prints an artist's top tracks.
func (r *Runner) SongsTop10(ctx context.Context, cmd *cli.Command) error {
	artist, err := requireArg(cmd, "artist")
	if err != nil {
		return err
	}
	a, err := r.application()
	if err != nil {
		return err
	}

	tracks, err := a.Catalog.Top10(ctx, artist)
	if err != nil {
		return err
	}
	tracks = tasks.Filter(tracks, cmd.String("genre"), cmd.String("year"))
	return r.printTracks(cmd, "Top tracks: "+artist, tracks)
}

// SongsSearch runs the combined track and album search.
func (r *Runner) SongsSearch(ctx context.Context, cmd *cli.Command) error {
	q := tasks.SearchQuery{
		Artist: cmd.String("artist"),
		Title:  cmd.String("title"),
		Album:  cmd.String("album"),
	}
	if strings.TrimSpace(q.Title) == "" && strings.TrimSpace(q.Album) == "" {
		return fmt.Errorf("%w: --title or --album", shared.ErrMissingArgument)
	}

	a, err := r.application()
	if err != nil {
		return err
	}

	results, err := a.Catalog.Search(ctx, q, nil)
	if err != nil {
		return err
	}

	var tracks []models.Track
	var albums []models.Album
	for _, res := range results {
		switch res.Kind {
		case tasks.KindTrack:
			tracks = append(tracks, *res.Track)
		case tasks.KindAlbum:
			albums = append(albums, *res.Album)
		}
	}
	tracks = tasks.Filter(tracks, cmd.String("genre"), cmd.String("year"))

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"tracks": nonNil(tracks), "albums": nonNil(albums)}, cmd.Bool("pretty"))
	}

	if q.Title != "" {
		if err := r.printTracks(cmd, fmt.Sprintf("%d tracks", len(tracks)), tracks); err != nil {
			return err
		}
	}
	if q.Album != "" {
		if q.Title != "" {
			r.writePlain("\n")
		}
		return r.printAlbums(cmd, albums)
	}
	return nil
}

// SongsAlbums searches albums by artist and album name.
func (r *Runner) SongsAlbums(ctx context.Context, cmd *cli.Command) error {
	a, err := r.application()
	if err != nil {
		return err
	}

	albums, err := a.Catalog.SearchAlbums(ctx, cmd.String("artist"), cmd.String("album"))
	if err != nil {
		return err
	}
	return r.printAlbums(cmd, albums)
}

// SongsShow prints one track's details.
func (r *Runner) SongsShow(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "track-id")
	if err != nil {
		return err
	}
	a, err := r.application()
	if err != nil {
		return err
	}

	track, err := a.Catalog.LookupTrack(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(track, cmd.Bool("pretty"))
	}
	return r.writePlain("%s", formatter.TrackDetail(*track))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
