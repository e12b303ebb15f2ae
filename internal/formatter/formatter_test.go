package formatter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/fakefy/internal/models"
	th "github.com/desertthunder/fakefy/internal/testing"
)

func fixture() models.Playlist {
	created := models.NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	updated := models.NewTimestamp(time.Date(2024, 1, 3, 3, 4, 5, 0, time.UTC))
	return models.Playlist{
		ID:        "test123",
		Name:      "Test Playlist",
		OwnerID:   "u1",
		CreatedAt: created,
		UpdatedAt: &updated,
		Tracks: []models.Track{
			{
				ID:       "track1",
				Name:     "Song One",
				Artist:   "Artist One",
				Album:    "Album One",
				Genre:    "Rock",
				Year:     "1999",
				Thumb:    "https://img/one.jpg",
				VideoURL: "https://video/one",
				Stats:    &models.TrackStats{Views: "1000"},
			},
			{
				ID:     "track2",
				Name:   "Song Two",
				Artist: "Artist Two",
			},
		},
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"json", "csv", "markdown", "txt"} {
		if !ValidFormat(f) {
			t.Errorf("expected %s to be valid", f)
		}
	}
	if ValidFormat("xml") {
		t.Error("expected xml to be invalid")
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(fixture())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Name,Artist,Album,Genre,Year,Views,Video") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "track1,Song One,Artist One,Album One,Rock,1999,1000,https://video/one") {
			t.Errorf("CSV missing track1 row, got: %s", output)
		}
		if !strings.Contains(output, "track2,Song Two,Artist Two,,,,,") {
			t.Errorf("CSV missing track2 row, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(fixture(), "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)
			for _, want := range []string{
				"# Test Playlist",
				"**Tracks**: 2",
				"## Tracks",
				"1. Artist One - Song One (Album One) [1999]",
				"2. Artist Two - Song Two\n",
			} {
				if !strings.Contains(output, want) {
					t.Errorf("Markdown missing %q, got: %s", want, output)
				}
			}
			if strings.Contains(output, "![Cover]") {
				t.Error("Markdown should not include a cover")
			}
		})

		t.Run("with cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(fixture(), "cover.jpg")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}
			if !strings.Contains(string(data), "![Cover](cover.jpg)") {
				t.Error("Markdown missing cover image")
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(fixture())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "Playlist: Test Playlist\nTracks: 2\n\n") {
			t.Errorf("unexpected header, got: %s", output)
		}
		if !strings.Contains(output, "1. Artist One - Song One\n2. Artist Two - Song Two\n") {
			t.Errorf("unexpected track lines, got: %s", output)
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(fixture())
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		var meta PlaylistMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if meta.ID != "test123" || meta.TrackCount != 2 || meta.OwnerID != "u1" {
			t.Errorf("unexpected metadata %+v", meta)
		}
		if meta.CreatedAt != "2024-01-02T03:04:05Z" || meta.UpdatedAt != "2024-01-03T03:04:05Z" {
			t.Errorf("unexpected timestamps %+v", meta)
		}
		if strings.Contains(string(data), "track1") {
			t.Error("metadata should not include tracks")
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(fixture())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		output := string(data)
		for _, key := range []string{`"nome": "Test Playlist"`, `"usuarioId": "u1"`, `"musicas": [`, `"createdAt": 1704164645000`} {
			if !strings.Contains(output, key) {
				t.Errorf("JSON missing %s, got: %s", key, output)
			}
		}

		var back models.Playlist
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(back.Tracks) != 2 || back.Tracks[0].Views() != "1000" {
			t.Errorf("expected tracks to survive, got %+v", back.Tracks)
		}
	})
}

func TestTrackDetail(t *testing.T) {
	t.Run("full track", func(t *testing.T) {
		tr := fixture().Tracks[0]
		tr.Description = "  A classic.  "
		tr.Stats = &models.TrackStats{Plays: "5", Views: "1000", Loved: "2"}

		out := TrackDetail(tr)
		for _, want := range []string{
			"Song One - Artist One",
			"Album:  Album One",
			"Genre:  Rock",
			"Mood:   -",
			"Video:  https://video/one",
			"5 plays | 1000 views | 2 loved",
			"A classic.",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("detail missing %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("minimal track", func(t *testing.T) {
		out := TrackDetail(th.NewTrack("t1", "Name", "Artist"))
		if strings.Contains(out, "plays") {
			t.Errorf("expected no stats line, got:\n%s", out)
		}
		if !strings.Contains(out, "Album:  -") {
			t.Errorf("expected dash for missing album, got:\n%s", out)
		}
	})
}

func TestCoverURL(t *testing.T) {
	p := fixture()
	if got := CoverURL(p); got != "https://img/one.jpg" {
		t.Errorf("expected first thumbnail, got %s", got)
	}

	p.Tracks[0].Thumb = ""
	if got := CoverURL(p); got != "" {
		t.Errorf("expected empty cover, got %s", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(nil); got != "-" {
		t.Errorf("expected dash for nil, got %s", got)
	}
	ts := models.NewTimestamp(time.Now())
	if got := FormatTimestamp(&ts); got == "-" || got == "" {
		t.Errorf("expected formatted time, got %q", got)
	}
}

func TestDownloadImage(t *testing.T) {
	t.Run("EmptyURL", func(t *testing.T) {
		_, err := DownloadImage("")
		if err == nil {
			t.Error("expected error for empty URL")
		}
	})

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("jpegbytes"))
		}))
		defer server.Close()

		data, err := DownloadImage(server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "jpegbytes" {
			t.Errorf("unexpected body %s", data)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		if _, err := DownloadImage(server.URL); err == nil || !strings.Contains(err.Error(), "status 404") {
			t.Errorf("expected status error, got %v", err)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			dir := t.TempDir()
			oldWd := th.MustGetwd(t)
			defer th.MustChdir(t, oldWd)
			th.MustChdir(t, dir)

			result, err := WriteCSVExport(fixture(), "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}
			if result.TracksFile != "test123_tracks.csv" {
				t.Errorf("expected default tracks file, got %s", result.TracksFile)
			}
			if result.MetadataFile != "test123_metadata.json" {
				t.Errorf("expected default metadata file, got %s", result.MetadataFile)
			}
			th.AssertFileExists(t, filepath.Join(dir, result.TracksFile))
			th.AssertFileExists(t, filepath.Join(dir, result.MetadataFile))
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			base := filepath.Join(t.TempDir(), "custom")

			result, err := WriteCSVExport(fixture(), base)
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}
			content := th.MustReadFile(t, result.TracksFile)
			if !strings.Contains(content, "Song One") {
				t.Errorf("CSV file missing track, got: %s", content)
			}
		})

		t.Run("UnwritablePath", func(t *testing.T) {
			if _, err := WriteCSVExport(fixture(), filepath.Join(t.TempDir(), "missing", "base")); err == nil {
				t.Error("expected error for missing directory")
			}
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("WithCover", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("img"))
			}))
			defer server.Close()

			dir := filepath.Join(t.TempDir(), "md")
			result, err := WriteMarkdownExport(fixture(), dir, server.URL)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}
			if len(result.Files) != 2 {
				t.Errorf("expected cover and README, got %v", result.Files)
			}
			th.AssertFileExists(t, filepath.Join(dir, "cover.jpg"))
			content := th.MustReadFile(t, filepath.Join(dir, "README.md"))
			if !strings.Contains(content, "![Cover](cover.jpg)") {
				t.Errorf("README missing cover, got: %s", content)
			}
		})

		t.Run("CoverFailureIsNotFatal", func(t *testing.T) {
			server := httptest.NewServer(http.NotFoundHandler())
			defer server.Close()

			dir := filepath.Join(t.TempDir(), "md")
			result, err := WriteMarkdownExport(fixture(), dir, server.URL)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}
			if result.CoverImage != "" || len(result.Files) != 1 {
				t.Errorf("expected README only, got %+v", result)
			}
		})

		t.Run("WithDefaultDirectory", func(t *testing.T) {
			dir := t.TempDir()
			oldWd := th.MustGetwd(t)
			defer th.MustChdir(t, oldWd)
			th.MustChdir(t, dir)

			result, err := WriteMarkdownExport(fixture(), "", "")
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}
			if result.Directory != "test123" {
				t.Errorf("expected default directory, got %s", result.Directory)
			}
			th.AssertDirExists(t, filepath.Join(dir, "test123"))
		})
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")

		got, err := WriteTextExport(fixture(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
		if !strings.Contains(th.MustReadFile(t, path), "Playlist: Test Playlist") {
			t.Error("text file missing header")
		}
	})

	t.Run("WriteJSONExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			dir := t.TempDir()
			oldWd := th.MustGetwd(t)
			defer th.MustChdir(t, oldWd)
			th.MustChdir(t, dir)

			got, err := WriteJSONExport(fixture(), "")
			if err != nil {
				t.Fatalf("WriteJSONExport failed: %v", err)
			}
			if got != "test123.json" {
				t.Errorf("expected test123.json, got %s", got)
			}
			th.AssertFileExists(t, filepath.Join(dir, got))
		})
	})

	t.Run("WriteExportManifest", func(t *testing.T) {
		t.Run("SuccessfulExport", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.json")
			m := ExportManifest{
				Format:          "csv",
				OutputDirectory: "out",
				TotalPlaylists:  2,
				Successful:      1,
				Failed:          1,
				Playlists: []ManifestEntry{
					{PlaylistID: "a", PlaylistName: "A", Success: true, Files: []string{"a.csv"}},
					{PlaylistID: "b", PlaylistName: "B", Error: "boom"},
				},
			}

			if err := WriteExportManifest(m, path); err != nil {
				t.Fatalf("WriteExportManifest failed: %v", err)
			}

			var back ExportManifest
			if err := json.Unmarshal([]byte(th.MustReadFile(t, path)), &back); err != nil {
				t.Fatalf("invalid manifest JSON: %v", err)
			}
			if back.ExportedAt == "" {
				t.Error("expected exported_at to be stamped")
			}
			if back.Failed != 1 || back.Playlists[1].Error != "boom" {
				t.Errorf("unexpected manifest %+v", back)
			}
		})

		t.Run("EmptyPlaylists", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.json")
			if err := WriteExportManifest(ExportManifest{}, path); err != nil {
				t.Fatalf("WriteExportManifest failed: %v", err)
			}
			if !strings.Contains(th.MustReadFile(t, path), `"playlists": []`) {
				t.Error("expected empty playlists array")
			}
		})

		t.Run("UnwritablePath", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nope", "manifest.json")
			if err := WriteExportManifest(ExportManifest{}, path); err == nil {
				t.Error("expected write error")
			}
			if _, err := os.Stat(path); err == nil {
				t.Error("expected no file")
			}
		})
	})
}
