// package formatter provides functions to export playlist data to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/fakefy/internal/models"
	"github.com/desertthunder/fakefy/internal/shared"
)

// Supported export formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// ValidFormat reports whether name is one of the supported export formats.
func ValidFormat(name string) bool {
	switch name {
	case FormatJSON, FormatCSV, FormatMarkdown, FormatText:
		return true
	}
	return false
}

const placeholder = "-"

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// FormatTimestamp renders a stored timestamp for display, or a dash when it is unset.
func FormatTimestamp(ts *models.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return placeholder
	}
	return ts.Local().Format("2006-01-02 15:04")
}

// ExportToCSV converts a Playlist to CSV format with columns: ID, Name, Artist, Album, Genre, Year, Views, Video
func ExportToCSV(p models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artist", "Album", "Genre", "Year", "Views", "Video"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range p.Tracks {
		record := []string{
			track.ID,
			track.Name,
			track.Artist,
			track.Album,
			track.Genre,
			track.Year,
			track.Views(),
			track.VideoURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Playlist to Markdown format with optional cover image
func ExportToMarkdown(p models.Playlist, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", p.Name))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(p.Tracks)))
	buf.WriteString(fmt.Sprintf("**Created**: %s\n", FormatTimestamp(&p.CreatedAt)))
	buf.WriteString(fmt.Sprintf("**Updated**: %s\n\n", FormatTimestamp(p.UpdatedAt)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range p.Tracks {
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		yearPart := ""
		if track.Year != "" {
			yearPart = fmt.Sprintf(" [%s]", track.Year)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s%s\n", i+1, track.Artist, track.Name, albumPart, yearPart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Playlist to plain text format
func ExportToText(p models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", p.Name))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(p.Tracks)))

	for i, track := range p.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Name))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a Playlist to indented JSON using the stored field names
func ExportToJSON(p models.Playlist) ([]byte, error) {
	return shared.MarshalJSON(p, true)
}

// PlaylistMetadata is a Playlist summary without its tracks.
type PlaylistMetadata struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OwnerID    string `json:"owner_id"`
	TrackCount int    `json:"track_count"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// ToMetadataJSON generates a JSON representation of playlist metadata (without tracks)
func ToMetadataJSON(p models.Playlist) ([]byte, error) {
	meta := PlaylistMetadata{
		ID:         p.ID,
		Name:       p.Name,
		OwnerID:    p.OwnerID,
		TrackCount: len(p.Tracks),
		CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.UpdatedAt != nil {
		meta.UpdatedAt = p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return shared.MarshalJSON(meta, true)
}

// TrackDetail renders every known field of a track as aligned label/value lines.
func TrackDetail(t models.Track) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("%s - %s\n\n", t.Name, t.Artist))

	rows := [][2]string{
		{"ID", t.ID},
		{"Album", t.Album},
		{"Genre", t.Genre},
		{"Year", t.Year},
		{"Style", t.Style},
		{"Mood", t.Mood},
		{"Theme", t.Theme},
		{"Cover", t.Thumb},
		{"Video", t.VideoURL},
	}
	for _, row := range rows {
		buf.WriteString(fmt.Sprintf("%-7s %s\n", row[0]+":", orDash(row[1])))
	}

	if s := t.Stats; s != nil {
		var chips []string
		for _, c := range [][2]string{
			{s.Plays, "plays"},
			{s.Listeners, "listeners"},
			{s.Views, "views"},
			{s.Likes, "likes"},
			{s.Loved, "loved"},
		} {
			if c[0] != "" {
				chips = append(chips, c[0]+" "+c[1])
			}
		}
		if len(chips) > 0 {
			buf.WriteString("\n" + strings.Join(chips, " | ") + "\n")
		}
	}

	if t.Description != "" {
		buf.WriteString("\n" + strings.TrimSpace(t.Description) + "\n")
	}

	return buf.String()
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// CoverURL returns the thumbnail of the first track that has one.
func CoverURL(p models.Playlist) string {
	for _, t := range p.Tracks {
		if t.Thumb != "" {
			return t.Thumb
		}
	}
	return ""
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports a playlist to CSV format with accompanying metadata JSON file.
//
// Defaults to playlist ID as the base filename & creates {base}_tracks.csv and {base}_metadata.json
func WriteCSVExport(p models.Playlist, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = p.ID
	}

	csvData, err := ExportToCSV(p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   tracksFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a playlist to Markdown format in a dedicated directory.
//
// Directory name defaults to the playlist ID.
// The imageURL parameter is optional - if provided, attempts to download the cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(p models.Playlist, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = p.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := filepath.Join(outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(p, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a playlist to plain text format.
//
// Defaults to {playlist.ID}_tracks.txt as the filename.
func WriteTextExport(p models.Playlist, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s_tracks.txt", p.ID)
	}

	textData, err := ExportToText(p)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// WriteJSONExport exports a playlist to indented JSON.
//
// Defaults to {playlist.ID}.json as the filename.
func WriteJSONExport(p models.Playlist, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s.json", p.ID)
	}

	data, err := ExportToJSON(p)
	if err != nil {
		return "", fmt.Errorf("JSON marshal failed: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("JSON write failed: %w", err)
	}

	return path, nil
}

// ManifestEntry records the outcome of exporting one playlist.
type ManifestEntry struct {
	PlaylistID   string   `json:"playlist_id"`
	PlaylistName string   `json:"playlist_name"`
	Success      bool     `json:"success"`
	Files        []string `json:"files,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// ExportManifest summarizes a bulk export.
type ExportManifest struct {
	ExportedAt      string          `json:"exported_at"`
	Format          string          `json:"format"`
	OutputDirectory string          `json:"output_directory"`
	TotalPlaylists  int             `json:"total_playlists"`
	Successful      int             `json:"successful"`
	Failed          int             `json:"failed"`
	Playlists       []ManifestEntry `json:"playlists"`
}

// WriteExportManifest writes the manifest as indented JSON to path.
func WriteExportManifest(m ExportManifest, path string) error {
	if m.ExportedAt == "" {
		m.ExportedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if m.Playlists == nil {
		m.Playlists = []ManifestEntry{}
	}

	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
