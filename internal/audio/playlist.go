package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ioutils "github.com/handiism/video-downloader/internal/io"
	"github.com/handiism/video-downloader/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL
)

// ParsePlaylistFormat maps a settings value (m3u, pls, wpl, zpl) to a
// PlaylistFormat. Unknown values fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch strings.ToLower(s) {
	case "pls":
		return FormatPLS
	case "wpl":
		return FormatWPL
	case "zpl":
		return FormatZPL
	default:
		return FormatM3U
	}
}

// Extension returns the file extension for the format, including the dot.
func (f PlaylistFormat) Extension() string {
	switch f {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// PlaylistCreator generates playlist files in various formats.
//
// Entries are written relative to the playlist (just the file name), so the
// playlist belongs in the same folder as the downloads.
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended enables #EXTINF lines for M3U and is ignored for other formats.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for the given files.
func (p *PlaylistCreator) CreatePlaylist(name string, files []model.SavedFile) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(files)
	case FormatWPL:
		return p.createSMIL("wpl", "1.0", name, files)
	case FormatZPL:
		return p.createSMIL("zpl", "2.0", name, files)
	default:
		return p.createM3U(files)
	}
}

// createM3U generates an M3U playlist. Durations are unknown to the client
// and written as -1 in extended mode.
//
//	#EXTM3U
//	#EXTINF:-1,Title
//	video.mp4
func (p *PlaylistCreator) createM3U(files []model.SavedFile) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, f := range files {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", displayTitle(f)))
		}
		sb.WriteString(filepath.Base(f.Path) + "\n")
	}

	return sb.String()
}

// createPLS generates an INI-style PLS playlist.
func (p *PlaylistCreator) createPLS(files []model.SavedFile) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, f := range files {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, filepath.Base(f.Path)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, displayTitle(f)))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(files)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createSMIL generates the XML playlists used by Windows Media Player (wpl)
// and Zune (zpl). They only differ in the processing instruction.
func (p *PlaylistCreator) createSMIL(kind, version, name string, files []model.SavedFile) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<?%s version=\"%s\"?>\n", kind, version))
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(name)))
	if kind == "zpl" {
		sb.WriteString("    <meta name=\"Generator\" content=\"VideoDownloader\"/>\n")
		sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(files)))
	}
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, f := range files {
		if kind == "zpl" {
			sb.WriteString(fmt.Sprintf("      <media src=\"%s\" trackTitle=\"%s\"/>\n",
				escapeXML(filepath.Base(f.Path)), escapeXML(displayTitle(f))))
			continue
		}
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(filepath.Base(f.Path))))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// displayTitle prefers the service title and falls back to the file name.
func displayTitle(f model.SavedFile) string {
	if f.Title != "" {
		return f.Title
	}
	base := filepath.Base(f.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

// escapeXML escapes special XML characters in a string.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// PlaylistName expands the {date} placeholder of a playlist file name format.
func PlaylistName(format string, now time.Time) string {
	name := strings.ReplaceAll(format, "{date}", now.Format("2006-01-02"))
	return model.SanitizeFileName(name)
}

// Save writes the playlist for files into dir as name plus the format
// extension, never overwriting an existing file. Returns the playlist path.
func (p *PlaylistCreator) Save(ctx context.Context, dir, name string, files []model.SavedFile) (string, error) {
	if err := ioutils.EnsureDir(dir); err != nil {
		return "", err
	}

	path := ioutils.UniquePath(dir, name+p.format.Extension())
	if err := ioutils.WriteFile(ctx, path, []byte(p.CreatePlaylist(name, files))); err != nil {
		return "", fmt.Errorf("write playlist: %w", err)
	}
	return path, nil
}
