// Package render produces the text views of the catalog: the show table, the
// genre table and the detail view of a single show.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/podlanding/podcast-discovery/internal/apperrors"
	"github.com/podlanding/podcast-discovery/internal/dateutil"
	"github.com/podlanding/podcast-discovery/internal/genres"
	"github.com/podlanding/podcast-discovery/internal/models"
)

const (
	descriptionWidth = 72
	titleWidth       = 40
	indent           = "  "
)

// LoadingMessage is printed while the catalog is being fetched.
const LoadingMessage = "Loading podcasts..."

// ShouldColorize reports whether w is a terminal that accepts ANSI colours.
func ShouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SeasonLabel returns "1 season" or "N seasons".
func SeasonLabel(n int) string {
	if n == 1 {
		return "1 season"
	}
	return strconv.Itoa(n) + " seasons"
}

// Tags lists the derived badges of a show.
func Tags(show models.Show) []string {
	var tags []string
	if show.IsPopular {
		tags = append(tags, models.CategoryPopular.Label())
	}
	if show.IsRecent {
		tags = append(tags, models.CategoryRecent.Label())
	}
	return tags
}

// ShowTable renders one row per show, in the given order.
func ShowTable(shows []models.Show, now time.Time) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Title", "Seasons", "Genres", "Updated", "Tags"})

	for _, show := range shows {
		tw.AppendRow(table.Row{
			show.ID,
			show.Title,
			show.Seasons,
			strings.Join(genres.NamesFor(show.GenreIDs), ", "),
			dateutil.TimeSince(show.UpdatedAt, now),
			strings.Join(Tags(show), ", "),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: titleWidth},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// GenreTable renders the genre lookup table.
func GenreTable(all []models.Genre) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Name"})
	for _, g := range all {
		tw.AppendRow(table.Row{g.ID, g.Name})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// Detail renders the full view of one show.
func Detail(show models.Show, now time.Time, colorize bool) string {
	var b strings.Builder

	writeHeader(&b, show.Title, colorize)

	writeSection(&b, "Description", colorize)
	description := PlainText(show.Description)
	for _, line := range strings.Split(text.WrapSoft(description, descriptionWidth), "\n") {
		b.WriteString(indent + strings.TrimRight(line, " ") + "\n")
	}

	writeSection(&b, "Genres", colorize)
	names := genres.NamesFor(show.GenreIDs)
	tags := make([]string, len(names))
	for i, name := range names {
		tags[i] = "[" + name + "]"
	}
	b.WriteString(indent + strings.Join(tags, " ") + "\n")

	writeSection(&b, "Seasons", colorize)
	b.WriteString(indent + SeasonLabel(show.Seasons) + "\n")

	b.WriteString("\n")
	fmt.Fprintf(&b, "Last updated: %s (%s)\n", dateutil.TimeSince(show.UpdatedAt, now), dateutil.FormatFull(show.UpdatedAt))
	if tags := Tags(show); len(tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(tags, ", "))
	}
	if show.Image != "" {
		fmt.Fprintf(&b, "Cover: %s\n", show.Image)
	}
	return b.String()
}

// Failure renders a fetch failure the way every surface reports it.
func Failure(f *apperrors.FetchFailure, colorize bool) string {
	if f == nil {
		return ""
	}
	message := f.Message
	if colorize {
		message = text.Colors{text.Bold, text.FgRed}.Sprint(message)
	}
	if f.Details == "" {
		return message + "\n"
	}
	return message + "\n" + indent + f.Details + "\n"
}

func writeHeader(b *strings.Builder, title string, colorize bool) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len([]rune(line)))
	if colorize {
		line = text.Colors{text.Bold, text.FgBlue}.Sprint(line)
		rule = text.FgBlue.Sprint(rule)
	}
	b.WriteString(line + "\n" + rule + "\n")
}

func writeSection(b *strings.Builder, name string, colorize bool) {
	if colorize {
		name = text.Bold.Sprint(name)
	}
	b.WriteString("\n" + name + "\n")
}
