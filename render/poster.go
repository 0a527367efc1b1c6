package render

import (
	"fmt"
	"time"

	"github.com/bgraf/trackposter/data/geotrack"
	"github.com/bgraf/trackposter/util/dates"
	"github.com/goodsign/monday"
)

const (
	posterMargin       = 10.0
	posterHeaderHeight = 30.0
	posterFooterHeight = 30.0
	titleFontSize      = 12.0
	footerFontSize     = 4.0
)

type Poster struct {
	Title  string
	Tracks []*geotrack.Track
	Colors *Palette
	Width  float64
	Height float64
	Locale monday.Locale
}

// TotalLength returns the summed length of all tracks in meters.
func (p *Poster) TotalLength() float64 {
	total := 0.0
	for _, t := range p.Tracks {
		total += t.Length
	}
	return total
}

// TimeRange returns the earliest start and the latest end over all tracks.
func (p *Poster) TimeRange() (from, to time.Time) {
	for i, t := range p.Tracks {
		if i == 0 || t.StartTime.Before(from) {
			from = t.StartTime
		}
		if i == 0 || t.EndTime.After(to) {
			to = t.EndTime
		}
	}
	return
}

// Draw paints the complete poster: background, title, the track heatmap and
// a footer with statistics.
func (p *Poster) Draw(s Surface) error {
	if p.Width <= 2*posterMargin || p.Height <= posterHeaderHeight+posterFooterHeight {
		return fmt.Errorf("poster size %gx%g too small", p.Width, p.Height)
	}

	s.Rect(0, 0, p.Width, p.Height, p.Colors.Color(ColorBackground))

	textColor := p.Colors.Color(ColorText)
	s.Text(posterMargin, 20, p.Title, TextStyle{
		Color:  textColor,
		Size:   titleFontSize,
		Anchor: AnchorStart,
	})

	err := DrawHeatmap(
		p,
		s,
		p.Width-2*posterMargin,
		p.Height-posterHeaderHeight-posterFooterHeight,
		posterMargin,
		posterHeaderHeight,
	)
	if err != nil {
		return err
	}

	footerY := p.Height - posterFooterHeight/2
	footerStyle := TextStyle{Color: textColor, Size: footerFontSize, Anchor: AnchorStart}

	s.Text(posterMargin, footerY, p.statistics(), footerStyle)

	from, to := p.TimeRange()
	footerStyle.Anchor = AnchorEnd
	s.Text(p.Width-posterMargin, footerY, dates.FormatRange(from, to, p.locale()), footerStyle)

	return nil
}

func (p *Poster) statistics() string {
	noun := "tracks"
	if len(p.Tracks) == 1 {
		noun = "track"
	}

	return fmt.Sprintf("%d %s, %.1f km", len(p.Tracks), noun, p.TotalLength()/1000)
}

func (p *Poster) locale() monday.Locale {
	if p.Locale == "" {
		return monday.LocaleEnUS
	}
	return p.Locale
}
