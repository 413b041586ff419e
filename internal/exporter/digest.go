package exporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"stockcli/pkg/contracts/domain"
)

// LocationOrder names a digest location ordering policy.
type LocationOrder string

const (
	LocationAlphabetical LocationOrder = "alphabetical"
	LocationFirstSeen    LocationOrder = "first_seen"
)

// Apply returns the locations in policy order with priority, when present,
// moved to the front. The input slice is not modified.
func (o LocationOrder) Apply(locations []domain.LocationView, priority string) []domain.LocationView {
	out := append([]domain.LocationView(nil), locations...)
	if o == LocationAlphabetical {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	}
	if priority == "" {
		return out
	}
	for i, loc := range out {
		if loc.Location == priority {
			copy(out[1:i+1], out[:i])
			out[0] = loc
			break
		}
	}
	return out
}

// TypeOrder names a digest type ordering policy.
type TypeOrder string

const (
	TypeVolumeDesc   TypeOrder = "volume_desc"
	TypeAlphabetical TypeOrder = "alphabetical"
)

// Apply returns the types in policy order. volume_desc breaks ties by name.
func (o TypeOrder) Apply(types []domain.TypeTotal) []domain.TypeTotal {
	out := append([]domain.TypeTotal(nil), types...)
	switch o {
	case TypeAlphabetical:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	default:
		sort.SliceStable(out, func(i, j int) bool {
			if c := out[i].Volume.Cmp(out[j].Volume); c != 0 {
				return c > 0
			}
			return out[i].Type < out[j].Type
		})
	}
	return out
}

// Labels is the fixed wording of the digest.
type Labels struct {
	Title          string
	LastUpdate     string
	GlobalHeading  string
	Count          string
	Volume         string
	LocationUpdate string
	LocationTotal  string
	NoData         string
	CountUnit      string
	VolumeUnit     string
}

// DefaultLabels returns the English wording.
func DefaultLabels() Labels {
	return Labels{
		Title:          "📦 STOCK UPDATE",
		LastUpdate:     "Last update (mutation)",
		GlobalHeading:  "GLOBAL STOCK",
		Count:          "Count",
		Volume:         "Volume",
		LocationUpdate: "Last mutation",
		LocationTotal:  "Total",
		NoData:         "No data in stock table",
		CountUnit:      "pcs",
		VolumeUnit:     "m³",
	}
}

// DigestOptions configures a DigestRenderer
type DigestOptions struct {
	PriorityLocation string
	LocationOrder    LocationOrder
	TypeOrder        TypeOrder
	// MaxTypeWidth caps the type column, in display cells.
	MaxTypeWidth int
	Labels       Labels
}

// DefaultDigestOptions returns the digest defaults
func DefaultDigestOptions() DigestOptions {
	return DigestOptions{
		PriorityLocation: "BLOK",
		LocationOrder:    LocationAlphabetical,
		TypeOrder:        TypeVolumeDesc,
		MaxTypeWidth:     18,
		Labels:           DefaultLabels(),
	}
}

const (
	digestSeparator   = "================"
	countColumnWidth  = 5
	volumeColumnWidth = 12
	volumeDecimals    = 2
)

// DigestRenderer formats a StockView as a plain-text message.
type DigestRenderer struct {
	opts  DigestOptions
	width *runewidth.Condition
}

// NewDigestRenderer creates a renderer. Zero-valued options fall back to
// DefaultDigestOptions.
func NewDigestRenderer(opts DigestOptions) *DigestRenderer {
	def := DefaultDigestOptions()
	if opts.LocationOrder == "" {
		opts.LocationOrder = def.LocationOrder
	}
	if opts.TypeOrder == "" {
		opts.TypeOrder = def.TypeOrder
	}
	if opts.MaxTypeWidth <= 0 {
		opts.MaxTypeWidth = def.MaxTypeWidth
	}
	if opts.Labels == (Labels{}) {
		opts.Labels = def.Labels
	}

	// Display widths must not depend on the terminal locale.
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false

	return &DigestRenderer{opts: opts, width: cond}
}

// Render returns the digest text, newline terminated.
func (r *DigestRenderer) Render(view domain.StockView) string {
	l := r.opts.Labels
	var b strings.Builder

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("%s", l.Title)
	line("")

	if view.Empty() {
		line("%s", l.NoData)
		return b.String()
	}

	labelWidth := max(r.width.StringWidth(l.Count), r.width.StringWidth(l.Volume))
	line("%s: %s", l.LastUpdate, formatDigestDate(view.Global.LastDate))
	line("")
	line("%s", l.GlobalHeading)
	line("%s : %d %s", r.width.FillRight(l.Count, labelWidth), view.Global.Count, l.CountUnit)
	line("%s : %s", r.width.FillRight(l.Volume, labelWidth), r.volume(view.Global.Volume))
	line("")

	typeWidth := r.typeWidth(view)

	for _, loc := range r.opts.LocationOrder.Apply(view.Locations, r.opts.PriorityLocation) {
		line("%s", digestSeparator)
		line("%s", loc.Location)
		line("%s : %s", l.LocationUpdate, formatDigestDate(loc.Total.LastDate))
		line("%s : %d %s | %s", l.LocationTotal, loc.Total.Count, l.CountUnit, r.volume(loc.Total.Volume))
		line("")

		for _, tt := range r.opts.TypeOrder.Apply(loc.Types) {
			name := r.width.FillRight(r.width.Truncate(tt.Type, typeWidth, ""), typeWidth)
			line("  %s : %*d %s | %s", name, countColumnWidth, tt.Count, l.CountUnit,
				r.width.FillLeft(r.volume(tt.Volume), volumeColumnWidth))
		}
		line("")
	}

	return b.String()
}

// typeWidth is the longest type name, capped at MaxTypeWidth.
func (r *DigestRenderer) typeWidth(view domain.StockView) int {
	w := 0
	for _, loc := range view.Locations {
		for _, tt := range loc.Types {
			w = max(w, r.width.StringWidth(tt.Type))
		}
	}
	return min(w, r.opts.MaxTypeWidth)
}

func (r *DigestRenderer) volume(v decimal.Decimal) string {
	return v.StringFixed(volumeDecimals) + " " + r.opts.Labels.VolumeUnit
}
