// Package render draws a generated map as a top-down preview image.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
)

// Format is an output image encoding
type Format string

// Supported formats
const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ParseFormat accepts a format name or a file extension
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", errors.InvalidArgumentf("unknown image format %q", s)
	}
}

// Defaults
const (
	DefaultCellSize     = 16
	DefaultPadding      = 8
	DefaultMaxDimension = 4096
)

var (
	backgroundColor = colornames.Black
	outlineColor    = colornames.Lightgray
	entryColor      = colornames.Steelblue
	roomColor       = colornames.Slategray
	hallwayColor    = colornames.Dimgray
)

var decorationColors = map[layout.DecorationKind]color.RGBA{
	layout.DecorationOpenDoor:   colornames.Limegreen,
	layout.DecorationClosedDoor: colornames.Firebrick,
	layout.DecorationNone:       colornames.Khaki,
}

var spawnColors = map[layout.SpawnKind]color.RGBA{
	layout.SpawnKindEnemy:   colornames.Crimson,
	layout.SpawnKindHostage: colornames.Deepskyblue,
	layout.SpawnKindTrap:    colornames.Darkorange,
	layout.SpawnKindLoot:    colornames.Gold,
}

// Config configures a Renderer
type Config struct {
	// CellSize is the pixel size of one grid unit
	CellSize int

	// Padding is the empty border around the map in pixels
	Padding int

	// MaxDimension caps the longer side; CellSize shrinks to fit
	MaxDimension int
}

// Validate fills defaults and rejects negative sizes
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CellSize < 0 {
		vb.Field("CellSize", "must not be negative")
	}
	if c.Padding < 0 {
		vb.Field("Padding", "must not be negative")
	}
	if c.MaxDimension < 0 {
		vb.Field("MaxDimension", "must not be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.CellSize == 0 {
		c.CellSize = DefaultCellSize
	}
	if c.Padding == 0 {
		c.Padding = DefaultPadding
	}
	if c.MaxDimension == 0 {
		c.MaxDimension = DefaultMaxDimension
	}
	return nil
}

// Renderer rasterizes maps
type Renderer struct {
	cfg Config
}

// New creates a renderer
func New(cfg *Config) (*Renderer, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Renderer{cfg: *cfg}, nil
}

// canvas maps grid space onto image pixels; north is up
type canvas struct {
	img    *image.NRGBA
	minX   float64
	maxY   float64
	cell   float64
	offset int
}

func (c *canvas) px(x float64) int {
	return c.offset + int(math.Round((x-c.minX)*c.cell))
}

func (c *canvas) py(y float64) int {
	return c.offset + int(math.Round((c.maxY-y)*c.cell))
}

func (c *canvas) rect(r layout.Rect) image.Rectangle {
	return image.Rect(c.px(r.Min.X), c.py(r.Max.Y), c.px(r.Max.X), c.py(r.Min.Y))
}

// marker is a square of side size centered on a grid point
func (c *canvas) marker(x, y float64, size int) image.Rectangle {
	cx, cy := c.px(x), c.py(y)
	half := size / 2
	return image.Rect(cx-half, cy-half, cx-half+size, cy-half+size)
}

func (c *canvas) fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) stroke(r image.Rectangle, col color.Color) {
	c.fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	c.fill(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	c.fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	c.fill(image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}

// Render draws rooms, then doorways, then spawns
func (r *Renderer) Render(m *layout.Map) (*image.NRGBA, error) {
	if m == nil {
		return nil, errors.InvalidArgument("map is required")
	}
	if len(m.Rooms) == 0 {
		return nil, errors.InvalidArgumentf("map %s has no rooms to draw", m.ID)
	}

	extent := m.Rooms[0].Bounds
	for _, room := range m.Rooms[1:] {
		extent = extent.Union(room.Bounds)
	}

	longest := math.Max(extent.Width(), extent.Height())
	cell := float64(r.cfg.CellSize)
	if fit := math.Floor(float64(r.cfg.MaxDimension-2*r.cfg.Padding) / longest); fit < cell {
		cell = math.Max(fit, 1)
	}

	width := int(math.Ceil(extent.Width()*cell)) + 2*r.cfg.Padding
	height := int(math.Ceil(extent.Height()*cell)) + 2*r.cfg.Padding

	c := &canvas{
		img:    image.NewNRGBA(image.Rect(0, 0, width, height)),
		minX:   extent.Min.X,
		maxY:   extent.Max.Y,
		cell:   cell,
		offset: r.cfg.Padding,
	}
	c.fill(c.img.Bounds(), backgroundColor)

	for _, room := range m.Rooms {
		fill := roomColor
		switch {
		case room.IsEntry:
			fill = entryColor
		case room.Type == layout.RoomTypeHallway:
			fill = hallwayColor
		}
		bounds := c.rect(room.Bounds)
		c.fill(bounds, fill)
		c.stroke(bounds, outlineColor)
	}

	doorSize := max(int(cell/2), 1)
	for _, d := range m.Doorways {
		col, ok := decorationColors[d.Decoration]
		if !ok {
			col = decorationColors[layout.DecorationNone]
		}
		c.fill(c.marker(d.Transform.Position.X, d.Transform.Position.Y, doorSize), col)
	}

	spawnSize := max(int(cell/3), 1)
	for _, sp := range m.Spawns {
		col, ok := spawnColors[sp.Kind]
		if !ok {
			continue
		}
		c.fill(c.marker(sp.Position.X, sp.Position.Y, spawnSize), col)
	}

	return c.img, nil
}

// Thumbnail scales img so its width is width pixels, keeping the aspect ratio
func Thumbnail(img image.Image, width int) *image.NRGBA {
	b := img.Bounds()
	if width <= 0 || b.Dx() == 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	height := max(int(math.Round(float64(b.Dy())*float64(width)/float64(b.Dx()))), 1)
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return errors.Wrap(err, "failed to encode png")
		}
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return errors.Wrap(err, "failed to encode webp")
		}
	default:
		return errors.InvalidArgumentf("unknown image format %q", format)
	}
	return nil
}
