package molecule

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/turtacn/admet-prioritizer/pkg/errors"
)

// DefaultDepictionSize is the edge length of a depiction in pixels.
const DefaultDepictionSize = 200

const (
	maxBondPixels = 32.0
	marginPixels  = 14.0
	lineWidth     = 1.6
)

var (
	bondColor  = color.RGBA{0x22, 0x22, 0x22, 0xff}
	background = color.RGBA{0xff, 0xff, 0xff, 0xff}

	atomColors = map[string]color.RGBA{
		"N":  {0x30, 0x50, 0xf8, 0xff},
		"O":  {0xe0, 0x10, 0x10, 0xff},
		"S":  {0xb0, 0x9a, 0x00, 0xff},
		"F":  {0x20, 0xa0, 0x20, 0xff},
		"Cl": {0x1f, 0xa0, 0x1f, 0xff},
		"Br": {0xa6, 0x29, 0x29, 0xff},
		"I":  {0x94, 0x00, 0x94, 0xff},
		"P":  {0xff, 0x80, 0x00, 0xff},
	}
)

// Depict renders m as a size×size PNG.
func Depict(m *Molecule, size int) ([]byte, error) {
	if m == nil || len(m.Atoms) == 0 {
		return nil, errors.New(errors.CodeDepictionFailed, "nothing to depict")
	}
	if size <= 0 {
		size = DefaultDepictionSize
	}
	if size < 32 {
		return nil, errors.Newf(errors.CodeDepictionFailed, "depiction size %d too small", size)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	coords := project(Layout(m), float64(size))
	r := &renderer{m: m, img: img, coords: coords, size: size}
	r.drawBonds()
	r.drawLabels()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, errors.CodeDepictionFailed, "encode depiction")
	}
	return buf.Bytes(), nil
}

// project scales layout coordinates into pixel space, centered, with y
// pointing down.
func project(pts []Point, size float64) []Point {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	w, h := maxX-minX, maxY-minY
	avail := size - 2*marginPixels
	scale := maxBondPixels
	if w > 0 {
		scale = math.Min(scale, avail/w)
	}
	if h > 0 {
		scale = math.Min(scale, avail/h)
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{
			X: size/2 + (p.X-cx)*scale,
			Y: size/2 - (p.Y-cy)*scale,
		}
	}
	return out
}

type renderer struct {
	m      *Molecule
	img    *image.RGBA
	coords []Point
	size   int
}

func (r *renderer) labelled(i int) bool {
	a := r.m.Atoms[i]
	if a.Symbol() != "C" || a.Charge != 0 || a.Isotope != 0 {
		return true
	}
	return len(r.m.Neighbors(i)) == 0
}

// bondLength is the pixel length of one layout unit after projection.
func (r *renderer) bondLength() float64 {
	if len(r.m.Bonds) == 0 {
		return maxBondPixels
	}
	b := r.m.Bonds[0]
	return r.coords[b.End].sub(r.coords[b.Begin]).length()
}

// bondStrokeWidth is lineWidth in 26.6 fixed point.
func bondStrokeWidth() fixed.Int26_6 {
	return fixed.Int26_6(math.Round(lineWidth * 64))
}

func (r *renderer) drawBonds() {
	scanner := rasterx.NewScannerGV(r.size, r.size, r.img, r.img.Bounds())
	stroker := rasterx.NewStroker(r.size, r.size, scanner)
	stroker.SetStroke(bondStrokeWidth(), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
	stroker.SetColor(bondColor)

	offset := math.Max(2.5, r.bondLength()*0.16)
	for _, b := range r.m.Bonds {
		p, q := r.trimmed(b.Begin, b.End)
		order := b.Order
		if order == BondAromatic {
			order = b.Kekule
			if order == 0 {
				order = BondSingle
			}
		}
		switch order {
		case BondDouble:
			if b.InRing {
				r.line(stroker, p, q)
				ip, iq := r.innerLine(b, p, q, offset)
				r.line(stroker, ip, iq)
			} else {
				n := normal(p, q).scale(offset / 2)
				r.line(stroker, p.add(n), q.add(n))
				r.line(stroker, p.sub(n), q.sub(n))
			}
		case BondTriple, BondQuadruple:
			n := normal(p, q).scale(offset)
			r.line(stroker, p, q)
			r.line(stroker, p.add(n), q.add(n))
			r.line(stroker, p.sub(n), q.sub(n))
		default:
			r.line(stroker, p, q)
		}
	}
}

func (r *renderer) line(s *rasterx.Stroker, p, q Point) {
	s.Start(rasterx.ToFixedP(p.X, p.Y))
	s.Line(rasterx.ToFixedP(q.X, q.Y))
	s.Stop(false)
	s.Draw()
	s.Clear()
}

// trimmed shortens the bond ends that touch labelled atoms.
func (r *renderer) trimmed(i, j int) (Point, Point) {
	p, q := r.coords[i], r.coords[j]
	d := q.sub(p)
	l := d.length()
	if l < 1e-6 {
		return p, q
	}
	u := d.scale(1 / l)
	const gap = 7.0
	if r.labelled(i) && l > 2*gap {
		p = p.add(u.scale(gap))
	}
	if r.labelled(j) && l > 2*gap {
		q = q.sub(u.scale(gap))
	}
	return p, q
}

// innerLine returns the second stroke of a ring double bond, shifted towards
// the centre of a ring containing the bond and shortened at both ends.
func (r *renderer) innerLine(b *Bond, p, q Point, offset float64) (Point, Point) {
	n := normal(p, q)
	if c, ok := r.ringCenter(b); ok {
		mid := p.add(q).scale(0.5)
		toC := c.sub(mid)
		if toC.X*n.X+toC.Y*n.Y < 0 {
			n = n.scale(-1)
		}
	}
	d := q.sub(p)
	shrink := d.scale(0.15)
	return p.add(shrink).add(n.scale(offset)), q.sub(shrink).add(n.scale(offset))
}

func (r *renderer) ringCenter(b *Bond) (Point, bool) {
	for _, ring := range r.m.Rings() {
		hasBegin, hasEnd := false, false
		for _, a := range ring {
			hasBegin = hasBegin || a == b.Begin
			hasEnd = hasEnd || a == b.End
		}
		if !hasBegin || !hasEnd {
			continue
		}
		c := Point{}
		for _, a := range ring {
			c = c.add(r.coords[a])
		}
		return c.scale(1 / float64(len(ring))), true
	}
	return Point{}, false
}

func normal(p, q Point) Point {
	d := q.sub(p)
	l := d.length()
	if l < 1e-6 {
		return Point{0, 1}
	}
	return Point{-d.Y / l, d.X / l}
}

// atomLabel is the text drawn for an atom, hydrogens and charge included.
func atomLabel(a *Atom) string {
	s := a.Symbol()
	if a.Isotope > 0 {
		s = strconv.Itoa(a.Isotope) + s
	}
	switch h := a.TotalH(); {
	case h == 1:
		s += "H"
	case h > 1:
		s += "H" + strconv.Itoa(h)
	}
	switch {
	case a.Charge == 1:
		s += "+"
	case a.Charge == -1:
		s += "-"
	case a.Charge > 1:
		s += strconv.Itoa(a.Charge) + "+"
	case a.Charge < -1:
		s += strconv.Itoa(-a.Charge) + "-"
	}
	return s
}

func (r *renderer) drawLabels() {
	face := basicfont.Face7x13
	for i, a := range r.m.Atoms {
		if !r.labelled(i) {
			continue
		}
		text := atomLabel(a)
		advance := font.MeasureString(face, text).Ceil()
		symbolWidth := font.MeasureString(face, a.Symbol()).Ceil()
		p := r.coords[i]

		// centre the element symbol on the atom position
		x := int(math.Round(p.X)) - symbolWidth/2
		if a.Isotope > 0 {
			x -= font.MeasureString(face, strconv.Itoa(a.Isotope)).Ceil()
		}
		y := int(math.Round(p.Y)) + 4

		box := image.Rect(x-1, y-10, x+advance+1, y+3).Intersect(r.img.Bounds())
		draw.Draw(r.img, box, image.NewUniform(background), image.Point{}, draw.Src)

		col, ok := atomColors[a.Symbol()]
		if !ok {
			col = bondColor
		}
		d := font.Drawer{
			Dst:  r.img,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.P(x, y),
		}
		d.DrawString(text)
	}
}

//Personal.AI order the ending
