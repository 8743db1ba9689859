package geo

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"
)

// nameField is the GADM attribute holding the level-1 region name.
const nameField = "NAME_1"

// Prefecture is one level-1 boundary.
type Prefecture struct {
	Name     string
	Shape    *geom.MultiPolygon
	Centroid geom.Coord
}

// LoadPrefectures reads every polygon record of a GADM level-1 shapefile.
// Records without a usable polygon are skipped.
func LoadPrefectures(shpPath string) ([]Prefecture, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	nameIdx := -1
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		if strings.EqualFold(name, nameField) {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, eris.Errorf("geo: %s has no %s field", shpPath, nameField)
	}

	var out []Prefecture
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		mp := polygonToMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}
		centroid, err := xy.Centroid(mp)
		if err != nil {
			skipped++
			continue
		}
		name := strings.TrimSpace(strings.TrimRight(reader.Attribute(nameIdx), "\x00"))
		out = append(out, Prefecture{Name: name, Shape: mp, Centroid: centroid})
	}

	if skipped > 0 {
		zap.L().Debug("geo: skipped shapefile records", zap.String("path", shpPath), zap.Int("skipped", skipped))
	}
	return out, nil
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon,
// one polygon per part.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}
		if end-start < 4 {
			continue
		}

		flat := make([]float64, 0, 2*(end-start))
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			zap.L().Debug("geo: skipping malformed ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("geo: skipping malformed polygon", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// Rings returns the outer ring of every polygon as flat XY coordinates.
func (p Prefecture) Rings() [][]float64 {
	var out [][]float64
	for i := 0; i < p.Shape.NumPolygons(); i++ {
		poly := p.Shape.Polygon(i)
		if poly.NumLinearRings() == 0 {
			continue
		}
		out = append(out, poly.LinearRing(0).FlatCoords())
	}
	return out
}

// Bounds returns the bounding box of all prefectures.
func Bounds(prefs []Prefecture) *geom.Bounds {
	b := geom.NewBounds(geom.XY)
	for _, p := range prefs {
		b.Extend(p.Shape)
	}
	return b
}
