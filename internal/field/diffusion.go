package field

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Input is the per-cell feature vector consumed by Diffuse.
type Input struct {
	Polarity         float64 // enhanced polarity in [0,1]
	VowelRatio       float64 // [0,1]
	NormalizedLength float64 // [0,1]
}

// HSV is a color with every component in [0,1].
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// Stats summarizes one diffusion pass.
type Stats struct {
	Anchors         int `json:"anchors"`
	NegativeAnchors int `json:"negative_anchors"`
	Followers       int `json:"followers"`
	Influenced      int `json:"influenced"` // followers that received any influence
	Batches         int `json:"batches"`
}

// anchor is the read-only snapshot of one anchor cell. Everything a follower
// needs is precomputed here so that follower evaluation never writes shared
// state.
type anchor struct {
	index    int
	x, y     int
	negative bool
	strength float64
	cluster  float64 // self boost from same-class anchors within ClusterRadius
	nearby   float64 // radius/influence boost from same-class anchors within NearbyRadius
	color    HSV     // self-boosted color

	gridWeight   float64
	linearWeight float64
	scale        float64
	radius       float64
	gain         float64
}

type diffuser struct {
	p       Params
	width   int
	height  int
	anchors []anchor
}

// Diffuse computes the final color of every cell.
//
// Cells with |polarity-0.5| > AnchorThreshold become anchors; their color is
// their base color boosted by same-class neighbors. Every other cell is a
// follower and is blended toward the influence-weighted color of all anchors
// within reach. Followers beyond every anchor's reach keep their base color.
//
// The result holds one HSV per input cell, in input order.
func Diffuse(cells []Input, width int, p Params) ([]HSV, Stats) {
	n := len(cells)
	out := make([]HSV, n)
	var stats Stats
	if n == 0 || width <= 0 {
		return out, stats
	}

	for i, c := range cells {
		out[i] = baseColor(c, p)
	}

	d := &diffuser{p: p, width: width, height: (n + width - 1) / width}
	slots := d.classify(cells)
	d.boost(slots, out)

	followers := make([]int, 0, n-len(d.anchors))
	for i := range cells {
		if slots[i] < 0 {
			followers = append(followers, i)
		}
	}

	stats.Anchors = len(d.anchors)
	for _, a := range d.anchors {
		if a.negative {
			stats.NegativeAnchors++
		}
	}
	stats.Followers = len(followers)
	if len(d.anchors) == 0 || len(followers) == 0 {
		return out, stats
	}

	stats.Influenced, stats.Batches = d.diffuse(followers, out)
	return out, stats
}

// baseColor derives the undiffused color of a cell. Neutral cells fade to a
// pale, desaturated tone; strongly polar cells keep their full feature color.
func baseColor(c Input, p Params) HSV {
	intensity := clamp01(2 * math.Abs(c.Polarity-0.5))
	return HSV{
		H: c.Polarity * p.HueScale,
		S: clamp01((p.SatBase + c.VowelRatio*p.SatVowel) * intensity),
		V: clamp01((p.ValBase+c.NormalizedLength*p.ValLength)*intensity + (1-intensity)*p.NeutralValue),
	}
}

// classify records every anchor and returns a per-cell slot table mapping a
// cell index to its position in d.anchors, or -1 for followers.
func (d *diffuser) classify(cells []Input) []int {
	slots := make([]int, len(cells))
	for i, c := range cells {
		half := math.Abs(c.Polarity - 0.5)
		if half <= d.p.AnchorThreshold {
			slots[i] = -1
			continue
		}
		x, y := Position(i, d.width)
		negative := c.Polarity < 0.5
		slots[i] = len(d.anchors)
		d.anchors = append(d.anchors, anchor{
			index:    i,
			x:        x,
			y:        y,
			negative: negative,
			strength: half * pick(negative, d.p.StrengthNeg, d.p.StrengthPos),
		})
	}
	return slots
}

// boost accumulates the cluster and nearby terms of every anchor from its
// same-class neighbors, then fixes each anchor's color and reach. Only the
// grid neighborhood that can fall inside either radius is scanned.
func (d *diffuser) boost(slots []int, out []HSV) {
	p := d.p
	reach := int(math.Ceil(math.Max(p.ClusterRadius, p.NearbyRadius)))

	for k := range d.anchors {
		a := &d.anchors[k]
		for dy := -reach; dy <= reach; dy++ {
			ny := a.y + dy
			if ny < 0 || ny >= d.height {
				continue
			}
			for dx := -reach; dx <= reach; dx++ {
				nx := a.x + dx
				if nx < 0 || nx >= d.width || (dx == 0 && dy == 0) {
					continue
				}
				j := ny*d.width + nx
				if j >= len(slots) || slots[j] < 0 {
					continue
				}
				if d.anchors[slots[j]].negative != a.negative {
					continue
				}
				dist := gridDistance(a.x, a.y, nx, ny)
				if dist < p.ClusterRadius {
					a.cluster += p.ClusterStep
				}
				if dist < p.NearbyRadius {
					a.nearby += math.Max(0, 1-dist/p.NearbyRadius) * p.NearbyStep
				}
			}
		}

		base := out[a.index]
		a.color = HSV{
			H: base.H,
			S: math.Min(1, base.S*pick(a.negative, p.SelfSatNeg, p.SelfSatPos)*(1+a.cluster)),
			V: math.Min(1, base.V*pick(a.negative, p.SelfValNeg, p.SelfValPos)*(1+a.cluster)),
		}
		out[a.index] = a.color

		a.gridWeight = pick(a.negative, p.GridWeightNeg, p.GridWeightPos)
		a.linearWeight = pick(a.negative, p.LinearWeightNeg, p.LinearWeightPos)
		a.scale = pick(a.negative, p.DistanceScaleNeg, p.DistanceScalePos) * (1 - a.nearby*p.NearbyShrink)
		a.radius = (pick(a.negative, p.BaseRadiusNeg, p.BaseRadiusPos) +
			a.strength*pick(a.negative, p.StrengthRadNeg, p.StrengthRadPos)) * (1 + a.nearby)
		a.gain = (1 + a.nearby*p.NearbyInfluence) * a.strength * pick(a.negative, p.AmplifierNeg, p.AmplifierPos)
	}
}

// diffuse evaluates followers in batches of p.BatchSize, running up to
// p.Workers batches at once. Each follower writes only its own slot of out.
func (d *diffuser) diffuse(followers []int, out []HSV) (influenced, batches int) {
	size := d.p.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	batches = (len(followers) + size - 1) / size
	counts := make([]int, batches)

	var g errgroup.Group
	g.SetLimit(max(d.p.Workers, 1))
	for b := 0; b < batches; b++ {
		batch := followers[b*size : min((b+1)*size, len(followers))]
		g.Go(func() error {
			for _, i := range batch {
				if c, ok := d.follow(i, out[i]); ok {
					out[i] = c
					counts[b]++
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, c := range counts {
		influenced += c
	}
	return influenced, batches
}

// follow blends follower i toward the anchors that reach it. It reports
// false when no anchor reaches the cell, in which case own stands.
func (d *diffuser) follow(i int, own HSV) (HSV, bool) {
	p := d.p
	fx, fy := Position(i, d.width)

	var total, neg, pos float64
	var h, s, v float64
	for k := range d.anchors {
		a := &d.anchors[k]
		grid := gridDistance(fx, fy, a.x, a.y)
		linear := math.Abs(float64(i - a.index))
		dist := (a.gridWeight*grid + a.linearWeight*(linear/p.LinearDivisor)) * a.scale
		if dist >= a.radius {
			continue
		}

		influence := (1 - dist/a.radius) * a.gain
		total += influence
		if a.negative {
			neg += influence
		} else {
			pos += influence
		}
		h += influence * a.color.H
		s += influence * a.color.S
		v += influence * a.color.V
	}
	if total == 0 {
		return own, false
	}

	blend := math.Min(total*p.BlendGain, pick(neg > pos, p.BlendCapNeg, p.BlendCapPos))
	mix := func(own, weighted float64) float64 {
		return clamp01(own*(1-blend) + weighted*blend)
	}
	return HSV{
		H: mix(own.H, h/total),
		S: mix(own.S, s/total),
		V: mix(own.V, v/total),
	}, true
}
