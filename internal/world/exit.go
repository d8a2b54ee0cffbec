package world

// exitPlacement records how the exit door was placed.
type exitPlacement struct {
	Door     Point
	Tunnel   int  // Corridor cells carved between anchor and door
	Fallback bool // No clean tunnel existed; the door sits inside the level
}

// placeExit carves a straight tunnel from anchor to the nearest reachable
// point of the outer ring and marks that border cell as the exit door.
//
// A direction is usable only if every tunnel cell and both of its side
// neighbors are walls, so the tunnel never touches another corridor and the
// door ends up strictly farther from the entrance than the anchor. When no
// direction qualifies the anchor itself becomes the exit. When the anchor is
// the entrance (nothing else reachable) the exit shares the entrance's room.
func placeExit(g *Grid, anchor, entrance Point) exitPlacement {
	if anchor == entrance {
		return exitPlacement{Door: exitBesideEntrance(g, entrance), Fallback: true}
	}

	best, bestLen := Point{}, -1
	for _, step := range cardinals {
		n, ok := tunnelLength(g, anchor, step)
		if ok && (bestLen < 0 || n < bestLen) {
			best, bestLen = step, n
		}
	}
	if bestLen < 0 {
		g.Set(anchor.X, anchor.Y, CellDoorEnd)
		return exitPlacement{Door: anchor, Fallback: true}
	}

	p := anchor
	for i := 1; i < bestLen; i++ {
		p = p.Add(best)
		g.Set(p.X, p.Y, CellPath)
	}
	door := p.Add(best)
	g.Set(door.X, door.Y, CellDoorEnd)
	return exitPlacement{Door: door, Tunnel: bestLen - 1}
}

// tunnelLength walks from anchor along step to the border and returns the
// number of cells to carve, door included.
func tunnelLength(g *Grid, anchor, step Point) (int, bool) {
	side := Point{step.Y, step.X} // perpendicular
	n := 0
	for p := anchor.Add(step); g.InBounds(p.X, p.Y); p = p.Add(step) {
		n++
		if g.At(p) != CellWall {
			return 0, false
		}
		for _, s := range []Point{p.Add(side), {p.X - side.X, p.Y - side.Y}} {
			if g.InBounds(s.X, s.Y) && g.At(s) != CellWall {
				return 0, false
			}
		}
		if g.OnBorder(p.X, p.Y) {
			return n, true
		}
	}
	return 0, false
}

// exitBesideEntrance marks a neighbor of the entrance as the exit, carving
// one if the entrance is walled in.
func exitBesideEntrance(g *Grid, entrance Point) Point {
	for _, step := range cardinals {
		p := entrance.Add(step)
		if g.Interior(p.X, p.Y) && g.At(p).IsWalkable() {
			g.Set(p.X, p.Y, CellDoorEnd)
			return p
		}
	}
	for _, step := range cardinals {
		p := entrance.Add(step)
		if g.Interior(p.X, p.Y) {
			g.Set(p.X, p.Y, CellDoorEnd)
			return p
		}
	}
	// a legal grid always has an interior neighbor of (1,1)
	panic("world: entrance has no interior neighbor")
}
