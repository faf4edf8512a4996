// seehuhn.de/go/tileset - procedural sprite sheet generation
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shapes

import "seehuhn.de/go/geom/path"

// exits is a set of tile edges which a road leaves through.
type exits uint8

const (
	north exits = 1 << iota
	east
	south
	west
)

// roadOffset is the distance from a tile edge to the near side of a road.
const roadOffset = (TileSize - RoadWidth) / 2

// road returns a builder for a road piece connecting the centre of the
// tile to the midpoints of the given edges.
//
// Opposite exits are joined by one straight rectangle across the tile.
// A single arm reaches from its edge to half a road width past the
// centre, so that arms meeting at right angles overlap in the centre
// square and the joint has no gap.
func road(e exits) func(p *path.Data) {
	return func(p *path.Data) {
		const (
			lo  = roadOffset
			hi  = roadOffset + RoadWidth
			mid = TileSize / 2
		)

		switch {
		case e&(east|west) == east|west:
			rectangle(p, 0, lo, TileSize, hi)
		case e&east != 0:
			rectangle(p, mid-RoadWidth/2, lo, TileSize, hi)
		case e&west != 0:
			rectangle(p, 0, lo, mid+RoadWidth/2, hi)
		}

		switch {
		case e&(north|south) == north|south:
			rectangle(p, lo, 0, hi, TileSize)
		case e&north != 0:
			rectangle(p, lo, 0, hi, mid+RoadWidth/2)
		case e&south != 0:
			rectangle(p, lo, mid-RoadWidth/2, hi, TileSize)
		}
	}
}
