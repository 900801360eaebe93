package source

import (
	"panther/internal/token"
)

// Location identifies a range of text inside one source file: the owning
// file's ID plus 1-based line/column coordinates.
type Location struct {
	Source FileID
	token.Location
}

// LocationOf binds a token location to its owning source file.
func LocationOf(id FileID, loc token.Location) Location {
	return Location{Source: id, Location: loc}
}

// PointLocation builds a single-column location in the given source file.
func PointLocation(id FileID, line, col uint32) Location {
	return Location{Source: id, Location: token.Point(line, col)}
}
