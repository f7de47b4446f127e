// Package cube implements the rolling-solid game: a regular polyhedron
// sits on a grid of squares or triangles, some of which are painted
// blue, and rolls over its edges from square to square. Each roll
// swaps the colour of the face that lands against the board with the
// colour of the square it lands on. The game is won when every face
// of the solid is blue.
//
// What: grid enumeration for square and hex-triangle boards,
// class-balanced random placement of the blue squares, descriptor
// encoding and decoding, and move application that rolls the solid
// with exact vertex alignment.
//
// Why: the solid is kept in a canonical orientation and the roll is
// realised as a rotation about the shared edge followed by re-matching
// face normals, so face colours live in a flat vector permuted per
// move rather than in any quaternion state.
//
// Complexity: a roll is linear in the number of vertices and faces of
// the solid; generation is linear in the grid area.
//
// Errors: parameter and descriptor validation return sentinel errors
// whose text is suitable for direct display. There is no solver; the
// family is pure simulation.
package cube
