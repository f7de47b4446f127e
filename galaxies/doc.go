// Package galaxies implements Galaxies: partition a rectangular grid
// into regions so that every region is 180-degree rotationally
// symmetric about exactly one of the given dots, and contains no other
// dot.
//
// What: puzzle generation (randomized region growth kept for maximum
// wiggliness, gated on solver difficulty), a deductive solver with a
// recursion fallback at Unreasonable, descriptor encoding and
// decoding, and move application with completion checking.
//
// Why: the board is held at doubled resolution so that dots may sit on
// tiles, edges or vertices alike; tiles carry their dot association
// while edges carry the drawn region borders, and completion is judged
// from the edges alone.
//
// Complexity: each deduction rule is linear or near-linear in the
// doubled-grid area; the Unreasonable tier branches on the tile with
// the most candidate dots, to a fixed depth.
//
// Errors: descriptor and parameter validation return sentinel errors
// whose text is suitable for direct display.
package galaxies
