// Package engine is the Attack15 puzzle core: a grid of numbered panels, the selection the
// player builds over them, the round clock and the score.
//
// Nothing in here reads the wall clock. Every time-dependent call takes now from the caller,
// so a test can replay a whole round without sleeping.
package engine
