// Package card defines the kickback deck: four colors, digit cards, and the
// direction-reversing kickback card.
//
// Cards are plain comparable values so game state built from them can be
// compared with == and replayed without aliasing.
package card
