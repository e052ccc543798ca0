// Package domain contains the vocabulary entities exchanged with the grading
// service: words, answers and graded commit results. It has no knowledge of
// transport or presentation.
package domain
