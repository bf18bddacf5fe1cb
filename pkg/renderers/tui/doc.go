// Package tui prompts for the fields of a bound form in a terminal. Answers
// are written through the field runtime and validated immediately; every
// message in the field error list is printed and the field is asked again
// until it is valid.
package tui
