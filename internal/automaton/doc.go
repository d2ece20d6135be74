/*
Package automaton holds the mutable representation of a subsequential
transducer while it is being learned.

States live in an Arena and are addressed by StateID. A StateID stays valid for
the lifetime of the arena; Become rewrites the contents of a slot in place, so
every transition that targets the ID observes the new contents without any
pointer rewiring. Output strings are output.Fragment values and are shared
freely between states.
*/
package automaton
