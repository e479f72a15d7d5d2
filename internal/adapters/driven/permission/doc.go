// Package permission implements the permission port for a terminal
// application. Decisions are remembered in the config store under
// permissions.<kind>; an undecided kind is put to the user through a
// Prompter and the answer is remembered.
package permission
