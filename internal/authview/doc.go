// Package authview holds the per-session authentication view: the
// login/sign-up form mode, the auth-state driven visibility of the form and
// page sections, and the pure render of that state.
//
// A Controller translates gestures (submit, toggle, logout) into identity
// provider calls and provider notifications into view state. The auth-state
// observer is the only thing that shows the form again; a successful submit
// may hide it early, but never shows it.
package authview
