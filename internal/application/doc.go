// Package application provides application initialization and dependency
// wiring. It encapsulates the creation of the settings storage, HTTP handlers,
// router and server instances, keeping the main package focused on CLI parsing
// and orchestration.
package application
