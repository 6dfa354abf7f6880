// Package build provides the canonical build execution pipeline for
// blogbuilder.
//
// This package contains the build service that coordinates the page
// generation workflow: post discovery, compilation, assembly, template
// rendering, and the final write. All execution paths (CLI, preview server,
// tests) should route through Service.
//
// History, event publishing, and metrics are optional collaborators. They
// default to no-ops, and their failures degrade to warnings: only the core
// path from posts directory to written page can fail a build.
package build
