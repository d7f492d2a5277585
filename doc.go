// Package main provides the entry point for the ContentDeck access-control service.
// It initializes and runs a web server using the Fiber framework that decides
// whether platform users may perform actions, optionally narrowed to a project,
// environment, content schema, or content lifecycle status. The application uses
// gorm for data persistence and exposes a REST API for managing roles,
// permissions, and access rules.
package main
