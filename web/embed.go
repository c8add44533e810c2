// Package web embeds the HTML templates and static assets served by the app.
package web

import "embed"

// TemplatesFS holds the server-rendered page templates.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet and other static assets.
//
//go:embed static/*
var StaticFS embed.FS
