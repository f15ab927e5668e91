// Package assets provides the embedded document template, stylesheet and
// interactivity script for the report.
package assets

import (
	_ "embed"
)

// DocumentTemplate is the html/template source of the report document
//
//go:embed document.html.tmpl
var DocumentTemplate string

// HostTemplate is the html/template source of the app-hosting wrapper page
//
//go:embed host.html.tmpl
var HostTemplate string

// StyleCSS is inlined into the document head
//
//go:embed style.css
var StyleCSS string

// ReportJS wires charts, tabs, accordion, mobile menu and scroll spy
//
//go:embed report.js
var ReportJS string

// External sub-resources loaded by the document
const (
	TailwindCDN  = "https://cdn.tailwindcss.com"
	ChartJSCDN   = "https://cdn.jsdelivr.net/npm/chart.js"
	InterFontCSS = "https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap"
)
