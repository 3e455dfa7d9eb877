// Package stagger provides a two-stage outreach tool for a single operator.
// The scrape stage collects contact listings from a web page into a CSV
// record store; the apply stage sends a templated message to every contact
// through an authenticated SMTP relay, pausing between sends.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, gomail/).
package stagger
