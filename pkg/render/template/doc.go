// Package template executes the pongo2 templates behind the HTML renderer.
package template
