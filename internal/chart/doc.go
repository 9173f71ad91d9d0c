// Package chart holds the plot geometry shared by every renderer: the
// domain-to-pixel scale, series styling, annotation placement and the static
// Scene that the SVG and PNG exporters both consume.
package chart
