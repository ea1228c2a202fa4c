// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It currently holds the outbound client for the automation webhook.
package lib
