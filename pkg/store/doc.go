// Package store defines the Shelf interface, storage configuration, and
// standard errors for persisting representations.
package store
