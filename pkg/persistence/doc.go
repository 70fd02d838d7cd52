// Package persistence records which board profile a tracker was started with.
//
// The selection is a small JSON file holding the profile name and the
// fingerprint of its pins and limits at selection time. On the next start the
// stored fingerprint is compared with the current profile so that a firmware
// update which silently changed a safety threshold is noticed.
package persistence
