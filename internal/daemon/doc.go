// Package daemon owns the resident inference engine and the
// single-instance lock. It turns engine results into final transcripts
// and journals every served request, while the ipc package handles the
// wire side.
package daemon
