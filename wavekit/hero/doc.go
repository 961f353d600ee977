// Package hero assembles the wave-line hero background: it probes the host,
// picks between the animated and static render paths, and drives one frame
// per host tick while animating.
//
// A Background is single-threaded. Hosts call Frame and Draw from their loop
// goroutine and publish input on the same goroutine through the bus.
package hero
