// Package cpustat samples host CPU utilization for status reporting.
//
// The agent exists to generate CPU load, so its status endpoint reports
// how busy the host actually is. Sampling goes through gopsutil with a
// zero interval: each reading is the busy fraction since the previous
// reading, which keeps the status path non-blocking at the cost of the
// first post-boot reading covering an arbitrary window (NewSampler primes
// a baseline to absorb that).
package cpustat
