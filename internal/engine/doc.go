// Package engine drives GNU make, the external build engine that performs
// staleness detection, dependency-ordered execution and parallelism for a
// compiled workflow description. This package never inspects file
// timestamps itself; its job is locating the binary, probing its
// capabilities, mapping run options to argv, and classifying the exit
// status into the run's error taxonomy.
package engine
