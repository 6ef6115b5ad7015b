// Package sobriety tracks "clean since" clocks a user keeps next to their
// journal. A clock is just a start date; elapsed time is computed on read.
package sobriety
