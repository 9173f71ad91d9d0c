// Package series derives the per-step, cumulative and running-average
// probability series from a base rate, a growth rate and a maximum index.
//
// Two growth models are available. Multiplicative growth scales the per-step
// probability by (1+growth) each step. Odds growth scales the per-step odds
// instead, which keeps the probability below one without relying on the
// clamp. Every probability is clamped to [0, MaxProbability] before it enters
// the running statistics.
package series
