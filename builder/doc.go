// Package builder generates deterministic synthetic energy models for tests,
// benchmarks, examples and the command line.
//
// Components:
//
//   - Configuration primitives:
//     – BuilderOption:  a function that mutates builderConfig before use.
//     – builderConfig:  RNG, pairwise/unary weights, noise, connectivity, entry generator.
//   - Constructors (Constructor closures run by Build):
//     – Chain:              a line of variables pulled toward a label ramp.
//     – Denoise:            a pixel grid with Potts or truncated-linear smoothness
//     and optional 2×2 higher-order Potts blocks.
//     – RandomHigherOrder:  random dense tables of a given order.
//   - Image helpers: StripeImage and Corrupt produce clean and noisy observations.
//   - Table entry distributions (EnergyFn): ConstantEnergyFn, UniformEnergyFn, NormalEnergyFn.
//
// Guarantees:
//
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Sentinel errors (ErrTooFewVariables, ErrNeedRandSource, ...) wrapped with
//     the constructor name for invalid build parameters.
//   - Same inputs, options and seed yield identical models.
package builder
