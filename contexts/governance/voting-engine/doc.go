// Package votingengine implements the community election engine inside the
// governance context.
//
// The module owns the votacion lifecycle (draft, active, closed, cancelled),
// one-vote-per-voter collection with optional abstention, and on-demand
// tally/quorum/participation computation. It keeps business rules in
// application/domain layers and isolates infrastructure concerns behind ports
// and adapters.
package votingengine
