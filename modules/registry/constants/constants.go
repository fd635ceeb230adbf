package constants

import (
	"github.com/gaze-network/uint128"
)

const (
	Version   = "v0.0.1"
	DBVersion = 1
)

const (
	// MaxSupply is the fixed supply cap. Ids are allocated from 1 to MaxSupply.
	MaxSupply = 10000

	// MaxLayers bounds the generative-art layer count per artifact.
	MaxLayers = 32

	// CooldownBlocks is the per-caller mint cooldown window, in block heights.
	CooldownBlocks = 18

	// MaxRoyaltyBps caps the royalty rate at 10%.
	MaxRoyaltyBps = 1000

	// RoyaltyDenominator is the basis-point denominator for royalty amounts.
	RoyaltyDenominator = 10000
)

// DefaultMintPrice is the fixed mint price in base payment units.
// Payment in excess of the price is accepted and retained, no change is made.
var DefaultMintPrice = uint128.From64(80_000_000)

// 4-byte capability identifiers reported by capability discovery.
var (
	CapabilityArtifact = [4]byte{0x80, 0xac, 0x58, 0xcd}
	CapabilityMetadata = [4]byte{0x5b, 0x5e, 0x13, 0x9f}
	CapabilityRoyalty  = [4]byte{0x2a, 0x55, 0x20, 0x5a}
)
