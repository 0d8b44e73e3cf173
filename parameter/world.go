package parameter

// World - Spatial index and drift
const (
	// SpaceCellSize is the resolv cell size in pixels
	SpaceCellSize = 32

	// ChecksumQuantum quantizes rect geometry before hashing, the drift tolerance
	ChecksumQuantum = 8.0

	// DriftConsecutive is how many divergent revisions in a row count as drift
	DriftConsecutive = 2

	// DriftCooldown gates full invalidations
	DriftCooldown = 3.0
)
