package model

// Region identifies a supported deployment location.
type Region string

// Supported regions. The set is bounded by the regions the health-check
// platform can run checkers from.
const (
	RegionUSEast1      Region = "us-east-1"
	RegionUSWest1      Region = "us-west-1"
	RegionUSWest2      Region = "us-west-2"
	RegionEUWest1      Region = "eu-west-1"
	RegionAPSoutheast1 Region = "ap-southeast-1"
	RegionAPSoutheast2 Region = "ap-southeast-2"
	RegionAPNortheast1 Region = "ap-northeast-1"
	RegionSAEast1      Region = "sa-east-1"
)

// SupportedRegions returns all regions a topology may span.
func SupportedRegions() []Region {
	return []Region{
		RegionUSEast1,
		RegionUSWest1,
		RegionUSWest2,
		RegionEUWest1,
		RegionAPSoutheast1,
		RegionAPSoutheast2,
		RegionAPNortheast1,
		RegionSAEast1,
	}
}

// IsSupported reports whether r is in the supported set.
func (r Region) IsSupported() bool {
	for _, s := range SupportedRegions() {
		if r == s {
			return true
		}
	}
	return false
}

func (r Region) String() string { return string(r) }

// Role is the part a region plays in one topology composition.
type Role string

const (
	RoleMain      Role = "main"
	RoleSecondary Role = "secondary"
)
