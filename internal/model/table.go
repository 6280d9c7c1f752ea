package model

// TableHandle is a region's view of the replicated table.
//
// The main region holds the owning handle: it creates the table and is the
// only region allowed to define its schema, billing and replica set. Every
// other region holds a reference-only handle resolved by name.
type TableHandle struct {
	Key            ResourceKey `json:"key"`
	Name           string      `json:"name"`
	Region         Region      `json:"region"`
	Owned          bool        `json:"owned"`
	ReplicaRegions []Region    `json:"replica_regions"`
}
