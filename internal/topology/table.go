package topology

import (
	"fmt"

	"github.com/edvin/regionfailover/internal/model"
)

// TableName derives the replicated table's name. The name is the join key
// every region resolves its replica by, so it must not depend on the region.
func TableName(appName, suffix string) string {
	if suffix == "" {
		return fmt.Sprintf("%s-table", appName)
	}
	return fmt.Sprintf("%s-table-%s", appName, suffix)
}

// BindTable returns the table handle for region. The main region gets the
// owning handle, configured with the replication targets. Secondary regions
// get a reference-only handle resolved by name; replicas is ignored for them.
//
// No I/O happens here. A reference that does not resolve surfaces from the
// provisioning collaborator as a ReferenceResolutionError.
func BindTable(role model.Role, region model.Region, name string, replicas []model.Region) model.TableHandle {
	h := model.TableHandle{
		Key:    model.Key(region, model.KindTable),
		Name:   name,
		Region: region,
	}
	if role == model.RoleMain {
		h.Owned = true
		h.ReplicaRegions = append([]model.Region{}, replicas...)
	}
	return h
}
