package topology

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/edvin/regionfailover/internal/model"
)

// apiNamespace seeds the name-based UUIDs used for endpoint API ids.
var apiNamespace = uuid.MustParse("6f1c2a9e-3b7d-4e58-9a41-0c5d8e2f7b13")

const apiIDLength = 10

// APIID returns the API identifier for app in region. It is derived from the
// inputs so that composing the same topology twice yields the same ids.
func APIID(appName string, region model.Region) string {
	id := uuid.NewSHA1(apiNamespace, []byte(appName+"/"+string(region)))
	return strings.ReplaceAll(id.String(), "-", "")[:apiIDLength]
}

// NewRegionalEndpoint builds the endpoint for the table's region, bound to
// that table handle and exposing the health route.
func NewRegionalEndpoint(appName, stage string, table model.TableHandle) model.RegionalEndpoint {
	return model.RegionalEndpoint{
		Key:        model.Key(table.Region, model.KindEndpoint),
		Region:     table.Region,
		Name:       fmt.Sprintf("%s-api-%s", appName, table.Region),
		APIID:      APIID(appName, table.Region),
		Stage:      stage,
		HealthPath: model.HealthRoute,
		Table:      table,
	}
}
