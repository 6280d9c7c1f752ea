package topology

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/edvin/regionfailover/internal/model"
)

var compositionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "topology_compositions_total",
		Help: "Total number of topology compositions by result",
	},
	[]string{"result"},
)

// Orchestrator composes the per-region entity chains of a topology.
type Orchestrator struct {
	logger zerolog.Logger
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		logger: logger.With().Str("component", "topology-orchestrator").Logger(),
	}
}

// Compose builds the topology in two phases. Phase 1 binds the main region's
// owning table and publishes its name. Phase 2 composes the secondary regions
// in parallel; each consumes the published name to bind its replica by
// reference. Invalid input fails with a *ConfigurationError before anything
// is built.
func (o *Orchestrator) Compose(ctx context.Context, in Input) (*model.Topology, error) {
	t, err := o.compose(ctx, in)
	if err != nil {
		compositionsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	compositionsTotal.WithLabelValues("ok").Inc()
	return t, nil
}

func (o *Orchestrator) compose(ctx context.Context, in Input) (*model.Topology, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.withDefaults()

	// Phase 1.
	mainTable := BindTable(model.RoleMain, in.Main, TableName(in.AppName, in.TableSuffix), in.Secondaries)
	mainChain, err := composeRegion(in, model.RoleMain, mainTable)
	if err != nil {
		return nil, fmt.Errorf("compose main region %s: %w", in.Main, err)
	}
	published := mainTable.Name
	o.logger.Debug().Str("region", in.Main.String()).Str("table", published).Msg("main region composed")

	// Phase 2.
	secondaries := make([]model.RegionTopology, len(in.Secondaries))
	g, gctx := errgroup.WithContext(ctx)
	for i, region := range in.Secondaries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table := BindTable(model.RoleSecondary, region, published, nil)
			chain, err := composeRegion(in, model.RoleSecondary, table)
			if err != nil {
				return fmt.Errorf("compose secondary region %s: %w", region, err)
			}
			secondaries[i] = chain
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := &model.Topology{
		AppName:      in.AppName,
		Stage:        in.Stage,
		DomainName:   in.DomainName,
		HostedZoneID: in.HostedZoneID,
		TableName:    published,
		Main:         in.Main,
		Regions:      append([]model.RegionTopology{mainChain}, secondaries...),
	}

	if err := Verify(*t); err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("domain", t.DomainName).
		Str("table", t.TableName).
		Str("main", t.Main.String()).
		Int("regions", len(t.Regions)).
		Msg("topology composed")

	return t, nil
}

func composeRegion(in Input, role model.Role, table model.TableHandle) (model.RegionTopology, error) {
	endpoint := NewRegionalEndpoint(in.AppName, in.Stage, table)
	cert, binding := BindDomain(in.DomainName, in.HostedZoneID, endpoint)
	hc := NewHealthCheck(endpoint)
	record, err := NewFailoverRecord(in.DomainName, in.HostedZoneID, hc, binding)
	if err != nil {
		return model.RegionTopology{}, err
	}

	return model.RegionTopology{
		Role:        role,
		Table:       table,
		Endpoint:    endpoint,
		Certificate: cert,
		Domain:      binding,
		HealthCheck: hc,
		Record:      record,
	}, nil
}
