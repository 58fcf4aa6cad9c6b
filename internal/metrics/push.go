package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
)

// PushGateway sends the job API client collectors to a Prometheus
// Pushgateway under job. Short-lived CLI runs have no scrape endpoint, so
// they push once before exiting.
func PushGateway(ctx context.Context, url, job string) error {
	err := push.New(url, job).
		Collector(GatewayCallsTotal).
		Collector(GatewayCallDuration).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", url, err)
	}
	return nil
}
