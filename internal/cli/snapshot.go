package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sysmonitor/sysmon/internal/errors"
	"github.com/sysmonitor/sysmon/internal/logger"
	"github.com/sysmonitor/sysmon/internal/metrics"
)

// snapshotCommand collects one sample and prints it as JSON. Degraded
// domains appear as zero values, same as they would render on the
// dashboard.
func snapshotCommand(pretty bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(metrics.NewSystemProvider(), cfg.TopProcesses, logger.Default())
	sample := collector.Collect(context.Background())

	data, err := renderSnapshot(sample, pretty)
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

// renderSnapshot marshals a sample for scripted consumption.
func renderSnapshot(s metrics.Sample, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrRender,
			"Failed to encode snapshot",
			"This shouldn't happen - please report this bug")
	}
	return data, nil
}
